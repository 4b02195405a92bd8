package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modside-analyzer",
	Short: "Classify Minecraft mods into server-capable and client-only",
	Long: `Scans a folder of Minecraft mod archives, reads the embedded loader
manifests (fabric.mod.json / mods.toml), and sorts each mod into
server-capable, client-only, or unparseable. Results are written to a
grouped text report and, optionally, three category folders.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
