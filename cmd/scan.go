package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modside-analyzer/logger"
	"modside-analyzer/mod"
	"modside-analyzer/scanner"
	"modside-analyzer/ui"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [modsDir]",
	Short: "Classify every mod archive in a folder",
	Long: `Reads every .jar/.zip in the given folder (or MODS_DIR from the
configuration), classifies each mod by its declared side, and writes the
grouped report and category folders into the output directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		noLog, _ := cmd.Flags().GetBool("no-log")
		noOrganize, _ := cmd.Flags().GetBool("no-organize")
		workers, _ := cmd.Flags().GetInt("workers")

		cfg := bootstrap(".")

		modsDir := cfg.ModsDir
		if len(args) > 0 {
			modsDir = args[0]
		}
		if modsDir == "" {
			logger.Log.Fatal("Error: no mods folder given; pass it as an argument or set MODS_DIR.")
		}

		opts := scanner.Options{
			ModsDir:       modsDir,
			OutputDir:     cfg.OutputDir,
			GenerateLog:   cfg.GenerateLog && !noLog,
			OrganizeFiles: cfg.OrganizeFiles && !noOrganize,
			SaveIcons:     cfg.SaveIcons,
			MaxWorkers:    cfg.MaxWorkers,
		}
		if workers > 0 {
			opts.MaxWorkers = workers
		}

		if plain {
			runScanPlain(opts)
			return
		}
		runScanTUI(opts)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Bool("plain", false, "Disable the interactive progress view")
	scanCmd.Flags().Bool("no-log", false, "Skip writing the grouped text report")
	scanCmd.Flags().Bool("no-organize", false, "Skip copying archives into category folders")
	scanCmd.Flags().IntP("workers", "w", 0, "Number of archives to process in parallel")
}

// runScanPlain runs the batch without a TUI, reporting through the logger
// and a final summary on stdout.
func runScanPlain(opts scanner.Options) {
	summary, err := scanner.Scan(opts, logger.Log, nil)
	if err != nil {
		logger.Log.Fatalw("Scan failed", zap.Error(err))
	}
	finishScan(summary, opts)

	for _, c := range mod.Categories {
		fmt.Println(ui.Colorize(fmt.Sprintf("%s: %d", c.Label(), summary.Count(c)), c))
	}
	if summary.LogPath != "" {
		fmt.Printf("Report: %s\n", summary.LogPath)
	}
}

// finishScan persists the run and logs where the artifacts went.
func finishScan(summary *scanner.Summary, opts scanner.Options) {
	if run := persistSummary(summary); run != nil {
		logger.Log.Infow("Scan run recorded", zap.Uint("run_id", run.ID))
	}
	if opts.OrganizeFiles {
		logger.Log.Infow("Category folders written", zap.String("dir", summary.OutDir))
	}
}
