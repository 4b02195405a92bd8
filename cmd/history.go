package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modside-analyzer/db"
	"modside-analyzer/logger"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scan runs",
	Long: `Lists past scan runs with their per-category counts.
Use the run ID with 'browse --run' to inspect one.`,
	Run: func(_ *cobra.Command, _ []string) {
		listHistory()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func listHistory() {
	bootstrap(".")

	var runs []db.ScanRun
	if err := db.DB.Order("created_at DESC").Limit(20).Find(&runs).Error; err != nil {
		logger.Log.Fatalw("Failed to query scan history", zap.Error(err))
	}

	if len(runs) == 0 {
		fmt.Println("No recorded scans yet. Run 'modside-analyzer scan <folder>' first.")
		return
	}

	fmt.Printf("%-5s %-17s %-8s %-8s %-8s %-8s %s\n",
		"ID", "Date", "Server", "Client", "Failed", "Skipped", "Folder")
	for _, run := range runs {
		fmt.Printf("%-5d %-17s %-8d %-8d %-8d %-8d %s\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.ServerCapable,
			run.ClientOnly,
			run.Unparseable,
			run.Skipped,
			run.ModsDir,
		)
	}
}
