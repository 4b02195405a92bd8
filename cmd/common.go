package cmd

import (
	"modside-analyzer/config"
	"modside-analyzer/db"
	"modside-analyzer/logger"
	"modside-analyzer/mod"
	"modside-analyzer/scanner"

	"go.uber.org/zap"
)

// bootstrap handles shared initialization logic for commands.
func bootstrap(path string) config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	db.InitDatabase(cfg.DatabasePath)
	logger.Log.Infow("Database initialized", zap.String("path", cfg.DatabasePath))

	return cfg
}

// persistSummary records a finished run and its per-archive verdicts in the
// local database so browse and history can get at them later.
func persistSummary(summary *scanner.Summary) *db.ScanRun {
	run := db.ScanRun{
		ModsDir:       summary.ModsDir,
		OutputDir:     summary.OutDir,
		LogPath:       summary.LogPath,
		Total:         len(summary.Results),
		ServerCapable: summary.Count(mod.ServerCapable),
		ClientOnly:    summary.Count(mod.ClientOnly),
		Unparseable:   summary.Count(mod.Unparseable),
		Skipped:       summary.SkippedCount(),
	}
	if err := db.DB.Create(&run).Error; err != nil {
		logger.Log.Warnw("Failed to save scan run to database", zap.Error(err))
		return nil
	}

	for _, r := range summary.Results {
		result := db.ScanResult{
			ScanRunID:     run.ID,
			FileName:      r.FileName,
			DisplayName:   r.DisplayName(),
			ModID:         r.Record.ModID,
			Loader:        r.Record.Loader.String(),
			Category:      r.Category.String(),
			Reason:        r.Reason,
			Skipped:       r.Skipped,
			CurseForgeURL: r.Links.CurseForge,
			ModrinthURL:   r.Links.Modrinth,
			MCModURL:      r.Links.MCMod,
		}
		if err := db.DB.Create(&result).Error; err != nil {
			logger.Log.Warnw("Failed to save scan result to database",
				zap.String("file", r.FileName), zap.Error(err))
		}
	}
	return &run
}
