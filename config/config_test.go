package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestProcessConfigDefaults(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.OutputDir != "analysis" {
			t.Errorf("Expected OutputDir to be analysis, got %s", cfg.OutputDir)
		}
		if cfg.MaxWorkers != 5 {
			t.Errorf("Expected MaxWorkers to be 5, got %d", cfg.MaxWorkers)
		}
		if !cfg.GenerateLog || !cfg.OrganizeFiles || !cfg.SaveIcons {
			t.Error("Expected output toggles to default to enabled")
		}
	})

	t.Run("respects existing values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{
			OutputDir:  "elsewhere",
			MaxWorkers: 3,
		}
		processConfigDefaults(&cfg)

		if cfg.OutputDir != "elsewhere" {
			t.Errorf("Expected OutputDir to stay elsewhere, got %s", cfg.OutputDir)
		}
		if cfg.MaxWorkers != 3 {
			t.Errorf("Expected MaxWorkers to stay 3, got %d", cfg.MaxWorkers)
		}
	})

	t.Run("clamps worker count", func(t *testing.T) {
		viper.Reset()
		cfg := Config{MaxWorkers: 500}
		processConfigDefaults(&cfg)

		if cfg.MaxWorkers != 20 {
			t.Errorf("Expected MaxWorkers to be clamped to 20, got %d", cfg.MaxWorkers)
		}
	})

	t.Run("disabled toggle from environment", func(t *testing.T) {
		viper.Reset()
		viper.Set("GENERATE_LOG", "false")
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.GenerateLog {
			t.Error("Expected GenerateLog to be disabled")
		}
		if !cfg.OrganizeFiles {
			t.Error("Expected OrganizeFiles to stay enabled")
		}
	})
}

func TestValidateAndEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates output directory", func(t *testing.T) {
		outDir := filepath.Join(tmpDir, "analysis")
		cfg := Config{OutputDir: outDir}
		err := validateAndEnsureDirectories(&cfg)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if _, err := os.Stat(outDir); os.IsNotExist(err) {
			t.Error("Output directory was not created")
		}
		if cfg.DatabasePath != filepath.Join(outDir, "scans.db") {
			t.Errorf("DatabasePath = %s", cfg.DatabasePath)
		}
	})

	t.Run("accepts existing directory", func(t *testing.T) {
		cfg := Config{OutputDir: tmpDir}
		if err := validateAndEnsureDirectories(&cfg); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	})
}
