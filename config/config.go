package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the analyzer.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	ModsDir       string `mapstructure:"MODS_DIR"`
	OutputDir     string `mapstructure:"OUTPUT_DIR"`
	GenerateLog   bool   `mapstructure:"GENERATE_LOG"`
	OrganizeFiles bool   `mapstructure:"ORGANIZE_FILES"`
	SaveIcons     bool   `mapstructure:"SAVE_ICONS"`
	MaxWorkers    int    `mapstructure:"MAX_WORKERS"`
	DatabasePath  string `mapstructure:"-"` // Not from env, derived
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	// Bind environment variables automatically.
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"mods_dir":       "MODS_DIR",
		"output_dir":     "OUTPUT_DIR",
		"generate_log":   "GENERATE_LOG",
		"organize_files": "ORGANIZE_FILES",
		"save_icons":     "SAVE_ICONS",
		"max_workers":    "MAX_WORKERS",
	} {
		if bindErr := viper.BindEnv(key, env); bindErr != nil {
			slog.Warn("Unable to bind env var", "var", env, "error", bindErr)
		}
	}

	// Unmarshal the config
	if vipErr := viper.Unmarshal(&config); vipErr != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vipErr)
	}

	processConfigDefaults(&config)

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// processConfigDefaults fills in the values the user left unset.
func processConfigDefaults(config *Config) {
	if config.OutputDir == "" {
		config.OutputDir = "analysis"
	}
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 5
	}
	if config.MaxWorkers > 20 {
		config.MaxWorkers = 20
	}

	// Viper doesn't handle bool defaults from env well without explicit
	// SetDefault, and the unset and false cases are indistinguishable after
	// unmarshal. Check the raw string values instead; both toggles default
	// to enabled.
	config.GenerateLog = boolWithDefault("GENERATE_LOG", true)
	config.OrganizeFiles = boolWithDefault("ORGANIZE_FILES", true)
	config.SaveIcons = boolWithDefault("SAVE_ICONS", true)
}

func boolWithDefault(key string, def bool) bool {
	raw := viper.GetString(key)
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("Invalid boolean value, using default", "var", key, "value", raw)
		return def
	}
	return val
}

// validateAndEnsureDirectories creates the output directory and derives the
// database path. The mods folder itself is validated by the scanner, since
// it may come from a command-line argument instead.
func validateAndEnsureDirectories(config *Config) error {
	if _, err := os.Stat(config.OutputDir); os.IsNotExist(err) {
		slog.Info("Output directory does not exist, creating it", "path", config.OutputDir)
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			slog.Error("Failed to create output directory", "path", config.OutputDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check output directory", "path", config.OutputDir, "error", err)
		return err
	}

	// Keep the scan history next to the generated reports for portability.
	config.DatabasePath = filepath.Join(config.OutputDir, "scans.db")

	return nil
}
