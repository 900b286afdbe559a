package main

import (
	"ck3mm/internal/config"
	"ck3mm/internal/logging"
	"ck3mm/internal/version"

	"github.com/spf13/cobra"
)

var (
	configFlag    string
	docsDirFlag   string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ck3mm",
	Short: "ck3mm - Crusader Kings III mod manager",
	Long: `ck3mm manages CK3 mods from the command line: it scans mod content,
finds cross-mod conflicts, analyzes the game's error log, repairs file
encodings and exports playsets to the official launcher.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("ck3mm version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to config file (default: <docs>/.ck3mm/config.toml)")
	rootCmd.PersistentFlags().StringVar(&docsDirFlag, "docs-dir", "",
		"CK3 documents directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json")
}

// loadConfig resolves the effective configuration from file, env and
// flags. Flag values win.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	if docsDirFlag != "" {
		cfg.Paths.DocsDir = docsDirFlag
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	if logFormatFlag != "" {
		cfg.Logging.Format = logFormatFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
