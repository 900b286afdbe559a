package config

import (
	"os"
	"path/filepath"
	"runtime"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ConfigDirName is the directory under the CK3 documents folder where
// ck3mm keeps its configuration and reports.
const ConfigDirName = ".ck3mm"

// Config represents the complete ck3mm configuration (v2 schema)
type Config struct {
	Version int `json:"version" toml:"version" mapstructure:"version"`

	Paths     PathsConfig     `json:"paths" toml:"paths" mapstructure:"paths"`
	Scan      ScanConfig      `json:"scan" toml:"scan" mapstructure:"scan"`
	Conflicts ConflictsConfig `json:"conflicts" toml:"conflicts" mapstructure:"conflicts"`
	Launcher  LauncherConfig  `json:"launcher" toml:"launcher" mapstructure:"launcher"`
	Logging   LoggingConfig   `json:"logging" toml:"logging" mapstructure:"logging"`
}

// PathsConfig locates the game, documents and workshop directories.
// The defaults match a standard Steam install; everything is overridable.
type PathsConfig struct {
	DocsDir     string `json:"docsDir" toml:"docsDir" mapstructure:"docsDir"`
	GameDir     string `json:"gameDir" toml:"gameDir" mapstructure:"gameDir"`
	WorkshopDir string `json:"workshopDir" toml:"workshopDir" mapstructure:"workshopDir"`
}

// ModsDir is the directory holding .mod descriptor files.
func (p PathsConfig) ModsDir() string {
	return filepath.Join(p.DocsDir, "mod")
}

// DLCLoadPath is the launcher's enabled-mods file.
func (p PathsConfig) DLCLoadPath() string {
	return filepath.Join(p.DocsDir, "dlc_load.json")
}

// ErrorLogPath is the default game error log location.
func (p PathsConfig) ErrorLogPath() string {
	return filepath.Join(p.DocsDir, "logs", "error.log")
}

// ScanConfig controls the definition scanner.
type ScanConfig struct {
	Workers          int      `json:"workers" toml:"workers" mapstructure:"workers"`
	MaxDefDepth      int      `json:"maxDefDepth" toml:"maxDefDepth" mapstructure:"maxDefDepth"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" toml:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	SkipDirs         []string `json:"skipDirs" toml:"skipDirs" mapstructure:"skipDirs"`
}

// ConflictsConfig controls conflict detection.
type ConflictsConfig struct {
	Range             string `json:"range" toml:"range" mapstructure:"range"` // all, enabled, disabled
	CheckLocalization bool   `json:"checkLocalization" toml:"checkLocalization" mapstructure:"checkLocalization"`
	RulesFile         string `json:"rulesFile" toml:"rulesFile" mapstructure:"rulesFile"`
}

// LauncherConfig controls the launcher database export.
type LauncherConfig struct {
	GameDataDir string `json:"gameDataDir" toml:"gameDataDir" mapstructure:"gameDataDir"`
	OpenBeta    bool   `json:"openBeta" toml:"openBeta" mapstructure:"openBeta"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" toml:"format" mapstructure:"format"`
	Level  string `json:"level" toml:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration for this platform.
func DefaultConfig() *Config {
	docsDir := defaultDocsDir()
	return &Config{
		Version: 2,
		Paths: PathsConfig{
			DocsDir:     docsDir,
			GameDir:     defaultGameDir(),
			WorkshopDir: defaultWorkshopDir(),
		},
		Scan: ScanConfig{
			Workers:          0, // 0 = GOMAXPROCS
			MaxDefDepth:      0, // top-level identifiers only
			MaxFileSizeBytes: 4_000_000,
			SkipDirs:         []string{".git", "src"},
		},
		Conflicts: ConflictsConfig{
			Range:             "enabled",
			CheckLocalization: false,
			RulesFile:         filepath.Join(docsDir, ConfigDirName, "rules.toml"),
		},
		Launcher: LauncherConfig{
			GameDataDir: filepath.Join(docsDir, "launcher-v2"),
			OpenBeta:    false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

func homeDocuments() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}

func defaultDocsDir() string {
	return filepath.Join(homeDocuments(), "Paradox Interactive", "Crusader Kings III")
}

func defaultGameDir() string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files (x86)\Steam\steamapps\common\Crusader Kings III\game`
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "Steam", "steamapps", "common", "Crusader Kings III", "game")
}

func defaultWorkshopDir() string {
	// 1158310 is the CK3 Steam app id.
	if runtime.GOOS == "windows" {
		return `C:\Program Files (x86)\Steam\steamapps\workshop\content\1158310`
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "Steam", "steamapps", "workshop", "content", "1158310")
}

// LoadConfig loads configuration from <docsDir>/.ck3mm/config.toml,
// falling back to defaults when the file does not exist. An explicit
// path overrides the search. Environment variables with the CK3MM_
// prefix override file values (e.g. CK3MM_PATHS_DOCSDIR).
func LoadConfig(explicitPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.AddConfigPath(filepath.Join(DefaultConfig().Paths.DocsDir, ConfigDirName))
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("CK3MM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as TOML to the given path, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 2 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Conflicts.Range {
	case "all", "enabled", "disabled":
	default:
		return &ConfigError{Field: "conflicts.range", Message: "must be all, enabled or disabled"}
	}
	if c.Scan.Workers < 0 {
		return &ConfigError{Field: "scan.workers", Message: "must be >= 0"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
