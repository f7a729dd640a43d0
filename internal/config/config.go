package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kadresources/sheetsync/internal/discovery"
	"github.com/kadresources/sheetsync/internal/logger"
	"github.com/kadresources/sheetsync/internal/sheets"
	"github.com/kadresources/sheetsync/internal/storage"
)

// EnvPrefix prefixes environment overrides, e.g. SHEETSYNC_SHEET_ID
const EnvPrefix = "SHEETSYNC"

// Config holds everything a sync run needs
type Config struct {
	SheetID           string        `mapstructure:"sheet_id"`
	Sheets            []string      `mapstructure:"sheets"`
	Output            string        `mapstructure:"output"`
	Workbook          string        `mapstructure:"workbook"`
	BaseURL           string        `mapstructure:"base_url"`
	FeedBaseURL       string        `mapstructure:"feed_base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	Discover          bool          `mapstructure:"discover"`
	ProbeCandidates   []string      `mapstructure:"probe_candidates"`
	DefaultSubHeading string        `mapstructure:"default_sub_heading"`
	LogLevel          string        `mapstructure:"log_level"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Sheets:      []string{},
		Output:      storage.DefaultPath,
		BaseURL:     sheets.DefaultBaseURL,
		FeedBaseURL: discovery.DefaultFeedBaseURL,
		Timeout:     sheets.Timeout,
		Discover:    true,
		ProbeCandidates: []string{
			"Resources",
			"Data",
			"Sheet1",
			"Sheet 1",
		},
		LogLevel: "info",
	}
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"sheet-id":            "sheet_id",
	"sheet":               "sheets",
	"output":              "output",
	"workbook":            "workbook",
	"discover":            "discover",
	"default-sub-heading": "default_sub_heading",
	"timeout":             "timeout",
	"log-level":           "log_level",
}

// Load builds the configuration. cfgFile may be empty to search ./sheetsync.yaml
// and $HOME/.sheetsync/sheetsync.yaml; a missing search-path file is not an error.
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sheetsync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sheetsync")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Loaded config file", logger.Fields{"path": used})
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("sheet_id", defaults.SheetID)
	v.SetDefault("sheets", defaults.Sheets)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("workbook", defaults.Workbook)
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("feed_base_url", defaults.FeedBaseURL)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("discover", defaults.Discover)
	v.SetDefault("probe_candidates", defaults.ProbeCandidates)
	v.SetDefault("default_sub_heading", defaults.DefaultSubHeading)
	v.SetDefault("log_level", defaults.LogLevel)
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SheetID) == "" && strings.TrimSpace(c.Workbook) == "" {
		return fmt.Errorf("sheet_id is required (set it in sheetsync.yaml, %s_SHEET_ID or --sheet-id)", EnvPrefix)
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() logger.Level {
	lvl, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return lvl
}

// WriteDefault writes a starter configuration file to path.
// It refuses to overwrite an existing file.
func WriteDefault(path, sheetID string, sheetNames []string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	defaults := DefaultConfig()
	if sheetNames == nil {
		sheetNames = []string{}
	}
	out := struct {
		SheetID           string   `yaml:"sheet_id"`
		Sheets            []string `yaml:"sheets"`
		Output            string   `yaml:"output"`
		Discover          bool     `yaml:"discover"`
		ProbeCandidates   []string `yaml:"probe_candidates"`
		DefaultSubHeading string   `yaml:"default_sub_heading"`
		Timeout           string   `yaml:"timeout"`
		LogLevel          string   `yaml:"log_level"`
	}{
		SheetID:           sheetID,
		Sheets:            sheetNames,
		Output:            defaults.Output,
		Discover:          defaults.Discover,
		ProbeCandidates:   defaults.ProbeCandidates,
		DefaultSubHeading: defaults.DefaultSubHeading,
		Timeout:           defaults.Timeout.String(),
		LogLevel:          defaults.LogLevel,
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# sheetsync configuration
# sheets lists the tabs to sync in the order they appear on the site.
# Leave it empty to discover tab names from the spreadsheet instead.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
