// Package config handles configuration loading and validation for the rdbms shell.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/moojink/RDBMS/internal/logger"
)

// EnvPrefix is prepended to environment variable overrides, e.g.
// RDBMS_STORAGE_DATA_DIR.
const EnvPrefix = "RDBMS"

// Config holds all configuration for the shell.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Shell   ShellConfig   `mapstructure:"shell" yaml:"shell"`
}

// StorageConfig controls where .tbl files are read and written.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	Prompt      string `mapstructure:"prompt" yaml:"prompt"`
	HistoryFile string `mapstructure:"history_file" yaml:"history_file"`
	// Display is "csv" for the plain table text or "table" for a boxed grid.
	Display string `mapstructure:"display" yaml:"display"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: ".",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		Shell: ShellConfig{
			Prompt:      "> ",
			HistoryFile: filepath.Join(os.TempDir(), ".rdbms_history"),
			Display:     "csv",
		},
	}
}

// Load reads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := Default()
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.output", cfg.Log.Output)
	v.SetDefault("shell.prompt", cfg.Shell.Prompt)
	v.SetDefault("shell.history_file", cfg.Shell.HistoryFile)
	v.SetDefault("shell.display", cfg.Shell.Display)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("rdbms")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.rdbms")

		// defaults apply when no file is found
		_ = v.ReadInConfig()
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that configuration values are sensible.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	switch c.Shell.Display {
	case "csv", "table":
	default:
		return fmt.Errorf("invalid display mode: %s (want csv or table)", c.Shell.Display)
	}
	return nil
}

// ValidateDataDir checks that dir exists and is a directory.
func ValidateDataDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("data directory does not exist: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("cannot access data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path is not a directory: %s", dir)
	}
	return nil
}

// InitDataDir creates the data directory and writes a default config file
// into it. An existing config file is left alone.
func InitDataDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	cfgPath := filepath.Join(dir, "rdbms.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}
	if err := WriteDefault(cfgPath, dir); err != nil {
		return "", err
	}
	return cfgPath, nil
}

// WriteDefault writes the default configuration, pointed at dataDir, as YAML.
func WriteDefault(path, dataDir string) error {
	cfg := Default()
	cfg.Storage.DataDir = dataDir

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	header := []byte("# rdbms configuration\n# log.level: debug, info, warn, error; shell.display: csv or table\n\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
