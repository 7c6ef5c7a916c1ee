package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Storage.DataDir != "." {
		t.Errorf("Expected default data dir '.', got %s", cfg.Storage.DataDir)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected default log level 'warn', got %s", cfg.Log.Level)
	}
	if cfg.Shell.Display != "csv" {
		t.Errorf("Expected default display 'csv', got %s", cfg.Shell.Display)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		shouldError bool
	}{
		{
			name:        "valid config",
			modify:      func(c *Config) {},
			shouldError: false,
		},
		{
			name: "table display",
			modify: func(c *Config) {
				c.Shell.Display = "table"
			},
			shouldError: false,
		},
		{
			name: "empty data dir",
			modify: func(c *Config) {
				c.Storage.DataDir = "  "
			},
			shouldError: true,
		},
		{
			name: "warning alias",
			modify: func(c *Config) {
				c.Log.Level = "warning"
			},
			shouldError: false,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "invalid"
			},
			shouldError: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Log.Format = "xml"
			},
			shouldError: true,
		},
		{
			name: "invalid display",
			modify: func(c *Config) {
				c.Shell.Display = "html"
			},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.shouldError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestInitDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "tables")

	cfgPath, err := InitDataDir(dataDir)
	if err != nil {
		t.Fatalf("InitDataDir failed: %v", err)
	}
	if err := ValidateDataDir(dataDir); err != nil {
		t.Errorf("ValidateDataDir failed: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Storage.DataDir != dataDir {
		t.Errorf("Expected data dir %s, got %s", dataDir, cfg.Storage.DataDir)
	}

	// a second init keeps the existing file
	if err := os.WriteFile(cfgPath, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := InitDataDir(dataDir); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(cfgPath)
	if string(raw) != "log:\n  level: debug\n" {
		t.Errorf("InitDataDir overwrote existing config: %q", raw)
	}
}

func TestValidateDataDir_NotExists(t *testing.T) {
	if err := ValidateDataDir("/nonexistent/path"); err == nil {
		t.Error("Expected error for nonexistent directory")
	}
}

func TestValidateDataDir_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateDataDir(f); err == nil {
		t.Error("Expected error for a regular file")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "test.yaml")

	content := `
storage:
  data_dir: /custom/path
log:
  level: debug
  format: json
shell:
  prompt: "db> "
  display: table
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Storage.DataDir != "/custom/path" {
		t.Errorf("Expected data dir /custom/path, got %s", cfg.Storage.DataDir)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if cfg.Shell.Prompt != "db> " || cfg.Shell.Display != "table" {
		t.Errorf("Unexpected shell config: %+v", cfg.Shell)
	}
	// unset keys keep their defaults
	if cfg.Log.Output != "stderr" {
		t.Errorf("Expected default output stderr, got %s", cfg.Log.Output)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RDBMS_SHELL_DISPLAY", "table")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shell.Display != "table" {
		t.Errorf("Expected env override to set display, got %s", cfg.Shell.Display)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
