package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:            "development",
		StorageDriver:  "json",
		HistoryLimit:   100,
		RequestTimeout: 10 * time.Second,
		BackupDriver:   "fs",
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range keys {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorageDriver != "json" {
		t.Errorf("expected json driver, got %s", cfg.StorageDriver)
	}
	if cfg.DataPath != "data/uninurse.json" {
		t.Errorf("expected default data path, got %s", cfg.DataPath)
	}
	if cfg.HistoryLimit != 100 {
		t.Errorf("expected history limit 100, got %d", cfg.HistoryLimit)
	}
	if cfg.ViewAddr != "127.0.0.1:8787" {
		t.Errorf("expected loopback view addr, got %s", cfg.ViewAddr)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("DATA_PATH", "")
	t.Setenv("HISTORY_LIMIT", "7")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataPath != "data/uninurse.db" {
		t.Errorf("expected sqlite default path, got %s", cfg.DataPath)
	}
	if cfg.HistoryLimit != 7 {
		t.Errorf("expected 7, got %d", cfg.HistoryLimit)
	}
	if !cfg.S3PathStyle {
		t.Error("expected S3_PATH_STYLE to parse as true")
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}
	c.Env = "production"
	if c.IsDev() || !c.IsProduction() {
		t.Error("expected production mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"sqlite", func(c *Config) { c.StorageDriver = "sqlite" }, ""},
		{"unknown storage", func(c *Config) { c.StorageDriver = "mongo" }, "STORAGE_DRIVER"},
		{"postgres without url", func(c *Config) { c.StorageDriver = "postgres" }, "DATABASE_URL"},
		{"postgres with url", func(c *Config) {
			c.StorageDriver = "postgres"
			c.DatabaseURL = "postgres://localhost/uninurse"
		}, ""},
		{"s3 without bucket", func(c *Config) { c.BackupDriver = "s3" }, "S3_BUCKET"},
		{"unknown backup", func(c *Config) { c.BackupDriver = "ftp" }, "BACKUP_DRIVER"},
		{"zero history", func(c *Config) { c.HistoryLimit = 0 }, "HISTORY_LIMIT"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
