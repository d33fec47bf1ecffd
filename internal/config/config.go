package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	StorageDriver  string        `mapstructure:"STORAGE_DRIVER"`
	DataPath       string        `mapstructure:"DATA_PATH"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	HistoryLimit   int           `mapstructure:"HISTORY_LIMIT"`
	ViewAddr       string        `mapstructure:"VIEW_ADDR"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit      string        `mapstructure:"BODY_LIMIT"`
	BackupDriver   string        `mapstructure:"BACKUP_DRIVER"`
	BackupDir      string        `mapstructure:"BACKUP_DIR"`
	S3Bucket       string        `mapstructure:"S3_BUCKET"`
	S3Region       string        `mapstructure:"S3_REGION"`
	S3Endpoint     string        `mapstructure:"S3_ENDPOINT"`
	S3PathStyle    bool          `mapstructure:"S3_PATH_STYLE"`
}

var keys = []string{
	"ENV", "LOG_LEVEL", "STORAGE_DRIVER", "DATA_PATH", "DATABASE_URL",
	"HISTORY_LIMIT", "VIEW_ADDR", "REQUEST_TIMEOUT", "BODY_LIMIT",
	"BACKUP_DRIVER", "BACKUP_DIR", "S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PATH_STYLE",
}

// Load reads .env (if present) and the environment. It does not validate.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", "json")
	v.SetDefault("HISTORY_LIMIT", 100)
	v.SetDefault("VIEW_ADDR", "127.0.0.1:8787")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("BODY_LIMIT", "64K")
	v.SetDefault("BACKUP_DRIVER", "fs")
	v.SetDefault("BACKUP_DIR", "data/backups")
	v.SetDefault("S3_REGION", "us-east-1")

	// Bind explicitly so Unmarshal sees variables that have no default.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// A missing .env is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath(cfg.StorageDriver)
	}
	return cfg, nil
}

// DefaultDataPath is where each file-backed driver keeps the book.
func DefaultDataPath(driver string) string {
	if driver == "sqlite" {
		return "data/uninurse.db"
	}
	return "data/uninurse.json"
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects configurations that cannot start.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "json", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER is \"postgres\"")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be \"json\", \"sqlite\", or \"postgres\", got %q", c.StorageDriver)
	}

	switch c.BackupDriver {
	case "fs":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when BACKUP_DRIVER is \"s3\"")
		}
	default:
		return fmt.Errorf("BACKUP_DRIVER must be \"fs\" or \"s3\", got %q", c.BackupDriver)
	}

	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
