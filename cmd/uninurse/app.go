package main

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/uninurse/uninurse/internal/config"
	"github.com/uninurse/uninurse/internal/domain/session"
	"github.com/uninurse/uninurse/internal/platform/backup"
	"github.com/uninurse/uninurse/internal/platform/metrics"
	"github.com/uninurse/uninurse/internal/platform/storage"
)

// errRejected makes exec exit non-zero after a rejected command without
// printing the message twice.
var errRejected = errors.New("command rejected")

type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	repo    storage.Repository
	metrics *metrics.Metrics
	svc     *session.Service
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes JSON in production and a console format in development.
// The terminal UI owns stdout, so logs go to w.
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func storageOptions(cfg *config.Config) storage.Options {
	return storage.Options{
		Driver:      cfg.StorageDriver,
		Path:        cfg.DataPath,
		DatabaseURL: cfg.DatabaseURL,
	}
}

func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, logOut)

	repo, err := storage.Open(ctx, storageOptions(cfg))
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("driver", cfg.StorageDriver).Str("path", cfg.DataPath).Msg("storage opened")

	m := metrics.New()
	svc, err := session.Open(ctx, repo, session.Options{
		HistoryLimit: cfg.HistoryLimit,
		Driver:       cfg.StorageDriver,
		Metrics:      m,
		Logger:       logger,
	})
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, repo: repo, metrics: m, svc: svc}, nil
}

func (a *app) close() {
	if err := a.repo.Close(); err != nil {
		a.logger.Error().Err(err).Msg("failed to close storage")
	}
}

type backupApp struct {
	logger  zerolog.Logger
	repo    storage.Repository
	store   backup.Store
	manager *backup.Manager
}

func newBackupApp(ctx context.Context, logOut io.Writer) (*backupApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, logOut)

	store, err := backup.Open(ctx, backup.Options{
		Driver:      cfg.BackupDriver,
		Dir:         cfg.BackupDir,
		S3Bucket:    cfg.S3Bucket,
		S3Region:    cfg.S3Region,
		S3Endpoint:  cfg.S3Endpoint,
		S3PathStyle: cfg.S3PathStyle,
	})
	if err != nil {
		return nil, err
	}
	repo, err := storage.Open(ctx, storageOptions(cfg))
	if err != nil {
		return nil, err
	}
	return &backupApp{logger: logger, repo: repo, store: store, manager: backup.NewManager(store, repo)}, nil
}

func (b *backupApp) close() {
	if err := b.repo.Close(); err != nil {
		b.logger.Error().Err(err).Msg("failed to close storage")
	}
}
