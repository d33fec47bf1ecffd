// Package storage persists the master patient list. Every backend stores the
// same JSON patient encoding; only the container differs.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/uninurse/uninurse/internal/domain/patient"
)

// ErrNotFound is returned by Load when nothing has been saved yet. An empty
// book that was saved loads as an empty slice instead.
var ErrNotFound = errors.New("storage: no saved book")

// Repository loads and saves the ordered master list.
type Repository interface {
	Load(ctx context.Context) ([]patient.Patient, error)
	Save(ctx context.Context, patients []patient.Patient) error
	Close() error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and locates a backend.
type Options struct {
	Driver      string
	Path        string
	DatabaseURL string
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Repository, error) {
	switch opts.Driver {
	case DriverJSON, "":
		return NewJSONFile(opts.Path), nil
	case DriverSQLite:
		return OpenSQLite(ctx, opts.Path)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
