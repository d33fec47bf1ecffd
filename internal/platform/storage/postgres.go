package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const pgxDriver = "pgx"

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OpenPostgres connects to dsn, checks the connection and brings the schema up
// to date.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("open postgres: empty DATABASE_URL")
	}
	openMu.Lock()
	db, err := sqlOpen(pgxDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := newSQLStore(db, postgresDialect)
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
