package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// Migration is one versioned schema step.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the book schema in version order. Both dialects accept the
// same DDL.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "001_patients",
		SQL: `CREATE TABLE IF NOT EXISTS patients (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	payload TEXT NOT NULL
)`,
	},
	{
		Version: 2,
		Name:    "002_book_meta",
		SQL: `CREATE TABLE IF NOT EXISTS book_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`,
	},
}

// migrator applies pending migrations and records them in _migrations.
type migrator struct {
	db      *sql.DB
	dialect dialect
}

func (m *migrator) ensureMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("create _migrations table: %w", err)
	}
	return nil
}

func (m *migrator) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM _migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// Up applies every migration not yet recorded, each in its own transaction,
// and returns how many ran.
func (m *migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, mig := range migrations {
		if !applied[mig.Version] {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	record := fmt.Sprintf(`INSERT INTO _migrations (version, name, applied_at) VALUES (%s, %s, %s)`,
		m.dialect.placeholder(1), m.dialect.placeholder(2), m.dialect.now)
	for i, mig := range pending {
		tx, err := m.db.BeginTx(ctx, nil)
		if err != nil {
			return i, fmt.Errorf("begin migration %s: %w", mig.Name, err)
		}
		if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
			_ = tx.Rollback()
			return i, fmt.Errorf("apply migration %s: %w", mig.Name, err)
		}
		if _, err := tx.ExecContext(ctx, record, mig.Version, mig.Name); err != nil {
			_ = tx.Rollback()
			return i, fmt.Errorf("record migration %s: %w", mig.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return i, fmt.Errorf("commit migration %s: %w", mig.Name, err)
		}
	}
	return len(pending), nil
}
