package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uninurse/uninurse/internal/domain/patient"
)

type dialect struct {
	name        string
	placeholder func(n int) string
	now         string
}

var (
	sqliteDialect = dialect{
		name:        DriverSQLite,
		placeholder: func(int) string { return "?" },
		now:         "CAST(CURRENT_TIMESTAMP AS TEXT)",
	}
	postgresDialect = dialect{
		name:        DriverPostgres,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		now:         "CAST(CURRENT_TIMESTAMP AS TEXT)",
	}
)

const savedAtKey = "saved_at"

// SQLStore keeps one row per patient, ordered by position, with the patient
// encoded as a JSON payload. Save replaces every row in one transaction.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func newSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d, now: time.Now}
}

// DB exposes the underlying handle for tests and health checks.
func (s *SQLStore) DB() *sql.DB { return s.db }

// Driver names the SQL dialect in use.
func (s *SQLStore) Driver() string { return s.dialect.name }

func (s *SQLStore) migrate(ctx context.Context) error {
	m := &migrator{db: s.db, dialect: s.dialect}
	if _, err := m.Up(ctx); err != nil {
		return err
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) ([]patient.Patient, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM book_meta WHERE key = `+s.dialect.placeholder(1), savedAtKey).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select book meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM patients ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select patients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	patients := []patient.Patient{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		p, err := decodePatient([]byte(payload))
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return patients, nil
}

func (s *SQLStore) Save(ctx context.Context, patients []patient.Patient) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM patients`); err != nil {
		return fmt.Errorf("clear patients: %w", err)
	}
	p := s.dialect.placeholder
	insert := fmt.Sprintf(`INSERT INTO patients (id, position, name, payload) VALUES (%s, %s, %s, %s)`,
		p(1), p(2), p(3), p(4))
	for i, pt := range patients {
		payload, err := encodePatient(pt)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, pt.ID.String(), i, pt.Name, string(payload)); err != nil {
			return fmt.Errorf("insert patient %q: %w", pt.Name, err)
		}
	}
	upsert := fmt.Sprintf(`INSERT INTO book_meta (key, value) VALUES (%s, %s) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		p(1), p(2))
	if _, err := tx.ExecContext(ctx, upsert, savedAtKey, s.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upsert book meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
