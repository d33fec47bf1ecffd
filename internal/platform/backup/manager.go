package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uninurse/uninurse/internal/platform/storage"
)

// ErrEmptyBook is returned when there is no saved book to back up.
var ErrEmptyBook = errors.New("no saved patient book to back up")

// Manager copies the persisted book between a storage.Repository and a Store.
type Manager struct {
	store Store
	repo  storage.Repository
	now   func() time.Time
}

func NewManager(store Store, repo storage.Repository) *Manager {
	return &Manager{store: store, repo: repo, now: time.Now}
}

// Backup writes the currently persisted book under a timestamped key.
func (m *Manager) Backup(ctx context.Context) (Info, error) {
	patients, err := m.repo.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return Info{}, ErrEmptyBook
	}
	if err != nil {
		return Info{}, fmt.Errorf("load book: %w", err)
	}
	now := m.now()
	data, err := storage.EncodeBook(patients, now)
	if err != nil {
		return Info{}, err
	}
	return m.store.Put(ctx, KeyFor(now), data)
}

// Restore replaces the persisted book with the backup stored under key. The
// backup is fully decoded before anything is written.
func (m *Manager) Restore(ctx context.Context, key string) (int, error) {
	data, err := m.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	patients, err := storage.DecodeBook(data)
	if err != nil {
		return 0, fmt.Errorf("backup %s: %w", key, err)
	}
	if err := m.repo.Save(ctx, patients); err != nil {
		return 0, fmt.Errorf("restore %s: %w", key, err)
	}
	return len(patients), nil
}

func (m *Manager) List(ctx context.Context) ([]Info, error) {
	return m.store.List(ctx)
}
