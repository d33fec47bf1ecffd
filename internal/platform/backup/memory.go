package backup

import (
	"context"
	"sort"
	"sync"
	"time"
)

type storedBackup struct {
	info Info
	data []byte
}

// Memory is a thread-safe in-process Store for tests and throwaway sessions.
type Memory struct {
	mu      sync.RWMutex
	backups map[string]*storedBackup
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{backups: make(map[string]*storedBackup), now: time.Now}
}

func (m *Memory) Driver() string { return DriverMemory }

func (m *Memory) Put(_ context.Context, key string, data []byte) (Info, error) {
	if err := ValidateKey(key); err != nil {
		return Info{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.backups[key]; ok {
		return Info{}, ErrExists
	}
	cp := append([]byte(nil), data...)
	info := Info{Key: key, Size: int64(len(cp)), SHA256: checksum(cp), CreatedAt: m.now().UTC()}
	m.backups[key] = &storedBackup{info: info, data: cp}
	return info, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.backups[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b.data...), nil
}

func (m *Memory) List(_ context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Info, 0, len(m.backups))
	for _, b := range m.backups {
		out = append(out, b.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
