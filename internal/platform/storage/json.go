package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/uninurse/uninurse/internal/domain/patient"
)

// JSONFile keeps the book in a single JSON document. Writes go to a temporary
// file in the same directory which is then renamed over the target.
type JSONFile struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewJSONFile(path string) *JSONFile {
	if path == "" {
		path = "data/uninurse.json"
	}
	return &JSONFile{path: path, now: time.Now}
}

// Path returns the file location.
func (f *JSONFile) Path() string { return f.path }

func (f *JSONFile) Load(_ context.Context) ([]patient.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return DecodeBook(data)
}

func (f *JSONFile) Save(_ context.Context, patients []patient.Patient) (retErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := EncodeBook(patients, f.now())
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// Ping checks that the directory holding the file is reachable.
func (f *JSONFile) Ping(_ context.Context) error {
	dir := filepath.Dir(f.path)
	if _, err := os.Stat(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	return nil
}

func (f *JSONFile) Close() error { return nil }
