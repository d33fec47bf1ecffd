// Package backup keeps point-in-time copies of the patient book outside the
// primary storage backend.
package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrNotFound   = errors.New("backup not found")
	ErrExists     = errors.New("backup already exists")
	ErrInvalidKey = errors.New("backup key must be a plain file name")
)

const (
	DriverFS     = "fs"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Info describes a stored backup. SHA256 is empty when the backend does not
// report it on listing.
type Info struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	SHA256    string    `json:"sha256,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds backup documents by key. Put never overwrites.
type Store interface {
	Put(ctx context.Context, key string, data []byte) (Info, error)
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context) ([]Info, error)
	Driver() string
}

var keyRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKey rejects keys that could escape the backup root.
func ValidateKey(key string) error {
	if !keyRe.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// KeyFor names the backup taken at t, e.g. uninurse-20240301-101500.json.
func KeyFor(t time.Time) string {
	return "uninurse-" + t.UTC().Format("20060102-150405") + ".json"
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Options selects and configures a Store.
type Options struct {
	Driver      string
	Dir         string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Open returns the Store named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverFS, "":
		return NewFS(opts.Dir)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    opts.S3Bucket,
			Region:    opts.S3Region,
			Endpoint:  opts.S3Endpoint,
			PathStyle: opts.S3PathStyle,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("backup: unknown driver %q", opts.Driver)
	}
}
