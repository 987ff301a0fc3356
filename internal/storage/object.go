package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/raymondartguy/portfolio-backend/internal/config"
)

// Object is a stored blob plus the metadata the HTTP layer needs to
// serve it.
type Object struct {
	Body        []byte
	ContentType string
	ETag        string
}

// ObjectInfo describes a stored key without fetching its body.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// ObjectStore abstracts the S3-compatible bucket holding asset blobs
// and published snapshots. Get returns (nil, nil) for a missing key;
// Delete is idempotent.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// New builds the object store selected by configuration.
func New(ctx context.Context, cfg *config.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
