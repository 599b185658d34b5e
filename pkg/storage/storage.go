package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/feichai0017/floorplan-processor/pkg/logger"
	"github.com/feichai0017/floorplan-processor/pkg/storage/local"
	"github.com/feichai0017/floorplan-processor/pkg/storage/minio"
	"github.com/feichai0017/floorplan-processor/pkg/storage/s3"
)

// StorageType selects a backend implementation.
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeMinio StorageType = "minio"
	StorageTypeLocal StorageType = "local"
)

// Storage resolves floor-plan sources. Get returns the object stream along
// with its size in bytes; the size feeds the parse progress estimate, so
// backends must report it rather than -1.
type Storage interface {
	// Get opens the object and reports its total size.
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	// Store uploads an object.
	Store(ctx context.Context, reader io.Reader, key string) (string, error)
	// Delete removes an object.
	Delete(ctx context.Context, key string) error
	// CleanupBefore removes objects last modified before threshold.
	CleanupBefore(ctx context.Context, threshold time.Time) error
}

// NewStorage is the backend factory.
func NewStorage(storageType StorageType, log logger.Logger) (Storage, error) {
	switch storageType {
	case StorageTypeS3:
		return s3.GetClient(log)
	case StorageTypeMinio:
		return minio.GetClient(log)
	case StorageTypeLocal:
		return local.GetClient(log)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
