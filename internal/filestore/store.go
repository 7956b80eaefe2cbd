// Package filestore defines the interface for object storage backends that
// receive generated artifacts.
//
// Callers depend only on this package, never on a specific provider package.
//
// Usage:
//
//	cfg := filestore.DefaultConfig("localhost:9000", "minioadmin", "minioadmin", "artifacts")
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
//
//	info, err := store.PutObject(ctx, "artifacts", "pojo/AccountsEntity.java", data, filestore.PutOptions{})
package filestore

import "context"

// Store is the single interface all file storage providers must implement.
// Implementations are safe for concurrent use by multiple goroutines.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources (connections, goroutines, etc.).
	Close() error

	// EnsureBucket creates bucket if it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error

	// PutObject stores data at key inside bucket, replacing any existing
	// object with the same key.
	PutObject(ctx context.Context, bucket, key string, data []byte, opts PutOptions) (*ObjectInfo, error)
}
