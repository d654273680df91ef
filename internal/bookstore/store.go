// Package bookstore generalises the lookup-only store.Store interface
// from "read a shard" to "read or write a named blob", so the same family
// of backends (disk, GCS, S3, memory) can serve both book distribution
// after a build and book retrieval before a query.
package bookstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a named blob does not exist in the store.
var ErrNotFound = errors.New("bookstore: blob not found")

// Store reads and writes named blobs (a built .bin file and its .manifest.json).
type Store interface {
	// Read returns the full contents of the blob named name.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write stores data under name, creating or overwriting it.
	Write(ctx context.Context, name string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}
