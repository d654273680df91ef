package bookstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore is a filesystem-backed Store rooted at a directory.
type DiskStore struct {
	root string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore returns a Store rooted at root. The directory must exist.
func NewDiskStore(root string) (*DiskStore, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("bookstore: stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bookstore: %s is not a directory", root)
	}
	return &DiskStore{root: root}, nil
}

func (d *DiskStore) Read(ctx context.Context, name string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookstore: reading %s: %w", name, err)
	}
	return data, nil
}

func (d *DiskStore) Write(ctx context.Context, name string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path := filepath.Join(d.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("bookstore: creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bookstore: writing %s: %w", name, err)
	}
	return nil
}

func (d *DiskStore) Close() error { return nil }
