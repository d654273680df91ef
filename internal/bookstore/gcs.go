package bookstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSStore is a Google Cloud Storage-backed Store.
type GCSStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

var _ Store = (*GCSStore)(nil)

// NewGCSStore returns a Store backed by bucketName. The bucket must
// already exist.
func NewGCSStore(ctx context.Context, bucketName string, opts ...GCSOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("bookstore: creating GCS client: %w", err)
	}
	s := &GCSStore{client: client, bucket: client.Bucket(bucketName)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GCSOption configures a GCSStore.
type GCSOption func(*GCSStore)

// WithGCSPrefix sets a key prefix applied to every blob name.
func WithGCSPrefix(prefix string) GCSOption {
	return func(s *GCSStore) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

func (s *GCSStore) key(name string) string { return s.prefix + name }

func (s *GCSStore) Read(ctx context.Context, name string) ([]byte, error) {
	obj := s.bucket.Object(s.key(name))
	r, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookstore: opening GCS reader for %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bookstore: reading %s: %w", name, err)
	}
	return data, nil
}

func (s *GCSStore) Write(ctx context.Context, name string, data []byte) error {
	w := s.bucket.Object(s.key(name)).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("bookstore: writing %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("bookstore: closing GCS writer for %s: %w", name, err)
	}
	return nil
}

func (s *GCSStore) Close() error { return s.client.Close() }
