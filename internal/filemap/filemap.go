// Package filemap provides the read-only, lifetime-scoped byte view the
// scanner reads from: a true mmap on unix, or compressed-input and
// fallback paths that read the file fully into memory.
package filemap

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sys/unix"
)

// Mapped is a read-only byte view over a file, released by Close.
type Mapped interface {
	Bytes() []byte
	Close() error
}

// Map opens path and returns a Mapped view over its contents. Files whose
// names end in .gz or .zst are detected by extension and decompressed fully
// into memory (compressed streams cannot be mmap'd); any other file is
// memory-mapped directly.
func Map(path string) (Mapped, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return readCompressed(path, gzipReader)
	case strings.HasSuffix(path, ".zst"):
		return readCompressed(path, zstdReader)
	default:
		return mmapFile(path)
	}
}

func gzipReader(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

type bufferedMap struct{ data []byte }

func (b *bufferedMap) Bytes() []byte { return b.data }
func (b *bufferedMap) Close() error  { return nil }

func readCompressed(path string, newReader func(io.Reader) (io.ReadCloser, error)) (Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filemap: opening %s: %w", path, err)
	}
	defer f.Close()

	dec, err := newReader(f)
	if err != nil {
		return nil, fmt.Errorf("filemap: decompressing %s: %w", path, err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("filemap: reading %s: %w", path, err)
	}
	return &bufferedMap{data: data}, nil
}

type mmapped struct {
	data []byte
}

func (m *mmapped) Bytes() []byte { return m.data }

func (m *mmapped) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}

func mmapFile(path string) (Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filemap: opening %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("filemap: stat %s: %w", path, err)
	}
	if fi.Size() == 0 {
		return &bufferedMap{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("filemap: mmap %s: %w", path, err)
	}
	return &mmapped{data: data}, nil
}
