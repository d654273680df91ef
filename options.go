package polybook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/discochess/polybook/internal/bookstore"
	"github.com/discochess/polybook/internal/filemap"
	"github.com/discochess/polybook/internal/manifest"
	"github.com/discochess/polybook/internal/stats"
)

// Option configures a Client.
type Option interface {
	apply(*options)
}

// options holds the client configuration.
type options struct {
	mapped    filemap.Mapped
	data      []byte
	full      bool
	cacheSize int
	stats     stats.Collector
	logger    *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		cacheSize: 4096,
		stats:     stats.NewNoop(),
		logger:    zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithBookPath loads a Polyglot book from disk, transparently mapped or
// decompressed per internal/filemap's rules (.bin, .bin.gz, .bin.zst).
func WithBookPath(path string) (Option, error) {
	mapped, err := filemap.Map(path)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	return optionFunc(func(o *options) {
		o.mapped = mapped
	}), nil
}

// WithBookBytes configures the client from an already-loaded book buffer,
// primarily for tests and callers that manage their own book lifetime.
func WithBookBytes(data []byte) Option {
	return optionFunc(func(o *options) {
		o.data = data
	})
}

// WithRemoteBook fetches name from store and configures the client from
// the resulting bytes. The store is not retained; callers that want to
// keep distributing to it should hold their own reference.
func WithRemoteBook(ctx context.Context, store bookstore.Store, name string) (Option, error) {
	data, err := store.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s from store: %w", name, err)
	}
	return WithBookBytes(data), nil
}

// WithFullMode tells the client the loaded book was built in full mode, so
// query statistics are derived from the raw per-game entry multiset rather
// than collapsed per-move weights. Must match how the book was built.
func WithFullMode(full bool) Option {
	return optionFunc(func(o *options) {
		o.full = full
	})
}

// WithCacheSize sets the number of distinct FEN lookups memoised in the
// client's query cache. Zero disables caching. Default is 4096.
func WithCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.cacheSize = n
	})
}

// WithStats sets the metrics collector. Default is stats.NewNoop().
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger. Default is zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithManifest reads the side-car manifest for a book at path and derives
// WithFullMode from its recorded build mode, then loads the book itself.
// This is the recommended way to open a book built by cmd/polybook.
func WithManifest(path string) ([]Option, error) {
	m, err := manifest.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest for %s: %w", path, err)
	}
	bookOpt, err := WithBookPath(path)
	if err != nil {
		return nil, err
	}
	return []Option{bookOpt, WithFullMode(m.Mode == "full")}, nil
}
