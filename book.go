// Package polybook provides fast lookups into a Polyglot opening book built
// from a corpus of PGN games.
//
// Example usage:
//
//	client, err := polybook.New(
//	    polybook.WithBookPath("/path/to/openings.bin"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Find(ctx, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range result.Moves {
//	    fmt.Printf("%s weight=%d games=%d\n", m.Move, m.Weight, m.Games)
//	}
package polybook

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/polybook/internal/filemap"
	"github.com/discochess/polybook/internal/query"
	"github.com/discochess/polybook/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNoBook indicates no book data was provided.
	ErrNoBook = errors.New("polybook: no book provided")

	// ErrClosed indicates the client has been closed.
	ErrClosed = errors.New("polybook: client closed")
)

// Client answers FEN queries against an in-memory opening book.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	mapped filemap.Mapped
	data   []byte
	full   bool
	cache  *queryCache
	stats  stats.Collector
	logger *zap.Logger
	closed atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.data == nil && cfg.mapped == nil {
		return nil, ErrNoBook
	}

	c := &Client{
		mapped: cfg.mapped,
		full:   cfg.full,
		stats:  cfg.stats,
		logger: cfg.logger,
	}
	if cfg.mapped != nil {
		c.data = cfg.mapped.Bytes()
	} else {
		c.data = cfg.data
	}
	if cfg.cacheSize > 0 {
		c.cache = newQueryCache(cfg.cacheSize)
	}

	c.logger.Debug("client initialized",
		zap.Int("entries", len(c.data)/16),
		zap.Bool("full", c.full),
		zap.Int("cacheSize", cfg.cacheSize),
	)

	return c, nil
}

// Find returns the book entry for a given FEN position. A position absent
// from the book is not an error: the returned Result has a nil Moves slice.
func (c *Client) Find(ctx context.Context, fen string) (*query.Result, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.stats.IncCounter(stats.MetricLookups, 1)

	if c.cache != nil {
		if result, ok := c.cache.get(fen); ok {
			c.stats.IncCounter(stats.MetricCacheHits, 1)
			return result, nil
		}
		c.stats.IncCounter(stats.MetricCacheMisses, 1)
	}

	result, err := query.Lookup(c.data, fen, c.full)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", fen, err)
	}

	if len(result.Moves) == 0 {
		c.stats.IncCounter(stats.MetricMisses, 1)
	} else {
		c.stats.IncCounter(stats.MetricHits, 1)
	}

	if c.cache != nil {
		c.cache.add(fen, result)
		c.stats.SetGauge(stats.MetricCacheSize, int64(c.cache.len()))
	}

	return result, nil
}

// Close releases all resources associated with the client.
// After Close, the client should not be used.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if c.mapped != nil {
		if err := c.mapped.Close(); err != nil {
			return fmt.Errorf("closing book: %w", err)
		}
	}
	return nil
}

// FullMode reports whether the client's book was built in full mode,
// meaning move statistics are computed from the raw per-game entry
// multiset rather than collapsed per-move weights.
func (c *Client) FullMode() bool { return c.full }

// Entries returns the number of 16-byte Polyglot records in the book.
func (c *Client) Entries() int { return len(c.data) / 16 }
