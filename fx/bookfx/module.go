// Package bookfx provides an fx module for a disk-backed polybook client,
// wired with the book's own side-car manifest and a zap-logging stats
// collector.
package bookfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/polybook"
	"github.com/discochess/polybook/internal/stats"
	"github.com/discochess/polybook/internal/stats/logger"
)

// Config holds configuration for the book client.
type Config struct {
	// BookPath is the Polyglot book file to open. Its mode (compact or
	// full) is read from the side-car manifest next to it.
	BookPath string

	// CacheSize is the number of FEN lookups to cache in memory. Zero or
	// a negative value selects the default of 4096.
	CacheSize int
}

// Module provides a disk-backed polybook client. Requires a *zap.Logger
// and a Config to be provided.
var Module = fx.Module("book",
	fx.Provide(
		newStatsCollector,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("polybook.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *polybook.Client
}

func newClient(p Params) (Result, error) {
	opts, err := polybook.WithManifest(p.Config.BookPath)
	if err != nil {
		return Result{}, err
	}

	cacheSize := p.Config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 4096
	}

	opts = append(opts,
		polybook.WithCacheSize(cacheSize),
		polybook.WithStats(p.Collector),
		polybook.WithLogger(p.Logger.Named("polybook")),
	)

	client, err := polybook.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}
