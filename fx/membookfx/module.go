// Package membookfx provides an fx module for an in-memory polybook client
// backed by pre-built book bytes. Useful for testing.
package membookfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/polybook"
	"github.com/discochess/polybook/internal/stats"
	"github.com/discochess/polybook/internal/stats/logger"
)

// Config holds the in-memory book bytes and mode the client is built with.
type Config struct {
	// Data is a complete Polyglot book, as produced by indexer.WriteBook.
	Data []byte

	// Full selects full mode for query decoding. Must match how Data was
	// written.
	Full bool
}

// Module provides an in-memory polybook client for testing. Requires a
// *zap.Logger and a Config to be provided.
var Module = fx.Module("membook",
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
	client, err := polybook.New(
		polybook.WithBookBytes(p.Config.Data),
		polybook.WithFullMode(p.Config.Full),
		polybook.WithStats(p.Collector),
		polybook.WithLogger(p.Logger.Named("polybook")),
	)
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
