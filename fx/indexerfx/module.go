// Package indexerfx provides an fx module for a configured builder.Builder,
// so a long-running service can drive book builds without constructing the
// pipeline by hand.
package indexerfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/polybook/internal/builder"
	"github.com/discochess/polybook/internal/stats"
	"github.com/discochess/polybook/internal/stats/logger"
)

// Config holds configuration for the builder.
type Config struct {
	// Full selects full mode, retaining one record per originating game.
	Full bool

	// Workers caps concurrent scan/replay goroutines. Zero uses
	// runtime.GOMAXPROCS(0).
	Workers int
}

// Module provides a *builder.Builder. Requires a *zap.Logger and a Config
// to be provided.
var Module = fx.Module("indexer",
	fx.Provide(
		newStatsCollector,
		newBuilder,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("builder.stats"))
}

// Params holds dependencies for creating the builder.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
}

func newBuilder(p Params) *builder.Builder {
	opts := []builder.Option{
		builder.WithFullMode(p.Config.Full),
		builder.WithStats(p.Collector),
		builder.WithLogger(p.Logger.Named("builder")),
	}
	if p.Config.Workers > 0 {
		opts = append(opts, builder.WithWorkers(p.Config.Workers))
	}
	return builder.New(opts...)
}
