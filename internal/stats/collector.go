// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Ingest metrics (internal/indexer).
	MetricGames       = "polybook_games_total"
	MetricMoves       = "polybook_moves_total"
	MetricRepaired    = "polybook_repaired_total"
	MetricAbandoned   = "polybook_abandoned_total"
	MetricUniqueRatio = "polybook_unique_position_ratio"

	// Query metrics (root Client.Find).
	MetricLookups      = "polybook_lookups_total"
	MetricHits         = "polybook_hits_total"
	MetricMisses       = "polybook_misses_total"
	MetricShardFetches = "polybook_shard_fetches_total"

	// Cache metrics.
	MetricCacheHits   = "polybook_cache_hits_total"
	MetricCacheMisses = "polybook_cache_misses_total"
	MetricCacheSize   = "polybook_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
