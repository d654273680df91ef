// Package builder orchestrates one end-to-end opening-book build: map the
// PGN source, partition it on game boundaries, scan and replay each
// partition concurrently, merge and finalise the resulting records, and
// serialise the Polyglot binary plus its side-car manifest.
package builder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/polybook/internal/bookstore"
	"github.com/discochess/polybook/internal/codec"
	"github.com/discochess/polybook/internal/diagnostics"
	"github.com/discochess/polybook/internal/filemap"
	"github.com/discochess/polybook/internal/indexer"
	"github.com/discochess/polybook/internal/manifest"
	"github.com/discochess/polybook/internal/partition"
	"github.com/discochess/polybook/internal/pgn"
	"github.com/discochess/polybook/internal/stats"
)

// Builder drives one build. A Builder is reusable across calls to
// BuildFile but not safe for concurrent use by multiple goroutines.
type Builder struct {
	full     bool
	workers  int
	progress ProgressFunc
	stats    stats.Collector
	logger   *zap.Logger
	store    bookstore.Store
	codec    codec.Codec
}

// Option configures a Builder.
type Option func(*Builder)

// WithFullMode selects full mode, which preserves one record per originating
// game rather than collapsing equal-key runs to per-move frequencies.
func WithFullMode(full bool) Option {
	return func(b *Builder) { b.full = full }
}

// WithWorkers sets how many partitions are scanned concurrently. Values <=
// 0 are ignored, leaving the default of runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithProgress sets the progress callback; nil disables reporting.
func WithProgress(fn ProgressFunc) Option {
	return func(b *Builder) { b.progress = fn }
}

// WithStats sets the metrics collector. Default is stats.NewNoop().
func WithStats(c stats.Collector) Option {
	return func(b *Builder) {
		if c != nil {
			b.stats = c
		}
	}
}

// WithLogger sets the logger. Default is zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDistribution sets a Store the finished book and manifest are pushed
// to after a successful local write. Nil (the default) skips distribution.
func WithDistribution(s bookstore.Store) Option {
	return func(b *Builder) { b.store = s }
}

// WithCompression compresses the book and manifest with c before pushing
// them to the distribution Store. Nil (the default) distributes raw bytes.
// Has no effect without WithDistribution.
func WithCompression(c codec.Codec) Option {
	return func(b *Builder) { b.codec = c }
}

// New returns a Builder with sensible defaults.
func New(opts ...Option) *Builder {
	b := &Builder{
		full:     false,
		workers:  runtime.GOMAXPROCS(0),
		progress: DefaultProgressFunc,
		stats:    stats.NewNoop(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result summarises one completed build.
type Result struct {
	Games           int64
	Moves           int64
	Repaired        int64
	Abandoned       int64
	ScannerDropped  int64
	Entries         int64
	UniquePositions int64
	Duration        time.Duration
}

// countingCollector wraps a stats.Collector and mirrors the four ingest
// counters locally so BuildFile can stamp the manifest without requiring a
// read path on the (write-only) Collector interface.
type countingCollector struct {
	inner                              stats.Collector
	games, moves, repaired, abandoned  atomic.Int64
}

func (c *countingCollector) IncCounter(name string, delta int64) {
	c.inner.IncCounter(name, delta)
	switch name {
	case stats.MetricGames:
		c.games.Add(delta)
	case stats.MetricMoves:
		c.moves.Add(delta)
	case stats.MetricRepaired:
		c.repaired.Add(delta)
	case stats.MetricAbandoned:
		c.abandoned.Add(delta)
	}
}

func (c *countingCollector) SetGauge(name string, value int64) { c.inner.SetGauge(name, value) }

func (c *countingCollector) ObserveHistogram(name string, value float64) {
	c.inner.ObserveHistogram(name, value)
}

var _ stats.Collector = (*countingCollector)(nil)

// BuildFile ingests the PGN source at sourcePath (transparently
// decompressed if it carries a .gz or .zst extension) and writes a
// Polyglot book to outPath, with a side-car manifest next to it. If the
// Builder was given a distribution Store, the finished files are also
// pushed there under their base names.
func (b *Builder) BuildFile(ctx context.Context, sourcePath, outPath string) (*Result, error) {
	start := time.Now()

	mapped, err := filemap.Map(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("builder: mapping source: %w", err)
	}
	defer mapped.Close()

	chunks := partition.Split(mapped.Bytes(), b.workers)
	b.logger.Debug("partitioned source",
		zap.String("source", sourcePath),
		zap.Int("chunks", len(chunks)),
		zap.Int("workers", b.workers),
	)

	collector := &countingCollector{inner: b.stats}
	sink := diagnostics.NewZapSink(b.logger)

	type chunkResult struct {
		records        []indexer.Record
		emitted, drops int
	}
	results := make([]chunkResult, len(chunks))

	sem := make(chan struct{}, b.workers)
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(i int, chunk partition.Chunk) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var records []indexer.Record
			scanner := pgn.New(chunk.Data, chunk.Offset, func(g pgn.Game) {
				records = append(records, indexer.ReplayGame(g, collector)...)
			}, sink)
			scanner.Run()

			results[i] = chunkResult{
				records: records,
				emitted: scanner.GamesEmitted(),
				drops:   scanner.GamesDropped(),
			}
		}(i, chunk)
	}
	wg.Wait()

	var all []indexer.Record
	var scannerDropped int64
	for _, r := range results {
		all = append(all, r.records...)
		scannerDropped += int64(r.drops)
	}

	b.reportProgress(Progress{Phase: "replay", RecordsRead: int64(len(all)), StartTime: start})

	records := indexer.Finalize(all, b.full)
	unique := countUniqueKeys(records)
	if len(records) > 0 {
		b.stats.SetGauge(stats.MetricUniqueRatio, int64(float64(unique)/float64(len(records))*10000))
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("builder: creating output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("builder: creating %s: %w", outPath, err)
	}
	written, err := indexer.WriteBook(f, records, b.full)
	entries := written / int64(indexer.EntrySize)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("builder: writing book: %w", err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("builder: closing %s: %w", outPath, closeErr)
	}

	mode := "compact"
	if b.full {
		mode = "full"
	}
	m := manifest.New()
	m.SourcePath = sourcePath
	m.Mode = mode
	m.Games = collector.games.Load()
	m.Moves = collector.moves.Load()
	m.Repaired = collector.repaired.Load()
	m.Abandoned = collector.abandoned.Load() + scannerDropped
	m.UniquePosition = unique
	m.Entries = entries
	m.BuiltAt = start
	m.Duration = time.Since(start).String()
	m.ToolVersion = Version
	if err := manifest.Write(outPath, m); err != nil {
		return nil, fmt.Errorf("builder: writing manifest: %w", err)
	}

	if b.store != nil {
		if err := b.distribute(ctx, outPath, m); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Games:           collector.games.Load(),
		Moves:           collector.moves.Load(),
		Repaired:        collector.repaired.Load(),
		Abandoned:       collector.abandoned.Load(),
		ScannerDropped:  scannerDropped,
		Entries:         entries,
		UniquePositions: unique,
		Duration:        time.Since(start),
	}
	b.reportProgress(Progress{Phase: "done", RecordsWritten: entries, StartTime: start})
	return result, nil
}

func (b *Builder) distribute(ctx context.Context, outPath string, m *manifest.Manifest) error {
	binData, err := os.ReadFile(outPath)
	if err != nil {
		return fmt.Errorf("builder: reading %s for distribution: %w", outPath, err)
	}
	name := filepath.Base(outPath)
	if binData, name, err = b.maybeCompress(binData, name); err != nil {
		return err
	}
	if err := b.store.Write(ctx, name, binData); err != nil {
		return fmt.Errorf("builder: distributing %s: %w", name, err)
	}

	manifestPath := outPath + ".manifest.json"
	manifestData, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("builder: reading %s for distribution: %w", manifestPath, err)
	}
	manifestName := filepath.Base(manifestPath)
	if manifestData, manifestName, err = b.maybeCompress(manifestData, manifestName); err != nil {
		return err
	}
	if err := b.store.Write(ctx, manifestName, manifestData); err != nil {
		return fmt.Errorf("builder: distributing %s: %w", manifestName, err)
	}
	return nil
}

// maybeCompress runs data through b.codec, if one was set, and appends its
// extension to name so the pushed object name reflects its encoding.
func (b *Builder) maybeCompress(data []byte, name string) ([]byte, string, error) {
	if b.codec == nil {
		return data, name, nil
	}
	var buf bytes.Buffer
	w, err := b.codec.Writer(&buf)
	if err != nil {
		return nil, "", fmt.Errorf("builder: creating %s writer: %w", b.codec.Extension(), err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, "", fmt.Errorf("builder: compressing %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("builder: closing %s writer: %w", b.codec.Extension(), err)
	}
	if ext := b.codec.Extension(); ext != "" {
		name = name + "." + ext
	}
	return buf.Bytes(), name, nil
}

func (b *Builder) reportProgress(p Progress) {
	if b.progress != nil {
		b.progress(p)
	}
}

// countUniqueKeys counts distinct position keys in a key-sorted slice.
func countUniqueKeys(records []indexer.Record) int64 {
	if len(records) == 0 {
		return 0
	}
	var n int64 = 1
	for i := 1; i < len(records); i++ {
		if records[i].Key != records[i-1].Key {
			n++
		}
	}
	return n
}
