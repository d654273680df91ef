// Package simulation measures how evenly internal/partition divides a PGN
// source across different worker counts, so the book command's --workers
// default can be sanity-checked against real source-file shapes.
package simulation

import (
	"github.com/discochess/polybook/internal/partition"
)

// Simulator partitions one source buffer at a fixed set of worker counts
// and reports the resulting chunk-size distribution for each.
type Simulator struct {
	workerCounts []int
}

// NewSimulator returns a Simulator that evaluates each of workerCounts.
func NewSimulator(workerCounts ...int) *Simulator {
	return &Simulator{workerCounts: workerCounts}
}

// SimulateSource partitions data once per configured worker count and
// returns the chunk-size results keyed by worker count.
func (s *Simulator) SimulateSource(data []byte) map[int]*PartitionResult {
	results := make(map[int]*PartitionResult, len(s.workerCounts))

	for _, workers := range s.workerCounts {
		chunks := partition.Split(data, workers)
		result := &PartitionResult{
			Workers:    workers,
			ChunkSizes: make([]int, len(chunks)),
		}
		for i, c := range chunks {
			result.ChunkSizes[i] = len(c.Data)
		}
		results[workers] = result
	}

	return results
}

// SimulateSources partitions several source buffers and aggregates the
// resulting chunk sizes per worker count, so Metrics reflects behaviour
// across a corpus of differently sized PGN files rather than one sample.
func (s *Simulator) SimulateSources(sources [][]byte) map[int]*AggregateResult {
	results := make(map[int]*AggregateResult, len(s.workerCounts))
	for _, workers := range s.workerCounts {
		results[workers] = &AggregateResult{Workers: workers}
	}

	for _, data := range sources {
		for workers, pr := range s.SimulateSource(data) {
			agg := results[workers]
			agg.TotalBytes += len(data)
			agg.TotalChunks += len(pr.ChunkSizes)
			agg.ChunkSizesPerSource = append(agg.ChunkSizesPerSource, len(pr.ChunkSizes))
			agg.AllChunkSizes = append(agg.AllChunkSizes, pr.ChunkSizes...)
		}
	}

	for _, agg := range results {
		if len(sources) > 0 {
			agg.AvgChunksPerSource = float64(agg.TotalChunks) / float64(len(sources))
		}
	}

	return results
}

// PartitionResult is the chunk-size outcome of one Split call.
type PartitionResult struct {
	Workers    int
	ChunkSizes []int
}

// AggregateResult accumulates chunk sizes across multiple sources at a
// fixed worker count.
type AggregateResult struct {
	Workers             int
	TotalBytes          int
	TotalChunks         int
	AvgChunksPerSource  float64
	ChunkSizesPerSource []int // Chunk count produced for each source.
	AllChunkSizes       []int // Every individual chunk's byte size, across all sources.
}

// ImbalanceRatio reports the largest chunk divided by the smallest, a
// simple measure of how unevenly Split divided the source; 1.0 is perfect
// balance.
func (a *AggregateResult) ImbalanceRatio() float64 {
	if len(a.AllChunkSizes) == 0 {
		return 0
	}
	min, max := a.AllChunkSizes[0], a.AllChunkSizes[0]
	for _, sz := range a.AllChunkSizes {
		if sz < min {
			min = sz
		}
		if sz > max {
			max = sz
		}
	}
	if min == 0 {
		return 0
	}
	return float64(max) / float64(min)
}
