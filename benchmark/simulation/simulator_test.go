package simulation

import (
	"bytes"
	"testing"
)

func sampleSource(games int) []byte {
	var buf bytes.Buffer
	for i := 0; i < games; i++ {
		buf.WriteString("\n[Event \"Sample\"]\n[Site \"?\"]\n[Result \"1-0\"]\n\n1. e4 e5 2. Nf3 1-0\n")
	}
	return buf.Bytes()
}

func TestSimulator_SimulateSource(t *testing.T) {
	sim := NewSimulator(1, 2, 4)
	data := sampleSource(40)

	results := sim.SimulateSource(data)

	for _, workers := range []int{1, 2, 4} {
		result, ok := results[workers]
		if !ok {
			t.Fatalf("missing result for workers=%d", workers)
		}
		if len(result.ChunkSizes) == 0 {
			t.Errorf("workers=%d: no chunks produced", workers)
		}
		var total int
		for _, sz := range result.ChunkSizes {
			total += sz
		}
		if total != len(data) {
			t.Errorf("workers=%d: chunk sizes sum to %d, want %d", workers, total, len(data))
		}
	}
}

func TestSimulator_SimulateSources(t *testing.T) {
	sim := NewSimulator(1, 4)
	sources := [][]byte{sampleSource(20), sampleSource(80)}

	results := sim.SimulateSources(sources)

	for workers, agg := range results {
		if agg.TotalChunks == 0 {
			t.Errorf("workers=%d: TotalChunks = 0", workers)
		}
		if len(agg.ChunkSizesPerSource) != len(sources) {
			t.Errorf("workers=%d: ChunkSizesPerSource length = %d, want %d", workers, len(agg.ChunkSizesPerSource), len(sources))
		}
	}
}

func TestAggregateResult_ImbalanceRatio(t *testing.T) {
	result := &AggregateResult{AllChunkSizes: []int{100, 100, 100}}
	if got := result.ImbalanceRatio(); got != 1.0 {
		t.Errorf("ImbalanceRatio() = %f, want 1.0 for equal chunks", got)
	}

	result = &AggregateResult{AllChunkSizes: []int{50, 200}}
	if got := result.ImbalanceRatio(); got != 4.0 {
		t.Errorf("ImbalanceRatio() = %f, want 4.0", got)
	}
}

func TestMetrics_Computation(t *testing.T) {
	result := &AggregateResult{
		Workers:     4,
		TotalChunks: 3,
		AllChunkSizes: []int{800, 1000, 1200},
	}

	metrics := ComputeMetrics(result)

	if metrics.TotalChunks != 3 {
		t.Errorf("TotalChunks = %d, want 3", metrics.TotalChunks)
	}
	if metrics.MinChunkSize != 800 {
		t.Errorf("MinChunkSize = %d, want 800", metrics.MinChunkSize)
	}
	if metrics.MaxChunkSize != 1200 {
		t.Errorf("MaxChunkSize = %d, want 1200", metrics.MaxChunkSize)
	}
}
