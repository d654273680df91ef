package analysis

import (
	"fmt"

	"github.com/discochess/polybook/benchmark/simulation"
)

// WorkerComparison contains a full statistical comparison between two
// worker-count configurations' chunk-size distributions.
type WorkerComparison struct {
	Workers1        int
	Workers2        int
	Stats1          *DescriptiveStats
	Stats2          *DescriptiveStats
	MannWhitney     *MannWhitneyResult
	EffectSize      *EffectSize
	BootstrapCI     *BootstrapResult
	MoreBalanced    int // Worker count with the smaller chunk-size spread, or 0 for a tie.
	WinnerConfident bool
}

// CompareWorkerCounts performs a full statistical comparison between two
// worker-count configurations' partitioning outcomes.
func CompareWorkerCounts(
	result1, result2 *simulation.AggregateResult,
	bootstrapIterations int,
	confidence float64,
) *WorkerComparison {
	sample1 := intsToFloats(result1.AllChunkSizes)
	sample2 := intsToFloats(result2.AllChunkSizes)

	mw := MannWhitneyU(sample1, sample2)
	es := ComputeEffectSize(sample1, sample2)
	bs := BootstrapConfidenceInterval(sample1, sample2, bootstrapIterations, confidence)

	stats1 := Describe(sample1)
	stats2 := Describe(sample2)

	var winner int
	var confident bool

	switch {
	case stats1.StdDev < stats2.StdDev:
		winner = result1.Workers
		confident = mw.Significant
	case stats2.StdDev < stats1.StdDev:
		winner = result2.Workers
		confident = mw.Significant
	default:
		winner = 0
	}

	return &WorkerComparison{
		Workers1:        result1.Workers,
		Workers2:        result2.Workers,
		Stats1:          stats1,
		Stats2:          stats2,
		MannWhitney:     mw,
		EffectSize:      es,
		BootstrapCI:     bs,
		MoreBalanced:    winner,
		WinnerConfident: confident,
	}
}

// Summary returns a human-readable summary of the comparison.
func (c *WorkerComparison) Summary() string {
	sig := "not statistically significant"
	if c.MannWhitney.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.MannWhitney.PValue)
	}

	winner := fmt.Sprintf("workers=%d", c.MoreBalanced)
	if c.MoreBalanced == 0 {
		winner = "tie"
	}

	return fmt.Sprintf(
		"workers=%d vs workers=%d:\n"+
			"  workers=%d: mean=%.0f, median=%.0f, std=%.0f bytes/chunk\n"+
			"  workers=%d: mean=%.0f, median=%.0f, std=%.0f bytes/chunk\n"+
			"  Difference: %.0f bytes/chunk (%.1f%%)\n"+
			"  Effect size: %.2f (%s)\n"+
			"  More balanced: %s, %s",
		c.Workers1, c.Workers2,
		c.Workers1, c.Stats1.Mean, c.Stats1.Median, c.Stats1.StdDev,
		c.Workers2, c.Stats2.Mean, c.Stats2.Median, c.Stats2.StdDev,
		c.Stats1.Mean-c.Stats2.Mean,
		safePctDiff(c.Stats1.Mean, c.Stats2.Mean),
		c.EffectSize.CohensD, c.EffectSize.Interpretation,
		winner, sig,
	)
}

func intsToFloats(ints []int) []float64 {
	floats := make([]float64, len(ints))
	for i, v := range ints {
		floats[i] = float64(v)
	}
	return floats
}

func safePctDiff(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// MultiWorkerComparison compares several worker counts against a baseline.
type MultiWorkerComparison struct {
	Baseline    int
	Comparisons []*WorkerComparison
}

// CompareAll compares every configuration in results against baseline.
func CompareAll(
	results map[int]*simulation.AggregateResult,
	baseline int,
	bootstrapIterations int,
	confidence float64,
) *MultiWorkerComparison {
	baseResult, ok := results[baseline]
	if !ok {
		return nil
	}

	multi := &MultiWorkerComparison{Baseline: baseline}

	for workers, result := range results {
		if workers == baseline {
			continue
		}
		comp := CompareWorkerCounts(baseResult, result, bootstrapIterations, confidence)
		multi.Comparisons = append(multi.Comparisons, comp)
	}

	return multi
}
