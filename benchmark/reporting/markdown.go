// Package reporting renders benchmark/simulation and benchmark/analysis
// results as Markdown, for the partition-balance report polybook-bench
// writes when comparing --workers configurations.
package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/discochess/polybook/benchmark/analysis"
	"github.com/discochess/polybook/benchmark/simulation"
)

// MarkdownReport generates benchmark reports in Markdown format.
type MarkdownReport struct {
	w io.Writer
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the methodology section.
func (r *MarkdownReport) WriteMethodology(sourceCount, totalBytes int) {
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Sources partitioned:** %d\n", sourceCount)
	fmt.Fprintf(r.w, "- **Total bytes:** %d\n", totalBytes)
	fmt.Fprintln(r.w, "- **Metric:** chunk size in bytes per worker-count configuration (tighter spread is better)")
	fmt.Fprintln(r.w, "- **Statistical tests:** Mann-Whitney U (non-parametric), Cohen's d effect size")
	fmt.Fprintln(r.w)
}

// WriteSummaryTable writes the summary comparison table.
func (r *MarkdownReport) WriteSummaryTable(results map[int]*simulation.AggregateResult) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Workers | Avg Chunks/Source | Median Chunk Size | Imbalance Ratio |")
	fmt.Fprintln(r.w, "|---------|--------------------|--------------------|------------------|")

	for workers, res := range results {
		metrics := simulation.ComputeMetrics(res)
		fmt.Fprintf(r.w, "| %d | %.2f | %.0f | %.2fx |\n",
			workers, metrics.AvgChunksPerSource, metrics.MedianChunkSize, res.ImbalanceRatio())
	}
	fmt.Fprintln(r.w)
}

// WriteComparison writes a detailed comparison section.
func (r *MarkdownReport) WriteComparison(comp *analysis.WorkerComparison) {
	fmt.Fprintf(r.w, "## workers=%d vs workers=%d\n\n", comp.Workers1, comp.Workers2)

	label1 := fmt.Sprintf("workers=%d", comp.Workers1)
	label2 := fmt.Sprintf("workers=%d", comp.Workers2)

	fmt.Fprintln(r.w, "### Descriptive Statistics")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Metric | "+label1+" | "+label2+" |")
	fmt.Fprintln(r.w, "|--------|"+strings.Repeat("-", len(label1)+2)+"|"+strings.Repeat("-", len(label2)+2)+"|")
	fmt.Fprintf(r.w, "| Mean | %.0f | %.0f |\n", comp.Stats1.Mean, comp.Stats2.Mean)
	fmt.Fprintf(r.w, "| Median | %.0f | %.0f |\n", comp.Stats1.Median, comp.Stats2.Median)
	fmt.Fprintf(r.w, "| Std Dev | %.0f | %.0f |\n", comp.Stats1.StdDev, comp.Stats2.StdDev)
	fmt.Fprintf(r.w, "| Min | %.0f | %.0f |\n", comp.Stats1.Min, comp.Stats2.Min)
	fmt.Fprintf(r.w, "| Max | %.0f | %.0f |\n", comp.Stats1.Max, comp.Stats2.Max)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Statistical Analysis")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Mann-Whitney U:** %.2f (z=%.2f, p=%.4f)\n",
		comp.MannWhitney.U, comp.MannWhitney.Z, comp.MannWhitney.PValue)
	fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
		comp.EffectSize.CohensD, comp.EffectSize.Interpretation)
	fmt.Fprintf(r.w, "- **95%% CI for mean difference:** [%.2f, %.2f]\n",
		comp.BootstrapCI.LowerBound, comp.BootstrapCI.UpperBound)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Conclusion")
	fmt.Fprintln(r.w)
	if comp.WinnerConfident {
		other := comp.Workers1
		if comp.MoreBalanced == comp.Workers1 {
			other = comp.Workers2
		}
		fmt.Fprintf(r.w, "**workers=%d** partitions measurably more evenly than workers=%d ",
			comp.MoreBalanced, other)
		fmt.Fprintf(r.w, "(p < 0.05, effect size: %s).\n", comp.EffectSize.Interpretation)
	} else {
		fmt.Fprintln(r.w, "No statistically significant difference in chunk balance detected (p >= 0.05).")
	}
	fmt.Fprintln(r.w)
}

// WriteDistributionChart writes an ASCII histogram of a chunk-size sample.
func (r *MarkdownReport) WriteDistributionChart(name string, data []int) {
	fmt.Fprintf(r.w, "### %s Distribution\n\n", name)
	fmt.Fprintln(r.w, "```")

	hist, bucketSize, min := makeHistogram(data, 10)
	maxCount := 0
	for _, count := range hist {
		if count > maxCount {
			maxCount = count
		}
	}

	width := 40
	for i, count := range hist {
		barLen := 0
		if maxCount > 0 {
			barLen = count * width / maxCount
		}
		bar := strings.Repeat("█", barLen)
		lo := min + int(float64(i)*bucketSize)
		hi := min + int(float64(i+1)*bucketSize) - 1
		fmt.Fprintf(r.w, "%8d-%8d │ %s %d\n", lo, hi, bar, count)
	}

	fmt.Fprintln(r.w, "```")
	fmt.Fprintln(r.w)
}

func makeHistogram(data []int, buckets int) (hist []int, bucketSize float64, min int) {
	if len(data) == 0 {
		return make([]int, buckets), 1, 0
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		max = min + 1
	}

	hist = make([]int, buckets)
	bucketSize = float64(max-min+1) / float64(buckets)

	for _, v := range data {
		bucket := int(float64(v-min) / bucketSize)
		if bucket >= buckets {
			bucket = buckets - 1
		}
		hist[bucket]++
	}

	return hist, bucketSize, min
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by polybook-bench*")
}
