// Command polybook-bench measures how evenly internal/partition divides a
// PGN source across different --workers counts, to sanity-check the book
// command's concurrency default against real source shapes.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/discochess/polybook/benchmark/analysis"
	"github.com/discochess/polybook/benchmark/pgn"
	"github.com/discochess/polybook/benchmark/reporting"
	"github.com/discochess/polybook/benchmark/simulation"
)

var (
	gamesFile    string
	workerCounts []string
	outputFormat string
	outputFile   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "polybook-bench",
	Short: "Benchmark partition balance for polybook builds",
	Long: `polybook-bench measures how evenly internal/partition divides a PGN
source across candidate --workers counts.

It reads a PGN file, splits it at each candidate worker count, and
reports the resulting chunk-size distribution and balance statistics,
so a build's --workers flag can be chosen from real source shapes
rather than guesswork.

Examples:
  # Compare the default worker counts
  polybook-bench run --games games.pgn

  # Compare a specific set of worker counts
  polybook-bench run --games games.pgn --workers 1,2,4,8,16

  # Output as a markdown report
  polybook-bench run --games games.pgn --format markdown --output report.md`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the partition balance simulation",
	RunE:  runBenchmark,
}

func init() {
	runCmd.Flags().StringVarP(&gamesFile, "games", "g", "", "PGN file to partition (supports .zst)")
	runCmd.Flags().StringSliceVarP(&workerCounts, "workers", "w", []string{"1", "2", "4", "8"}, "worker counts to compare")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	runCmd.MarkFlagRequired("games")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	data, err := readSource(gamesFile)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Read %d bytes from %s\n", len(data), gamesFile)
	}

	workers, err := parseWorkerCounts(workerCounts)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Extracting game statistics...")
	}
	_, gameStats, err := pgn.ExtractWithStats(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("extracting game statistics: %w", err)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Running partition simulation...")
	}

	sim := simulation.NewSimulator(workers...)
	results := sim.SimulateSources([][]byte{data})

	var comparison *analysis.WorkerComparison
	if len(workers) >= 2 {
		comparison = analysis.CompareWorkerCounts(
			results[workers[0]],
			results[workers[1]],
			10000,
			0.95,
		)
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	switch outputFormat {
	case "markdown":
		return writeMarkdownReport(output, gameStats, results, comparison)
	default:
		return writeTextReport(output, gameStats, results, comparison)
	}
}

func readSource(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening games file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer decoder.Close()
		reader = decoder
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading games file: %w", err)
	}
	return data, nil
}

func parseWorkerCounts(raw []string) ([]int, error) {
	workers := make([]int, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid worker count %q", s)
		}
		workers = append(workers, n)
	}
	return workers, nil
}

func writeTextReport(w io.Writer, stats pgn.GameStats, results map[int]*simulation.AggregateResult, comp *analysis.WorkerComparison) error {
	fmt.Fprintf(w, "Polybook Partition Balance Benchmark\n")
	fmt.Fprintf(w, "=====================================\n\n")
	fmt.Fprintf(w, "Games:     %d\n", stats.TotalGames)
	fmt.Fprintf(w, "Positions: %d\n\n", stats.TotalPositions)

	fmt.Fprintf(w, "Results:\n")
	fmt.Fprintf(w, "--------\n\n")

	for workers, res := range results {
		metrics := simulation.ComputeMetrics(res)
		fmt.Fprintf(w, "workers=%d:\n", workers)
		fmt.Fprintf(w, "  Chunks:            %d\n", metrics.TotalChunks)
		fmt.Fprintf(w, "  Median chunk size: %.0f bytes\n", metrics.MedianChunkSize)
		fmt.Fprintf(w, "  P90 chunk size:    %.0f bytes\n", metrics.P90ChunkSize)
		fmt.Fprintf(w, "  Imbalance ratio:   %.2fx\n\n", res.ImbalanceRatio())
	}

	if comp != nil {
		fmt.Fprintf(w, "Statistical Analysis:\n")
		fmt.Fprintf(w, "---------------------\n\n")
		fmt.Fprintln(w, comp.Summary())
	}

	return nil
}

func writeMarkdownReport(w io.Writer, stats pgn.GameStats, results map[int]*simulation.AggregateResult, comp *analysis.WorkerComparison) error {
	report := reporting.NewMarkdownReport(w)
	report.WriteHeader("Polybook Partition Balance Benchmark")
	var sources, totalBytes int
	for _, res := range results {
		sources, totalBytes = len(res.ChunkSizesPerSource), res.TotalBytes
		break
	}
	report.WriteMethodology(sources, totalBytes)
	report.WriteSummaryTable(results)

	if comp != nil {
		report.WriteComparison(comp)
	}

	report.WriteFooter()
	return nil
}
