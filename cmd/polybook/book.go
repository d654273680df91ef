package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/polybook/internal/builder"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Build a Polyglot opening book from a PGN source",
	Long: `Ingest a PGN file and write a sorted Polyglot opening book.

The source is memory-mapped (or fully buffered, transparently, for
.pgn.gz / .pgn.zst inputs) and partitioned on game boundaries so the scan
and replay stages run concurrently across workers; results are merged,
deduplicated, and frequency-reranked before being written out.

Examples:
  # Build a compact book
  polybook book --source games.pgn --output openings.bin

  # Build a full-provenance book, keeping one record per game
  polybook book --source games.pgn --output openings.bin --full

  # Build and push to a GCS bucket
  polybook book --source games.pgn --output openings.bin --output-gcs gs://my-bucket/books`,
	RunE: runBook,
}

var (
	bookSource    string
	bookOutput    string
	bookOutputGCS string
	bookOutputS3  string
	bookFull      bool
	bookWorkers   int
	bookCompress  string
)

func init() {
	bookCmd.Flags().StringVar(&bookSource, "source", "", "source PGN file (required; .pgn, .pgn.gz, .pgn.zst)")
	bookCmd.Flags().StringVarP(&bookOutput, "output", "o", "openings.bin", "output path for the book file")
	bookCmd.Flags().StringVar(&bookOutputGCS, "output-gcs", "", "GCS path to additionally push the book to (gs://bucket/prefix)")
	bookCmd.Flags().StringVar(&bookOutputS3, "output-s3", "", "S3 path to additionally push the book to (s3://bucket/prefix)")
	bookCmd.Flags().BoolVar(&bookFull, "full", false, "retain one record per originating game instead of collapsing to per-move frequencies")
	bookCmd.Flags().IntVar(&bookWorkers, "workers", 0, "number of concurrent scan/replay workers (default: GOMAXPROCS)")
	bookCmd.Flags().StringVar(&bookCompress, "compress", "none", "compress the book and manifest before distribution (none, gzip, zstd)")
	bookCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(bookCmd)
}

func runBook(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cleaning up...")
		cancel()
	}()

	logger := newLogger()
	defer logger.Sync()

	store, storeName, err := resolveDistribution(ctx)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	bookCodec, err := resolveCodec(bookCompress)
	if err != nil {
		return err
	}

	opts := []builder.Option{
		builder.WithFullMode(bookFull),
		builder.WithLogger(logger),
		builder.WithProgress(builder.DefaultProgressFunc),
	}
	if bookWorkers > 0 {
		opts = append(opts, builder.WithWorkers(bookWorkers))
	}
	if store != nil {
		opts = append(opts, builder.WithDistribution(store))
		if bookCodec != nil {
			opts = append(opts, builder.WithCompression(bookCodec))
		}
	}

	b := builder.New(opts...)

	fmt.Printf("Building opening book\n")
	fmt.Printf("  Source: %s\n", bookSource)
	fmt.Printf("  Output: %s\n", bookOutput)
	mode := "compact"
	if bookFull {
		mode = "full"
	}
	fmt.Printf("  Mode:   %s\n", mode)
	if storeName != "" {
		fmt.Printf("  Distribute: %s\n", storeName)
	}
	fmt.Println()

	start := time.Now()
	result, err := b.BuildFile(ctx, bookSource, bookOutput)
	if err != nil {
		logger.Error("build failed", zap.Error(err))
		return fmt.Errorf("building book: %w", err)
	}

	fmt.Printf("Games:     %d\n", result.Games)
	fmt.Printf("Moves:     %d\n", result.Moves)
	fmt.Printf("Repaired:  %d\n", result.Repaired)
	fmt.Printf("Abandoned: %d\n", result.Abandoned+result.ScannerDropped)
	fmt.Printf("Entries:   %d\n", result.Entries)
	fmt.Printf("Unique:    %d\n", result.UniquePositions)
	fmt.Printf("Duration:  %s\n", time.Since(start))

	return nil
}
