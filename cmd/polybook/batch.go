package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v2"

	"github.com/discochess/polybook/internal/builder"
)

var batchCmd = &cobra.Command{
	Use:   "batch [job.yaml]",
	Short: "Run a YAML-configured sequence of book builds",
	Long: `Drive multiple PGN-to-book builds from a single YAML job file, one
after another. Each job acquires a file lock on its output path so two
batch runs never race on the same book.

Example job file:

  jobs:
    - source: games/2024.pgn
      output: books/2024.bin
      full: false
    - source: games/2023.pgn
      output: books/2023.bin
      full: true`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

// batchJob is one entry in a batch file.
type batchJob struct {
	Source  string `yaml:"source"`
	Output  string `yaml:"output"`
	Full    bool   `yaml:"full"`
	Workers int    `yaml:"workers"`
}

// batchConfig is the top-level shape of a batch job file.
type batchConfig struct {
	Jobs []batchJob `yaml:"jobs"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading job file: %w", err)
	}
	var cfg batchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing job file: %w", err)
	}
	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("job file defines no jobs")
	}

	logger := newLogger()
	defer logger.Sync()

	ctx := context.Background()
	for i, job := range cfg.Jobs {
		if job.Source == "" || job.Output == "" {
			return fmt.Errorf("job %d: source and output are required", i)
		}

		fmt.Printf("[%d/%d] %s -> %s\n", i+1, len(cfg.Jobs), job.Source, job.Output)

		if err := runBatchJob(ctx, logger, job); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, job.Source, err)
		}
	}

	return nil
}

func runBatchJob(ctx context.Context, logger *zap.Logger, job batchJob) error {
	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	lock := flock.New(job.Output + ".lock")
	locked, err := lock.TryLockContext(ctx, 200*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquiring build lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another build holds the lock on %s", job.Output)
	}
	defer lock.Unlock()

	opts := []builder.Option{
		builder.WithFullMode(job.Full),
		builder.WithProgress(builder.DefaultProgressFunc),
		builder.WithLogger(logger),
	}
	if job.Workers > 0 {
		opts = append(opts, builder.WithWorkers(job.Workers))
	}

	result, err := builder.New(opts...).BuildFile(ctx, job.Source, job.Output)
	if err != nil {
		return err
	}
	fmt.Printf("  games=%d entries=%d duration=%s\n", result.Games, result.Entries, result.Duration)
	return nil
}
