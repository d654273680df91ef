package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/polybook"
	"github.com/discochess/polybook/internal/query"
)

var findCmd = &cobra.Command{
	Use:   "find [FEN]",
	Short: "Look up candidate moves for a position in an opening book",
	Long: `Query an opening book for a FEN position and print the candidate
moves it was played with, their weights, and win/loss/draw counts.

Examples:
  # Starting position
  polybook find --book openings.bin "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

var (
	findJSON   bool
	findTiming bool
)

func init() {
	findCmd.Flags().BoolVar(&findJSON, "json", false, "output result as JSON")
	findCmd.Flags().BoolVar(&findTiming, "timing", false, "show lookup timing")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	fen := args[0]

	opts, err := polybook.WithManifest(bookPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", bookPath, err)
	}
	opts = append(opts, polybook.WithLogger(newLogger()))

	client, err := polybook.New(opts...)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	defer client.Close()

	start := time.Now()
	result, err := client.Find(context.Background(), fen)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if findJSON {
		return printFindJSON(result, elapsed)
	}
	printFindText(result, elapsed)
	return nil
}

func printFindText(result *query.Result, elapsed time.Duration) {
	fmt.Printf("FEN: %s\n", result.FEN)
	fmt.Printf("Key: %d\n", result.Key)
	if len(result.Moves) == 0 {
		fmt.Println("No moves found in book.")
		return
	}
	for _, m := range result.Moves {
		fmt.Printf("  %-6s weight=%-5d games=%-5d wins=%-5d losses=%-5d draws=%-5d\n",
			m.Move, m.Weight, m.Games, m.Wins, m.Losses, m.Draws)
	}
	if findTiming {
		fmt.Printf("Time: %s\n", elapsed)
	}
}

func printFindJSON(result *query.Result, elapsed time.Duration) error {
	out := struct {
		FEN       string       `json:"fen"`
		Key       uint64       `json:"key"`
		Moves     []query.MoveStat `json:"moves"`
		ElapsedMS int64        `json:"elapsed_ms,omitempty"`
	}{
		FEN:   result.FEN,
		Key:   result.Key,
		Moves: result.Moves,
	}
	if findTiming {
		out.ElapsedMS = elapsed.Milliseconds()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
