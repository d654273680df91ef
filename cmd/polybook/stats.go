package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/discochess/polybook/internal/indexer"
	"github.com/discochess/polybook/internal/manifest"
	"github.com/discochess/polybook/internal/pgn"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about an opening book",
	Long: `Display descriptive statistics about an opening book: entry and
position counts, the mean and standard deviation of moves-per-position,
and the book-wide win/draw/loss proportions, all computed from the binary
itself, plus build ID, mode, build time and game count from the side-car
manifest when one is present.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	f, err := os.Open(bookPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", bookPath, err)
	}
	defer f.Close()

	records, err := indexer.ReadBook(f)
	if err != nil {
		return fmt.Errorf("reading book: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("Book is empty.")
		return nil
	}

	movesPerPosition, wins, losses, draws, unknown := positionStats(records)

	fmt.Printf("Book:      %s\n", bookPath)
	fmt.Printf("Entries:   %d\n", len(records))
	fmt.Printf("Positions: %d\n", len(movesPerPosition))

	mean, stddev := stat.MeanStdDev(movesPerPosition, nil)
	fmt.Printf("Moves/position: mean=%.2f stddev=%.2f\n", mean, stddev)

	total := float64(wins + losses + draws + unknown)
	if total > 0 {
		fmt.Printf("Outcomes:  wins=%.1f%% losses=%.1f%% draws=%.1f%% unknown=%.1f%%\n",
			100*float64(wins)/total, 100*float64(losses)/total, 100*float64(draws)/total, 100*float64(unknown)/total)
	}

	if m, err := manifest.Read(bookPath); err == nil {
		fmt.Printf("Build ID:  %s\n", m.BuildID)
		fmt.Printf("Mode:      %s\n", m.Mode)
		fmt.Printf("Built:     %s (%s)\n", m.BuiltAt.Format("2006-01-02 15:04:05"), m.Duration)
		fmt.Printf("Games:     %d\n", m.Games)
	}

	return nil
}

// positionStats walks key-sorted records once, counting moves per distinct
// position and tallying outcome codes across every entry's learn word.
func positionStats(records []indexer.Record) (movesPerPosition []float64, wins, losses, draws, unknown int) {
	count := 0
	for i, r := range records {
		if i == 0 || r.Key != records[i-1].Key {
			if i > 0 {
				movesPerPosition = append(movesPerPosition, float64(count))
			}
			count = 0
		}
		count++

		switch indexer.ResultOf(r.Learn) {
		case pgn.WhiteWin:
			wins++
		case pgn.BlackWin:
			losses++
		case pgn.Draw:
			draws++
		default:
			unknown++
		}
	}
	movesPerPosition = append(movesPerPosition, float64(count))
	return movesPerPosition, wins, losses, draws, unknown
}
