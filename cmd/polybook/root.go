package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	bookPath string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "polybook",
	Short: "Build and query Polyglot opening books from PGN game collections",
	Long: `polybook ingests a corpus of PGN games and produces a Polyglot
opening-book file: a sorted, binary index mapping each position reached
during play to the legal moves played from it, with frequency weights and
optional win/loss/draw statistics and offsets back into the source PGN.

Examples:
  # Build a book from a local PGN file
  polybook book --source games.pgn --output openings.bin

  # Query a position
  polybook find --book openings.bin "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

  # Show book statistics
  polybook stats --book openings.bin`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&bookPath, "book", "b", "openings.bin", "path to the Polyglot book file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
