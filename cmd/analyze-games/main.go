// Command analyze-games walks real PGN games with notnil/chess and reports
// how much of each game's opening is covered by a polybook opening book.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/notnil/chess"

	"github.com/discochess/polybook"
)

func main() {
	pgnFile := flag.String("pgn", "./data/DrNykterstein.pgn", "PGN file to analyze")
	book := flag.String("book", "./openings.bin", "opening book to check coverage against")
	maxGames := flag.Int("games", 10, "max games to analyze")
	flag.Parse()

	opts, err := polybook.WithManifest(*book)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening book: %v\n", err)
		os.Exit(1)
	}
	client, err := polybook.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	f, err := os.Open(*pgnFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening PGN: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx := context.Background()
	scanner := chess.NewScanner(f)

	var totalPositions, foundPositions int
	var totalLookupTime time.Duration
	gamesAnalyzed := 0

	for scanner.Scan() && gamesAnalyzed < *maxGames {
		game := scanner.Next()
		gamesAnalyzed++

		white := game.GetTagPair("White")
		black := game.GetTagPair("Black")
		result := game.GetTagPair("Result")

		fmt.Printf("\n=== Game %d: %s vs %s (%s) ===\n",
			gamesAnalyzed, white.Value, black.Value, result.Value)

		positions := game.Positions()
		gameFound := 0

		for i, pos := range positions {
			fen := pos.String()
			parts := strings.Fields(fen)
			if len(parts) >= 4 {
				fen = strings.Join(parts[:4], " ")
			}

			start := time.Now()
			result, err := client.Find(ctx, fen)
			elapsed := time.Since(start)
			totalLookupTime += elapsed
			totalPositions++

			if err == nil && len(result.Moves) > 0 {
				foundPositions++
				gameFound++
				if i%10 == 0 || i == len(positions)-1 {
					fmt.Printf("  Ply %2d: %d candidate moves (%v)\n", i+1, len(result.Moves), elapsed)
				}
			}
		}

		hitRate := float64(gameFound) / float64(len(positions)) * 100
		fmt.Printf("  Positions in book: %d/%d (%.1f%%)\n", gameFound, len(positions), hitRate)
	}

	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Games analyzed: %d\n", gamesAnalyzed)
	fmt.Printf("Total positions: %d\n", totalPositions)
	if totalPositions > 0 {
		fmt.Printf("In book: %d (%.1f%%)\n", foundPositions, float64(foundPositions)/float64(totalPositions)*100)
		fmt.Printf("Avg lookup: %v\n", totalLookupTime/time.Duration(totalPositions))
	}
}
