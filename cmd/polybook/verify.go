package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/polybook/internal/indexer"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of an opening book",
	Long: `Verify that a book's entries are sorted by key and, within each
key, that no (move) pair appears twice unless the book was built in full
mode (where repeated game occurrences are expected).`,
	RunE: runVerify,
}

var verifyFull bool

func init() {
	verifyCmd.Flags().BoolVar(&verifyFull, "full", false, "the book was built in full mode; skip the duplicate-move check")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	var errCount int
	seen := make(map[uint16]bool)
	for i, r := range records {
		if i > 0 {
			prev := records[i-1]
			if r.Key < prev.Key {
				fmt.Printf("ERROR: entry %d: key %d is out of order after %d\n", i, r.Key, prev.Key)
				errCount++
			}
			if r.Key != prev.Key {
				seen = make(map[uint16]bool)
			}
		}
		if !verifyFull {
			if seen[r.Move] {
				fmt.Printf("ERROR: entry %d: duplicate move %d at key %d (expected collapsed in non-full mode)\n", i, r.Move, r.Key)
				errCount++
			}
			seen[r.Move] = true
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d entries failed verification", errCount)
	}

	fmt.Printf("%d entries verified successfully.\n", len(records))
	return nil
}
