// Package main provides the polybook CLI for building and querying
// Polyglot opening books from PGN game collections.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
