package query

import (
	"bytes"
	"testing"

	"github.com/discochess/polybook/internal/indexer"
	"github.com/discochess/polybook/internal/pgn"
	"github.com/discochess/polybook/internal/position"
)

func startKey(t *testing.T) uint64 {
	t.Helper()
	p := position.New()
	return p.Key()
}

func buildBook(t *testing.T, records []indexer.Record, full bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	final := indexer.Finalize(records, full)
	if _, err := indexer.WriteBook(&buf, final, full); err != nil {
		t.Fatalf("WriteBook: %v", err)
	}
	return buf.Bytes()
}

func TestLookupCompact(t *testing.T) {
	key := startKey(t)
	// e2e4, Polyglot move word (from=e2, to=e4).
	move := uint16(0)
	move |= 4 | (3 << 3)  // to = e4 (file 4, rank 3)
	move |= (4 | (1 << 3)) << 6 // from = e2 (file 4, rank 1)

	records := []indexer.Record{
		{Key: key, Move: move, Weight: 1, Learn: uint32(pgn.WhiteWin) << 30},
	}
	data := buildBook(t, records, false)

	result, err := Lookup(data, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", false)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if result.Key != key {
		t.Errorf("Key = %#x, want %#x", result.Key, key)
	}
	if len(result.Moves) != 1 {
		t.Fatalf("got %d moves, want 1", len(result.Moves))
	}
	m := result.Moves[0]
	if m.Move != "e2e4" {
		t.Errorf("Move = %q, want e2e4", m.Move)
	}
	if m.Games != 1 || m.Wins != 1 || m.Losses != 0 || m.Draws != 0 {
		t.Errorf("stats = %+v, want games=1 wins=1", m)
	}
}

func TestLookupNotFound(t *testing.T) {
	data := buildBook(t, nil, false)
	result, err := Lookup(data, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", false)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(result.Moves) != 0 {
		t.Errorf("got %d moves, want 0", len(result.Moves))
	}
}

func TestLookupFullModeCountsEachGame(t *testing.T) {
	key := startKey(t)
	move := uint16(4|(3<<3)) | uint16(4|(1<<3))<<6

	records := []indexer.Record{
		{Key: key, Move: move, Weight: 1, Learn: uint32(pgn.WhiteWin) << 30},
		{Key: key, Move: move, Weight: 1, Learn: uint32(pgn.BlackWin) << 30},
		{Key: key, Move: move, Weight: 1, Learn: uint32(pgn.Draw) << 30},
	}
	data := buildBook(t, records, true)

	result, err := Lookup(data, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", true)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(result.Moves) != 1 {
		t.Fatalf("got %d moves, want 1", len(result.Moves))
	}
	m := result.Moves[0]
	if m.Games != 3 || m.Wins != 1 || m.Losses != 1 || m.Draws != 1 {
		t.Errorf("stats = %+v, want games=3 wins=1 losses=1 draws=1", m)
	}
	if len(m.PGNOffsets) != 3 {
		t.Errorf("got %d offsets, want 3", len(m.PGNOffsets))
	}
}

func TestLookupInvalidFEN(t *testing.T) {
	data := buildBook(t, nil, false)
	if _, err := Lookup(data, "not a fen", false); err == nil {
		t.Error("Lookup() error = nil, want error for invalid FEN")
	}
}
