// Package query answers opening-book lookups for a single FEN, formatting
// the result as the JSON shape consumed by cmd/polybook's find verb.
package query

import (
	"sort"

	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/indexer"
	"github.com/discochess/polybook/internal/pgn"
	"github.com/discochess/polybook/internal/position"
	"github.com/discochess/polybook/internal/search"
)

// MoveStat describes one candidate move found for a position.
type MoveStat struct {
	Move       string  `json:"move"`
	Weight     uint16  `json:"weight"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Draws      int     `json:"draws"`
	PGNOffsets []int64 `json:"pgn_offsets"`
}

// Result is the JSON object emitted for a lookup.
type Result struct {
	FEN   string     `json:"fen"`
	Key   uint64     `json:"key"`
	Moves []MoveStat `json:"moves"`
}

// Lookup computes the Polyglot key for fen, binary-searches data (a book
// produced by indexer.WriteBook) for the matching run of entries, and
// formats the result. full selects between the collapsed and
// per-game-provenance statistics modes described by WriteBook.
func Lookup(data []byte, fen string, full bool) (*Result, error) {
	var pos position.Position
	if err := pos.Set(fen); err != nil {
		return nil, err
	}
	key := pos.Key()

	entries, err := search.FindMoves(data, key)
	if err == search.ErrNotFound {
		return &Result{FEN: fen, Key: key, Moves: nil}, nil
	}
	if err != nil {
		return nil, err
	}

	var moves []MoveStat
	if full {
		moves = statsFull(entries)
	} else {
		moves = statsCompact(entries)
	}

	sort.Slice(moves, func(i, j int) bool {
		if moves[i].Weight != moves[j].Weight {
			return moves[i].Weight > moves[j].Weight
		}
		return moves[i].Move > moves[j].Move
	})

	return &Result{FEN: fen, Key: key, Moves: moves}, nil
}

// statsCompact assumes entries have already been deduped to one row per
// distinct move (WriteBook's default mode): games equals the collapsed
// weight, and the single learn word's result code is applied to the whole
// count, since per-game results were not preserved individually.
func statsCompact(entries []search.Entry) []MoveStat {
	byMove := make(map[uint16]*MoveStat)
	var order []uint16
	for _, e := range entries {
		m, ok := byMove[e.Move]
		if !ok {
			m = &MoveStat{Move: formatMove(e.Move)}
			byMove[e.Move] = m
			order = append(order, e.Move)
		}
		m.Weight += e.Weight
		m.Games += int(e.Weight)
		switch indexer.ResultOf(e.Learn) {
		case pgn.WhiteWin:
			m.Wins += int(e.Weight)
		case pgn.BlackWin:
			m.Losses += int(e.Weight)
		case pgn.Draw:
			m.Draws += int(e.Weight)
		}
		m.PGNOffsets = append(m.PGNOffsets, int64(indexer.OffsetOf(e.Learn))<<3)
	}
	out := make([]MoveStat, 0, len(order))
	for _, mv := range order {
		out = append(out, *byMove[mv])
	}
	return out
}

var promoLetters = [...]byte{0, 'n', 'b', 'r', 'q'}

// formatMove renders a raw Polyglot move word as coordinate notation
// ("e2e4", "e7e8q"). Castling is left in its king-captures-rook form,
// matching the wire representation ("e1h1" for White kingside).
func formatMove(raw uint16) string {
	toFile := int(raw & 0x7)
	toRank := int((raw >> 3) & 0x7)
	fromFile := int((raw >> 6) & 0x7)
	fromRank := int((raw >> 9) & 0x7)
	promo := int((raw >> 12) & 0x7)

	from := board.MakeSquare(fromFile, fromRank)
	to := board.MakeSquare(toFile, toRank)

	s := from.String() + to.String()
	if promo >= 1 && promo < len(promoLetters) {
		s += string(promoLetters[promo])
	}
	return s
}

// statsFull assumes entries preserve one row per originating game (full
// mode): every entry is one game, classified by its own result code.
func statsFull(entries []search.Entry) []MoveStat {
	byMove := make(map[uint16]*MoveStat)
	var order []uint16
	for _, e := range entries {
		m, ok := byMove[e.Move]
		if !ok {
			m = &MoveStat{Move: formatMove(e.Move)}
			byMove[e.Move] = m
			order = append(order, e.Move)
		}
		m.Weight++
		m.Games++
		switch indexer.ResultOf(e.Learn) {
		case pgn.WhiteWin:
			m.Wins++
		case pgn.BlackWin:
			m.Losses++
		case pgn.Draw:
			m.Draws++
		}
		m.PGNOffsets = append(m.PGNOffsets, int64(indexer.OffsetOf(e.Learn))<<3)
	}
	out := make([]MoveStat, 0, len(order))
	for _, mv := range order {
		out = append(out, *byMove[mv])
	}
	return out
}
