// Package oracle differentially tests internal/movegen's legal move
// generation against github.com/notnil/chess, treated as a trusted
// reference implementation. Where the teacher's shard simulators compared
// one of its own subsystems against another, this compares the homegrown
// movegen against an independent engine, the same notnil/chess dependency
// cmd/analyze-games uses to replay real games.
package oracle

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/movegen"
	"github.com/discochess/polybook/internal/position"
)

// Result holds the outcome of comparing legal move counts for one FEN.
type Result struct {
	FEN    string
	Ours   int
	Theirs int
}

// Match reports whether the two engines agree on the legal move count.
func (r Result) Match() bool {
	return r.Ours == r.Theirs
}

// CompareFEN sets up fen in both engines and compares legal move counts
// at the current position (perft depth 1).
func CompareFEN(fen string) (Result, error) {
	ours, err := legalMoveCount(fen)
	if err != nil {
		return Result{}, fmt.Errorf("oracle: our engine rejected %q: %w", fen, err)
	}

	theirs, err := referenceLegalMoveCount(fen)
	if err != nil {
		return Result{}, fmt.Errorf("oracle: reference engine rejected %q: %w", fen, err)
	}

	return Result{FEN: fen, Ours: ours, Theirs: theirs}, nil
}

// ComparePGN replays pgnText with notnil/chess and compares legal move
// counts against our engine at every position the game passes through,
// including the starting position.
func ComparePGN(pgnText string) ([]Result, error) {
	pgnFunc, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return nil, fmt.Errorf("oracle: parsing pgn: %w", err)
	}

	game := chess.NewGame(pgnFunc)

	var results []Result
	for _, pos := range game.Positions() {
		res, err := CompareFEN(pos.String())
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// legalMoveCount computes the legal move count at fen using our own
// position and movegen packages.
func legalMoveCount(fen string) (int, error) {
	p := position.New()
	if err := p.Set(fen); err != nil {
		return 0, err
	}

	var buf [256]board.Move
	n := movegen.Generate(p, movegen.Legal, buf[:])
	return n, nil
}

// referenceLegalMoveCount computes the legal move count at fen using
// notnil/chess. notnil/chess requires a full six-field FEN, so a
// four-field FEN (piece placement, side, castling, en passant only, the
// form Polyglot lookups key on) is padded with a zero halfmove clock and
// a fullmove number of one.
func referenceLegalMoveCount(fen string) (int, error) {
	fenOpt, err := chess.FEN(padFEN(fen))
	if err != nil {
		return 0, err
	}
	game := chess.NewGame(fenOpt)
	return len(game.ValidMoves()), nil
}

func padFEN(fen string) string {
	fields := strings.Fields(fen)
	for len(fields) < 4 {
		fields = append(fields, "-")
	}
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	return strings.Join(fields, " ")
}

