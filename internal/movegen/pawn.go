package movegen

import (
	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/position"
)

// generatePawnMovesToTargets generates single/double pushes, captures,
// en-passant, and promotions, restricted to destinations in targets (push
// destinations are still checked against targets even though a push isn't
// a "capture", since Evasions/Captures/Quiets all flow through here with
// an appropriately shaped targets mask).
func generatePawnMovesToTargets(p *position.Position, us board.Color, targets board.Bitboard, buf []board.Move, n int) int {
	them := us.Opposite()
	occ := p.Pieces()
	pawns := p.PiecesBy(us, board.Pawn)

	promoRank := board.Rank8
	startRank := board.Rank2
	dir := 1
	if us == board.Black {
		promoRank = board.Rank1
		startRank = board.Rank7
		dir = -1
	}

	for bb := pawns; bb != 0; {
		var from board.Square
		from, bb = bb.PopLSB()

		// Pushes.
		one := board.MakeSquare(from.File(), from.Rank()+dir)
		if from.Rank()+dir >= 0 && from.Rank()+dir <= 7 && !occ.Has(one) {
			n = emitPawnMove(buf, n, from, one, promoRank, targets)
			if board.SquareBB(from)&startRank != 0 {
				two := board.MakeSquare(from.File(), from.Rank()+2*dir)
				if !occ.Has(two) && targets.Has(two) {
					n = appendMove(buf, n, board.NewMove(from, two))
				}
			}
		}

		// Captures.
		for _, df := range [2]int{-1, 1} {
			f := from.File() + df
			if f < 0 || f > 7 {
				continue
			}
			r := from.Rank() + dir
			if r < 0 || r > 7 {
				continue
			}
			to := board.MakeSquare(f, r)
			if p.ColorBB(them).Has(to) {
				n = emitPawnMove(buf, n, from, to, promoRank, targets)
			} else if to == p.EPSquare() {
				capSq := board.MakeSquare(to.File(), from.Rank())
				if targets.Has(to) || targets.Has(capSq) {
					n = appendMove(buf, n, board.NewEnPassant(from, to))
				}
			}
		}
	}
	return n
}

func emitPawnMove(buf []board.Move, n int, from, to board.Square, promoRank board.Bitboard, targets board.Bitboard) int {
	if !targets.Has(to) {
		return n
	}
	if board.SquareBB(to)&promoRank != 0 {
		n = appendMove(buf, n, board.NewPromotion(from, to, board.Queen))
		n = appendMove(buf, n, board.NewPromotion(from, to, board.Rook))
		n = appendMove(buf, n, board.NewPromotion(from, to, board.Bishop))
		n = appendMove(buf, n, board.NewPromotion(from, to, board.Knight))
		return n
	}
	return appendMove(buf, n, board.NewMove(from, to))
}
