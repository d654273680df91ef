// Package movegen enumerates pseudo-legal and legal moves from a position,
// parameterised by category as described in the component design: captures,
// quiets, quiet checks, evasions, non-evasions, legal, and pseudo-legal.
package movegen

import (
	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/position"
)

// Category selects which subset of moves Generate produces.
type Category int

const (
	Captures Category = iota
	Quiets
	QuietChecks
	Evasions
	NonEvasions
	Legal
	PseudoLegal
)

// Generate writes moves of the requested category into buf (which the
// caller owns and must size generously; 256 is always sufficient for a
// legal chess position) and returns the number of moves written.
func Generate(p *position.Position, cat Category, buf []board.Move) int {
	switch cat {
	case Legal:
		n := generatePseudoLegal(p, NonEvasions, buf)
		if p.Checkers() != 0 {
			n = generateEvasions(p, buf)
		}
		return filterLegal(p, buf, n)
	case PseudoLegal:
		if p.Checkers() != 0 {
			return generateEvasions(p, buf)
		}
		return generatePseudoLegal(p, NonEvasions, buf)
	case Evasions:
		return generateEvasions(p, buf)
	default:
		return generatePseudoLegal(p, cat, buf)
	}
}

func filterLegal(p *position.Position, buf []board.Move, n int) int {
	out := 0
	for i := 0; i < n; i++ {
		if p.Legal(buf[i]) {
			buf[out] = buf[i]
			out++
		}
	}
	return out
}

// generateEvasions handles the in-check case: king moves to safety always
// considered; if not double-check, blocks and captures of the checker too.
func generateEvasions(p *position.Position, buf []board.Move) int {
	us := p.SideToMove()
	king := p.KingSquare(us)
	checkers := p.Checkers()
	n := 0

	occWithoutKing := p.Pieces().Clear(king)
	dangerous := kingDangerSquares(p, occWithoutKing)
	kingTargets := board.KingAttacks[king] &^ p.ColorBB(us) &^ dangerous
	for bb := kingTargets; bb != 0; {
		var to board.Square
		to, bb = bb.PopLSB()
		n = appendMove(buf, n, board.NewMove(king, to))
	}

	if checkers.MoreThanOne() {
		return n // double check: king moves only
	}

	checkerSq := checkers.LSB()
	blockSquares := board.BetweenBB[checkerSq][king] | board.SquareBB(checkerSq)

	n = generateNonKingToTargets(p, us, blockSquares, buf, n)
	return n
}

// kingDangerSquares returns all squares attacked by the enemy, computed with
// the king itself removed from the occupancy so that sliding attacks
// correctly extend through the king's current square.
func kingDangerSquares(p *position.Position, occWithoutKing board.Bitboard) board.Bitboard {
	us := p.SideToMove()
	them := us.Opposite()
	var danger board.Bitboard
	for bb := p.ColorBB(them); bb != 0; {
		var sq board.Square
		sq, bb = bb.PopLSB()
		pc := p.PieceOn(sq)
		danger |= board.AttacksFrom(pc.Type(), sq, occWithoutKing, them)
	}
	return danger
}

// generateNonKingToTargets generates pseudo-legal moves (pawn, knight,
// bishop, rook, queen) whose destination lies in targets; used both for
// normal quiet/capture generation (targets = all legal destinations) and
// for evasion blocks/captures (targets = squares between checker and king
// plus the checker square itself).
func generateNonKingToTargets(p *position.Position, us board.Color, targets board.Bitboard, buf []board.Move, n int) int {
	occ := p.Pieces()

	for bb := p.PiecesBy(us, board.Knight); bb != 0; {
		var from board.Square
		from, bb = bb.PopLSB()
		for to := board.KnightAttacks[from] & targets &^ p.ColorBB(us); to != 0; {
			var sq board.Square
			sq, to = to.PopLSB()
			n = appendMove(buf, n, board.NewMove(from, sq))
		}
	}
	for bb := p.PiecesBy(us, board.Bishop); bb != 0; {
		var from board.Square
		from, bb = bb.PopLSB()
		for to := board.BishopAttacks(from, occ) & targets &^ p.ColorBB(us); to != 0; {
			var sq board.Square
			sq, to = to.PopLSB()
			n = appendMove(buf, n, board.NewMove(from, sq))
		}
	}
	for bb := p.PiecesBy(us, board.Rook); bb != 0; {
		var from board.Square
		from, bb = bb.PopLSB()
		for to := board.RookAttacks(from, occ) & targets &^ p.ColorBB(us); to != 0; {
			var sq board.Square
			sq, to = to.PopLSB()
			n = appendMove(buf, n, board.NewMove(from, sq))
		}
	}
	for bb := p.PiecesBy(us, board.Queen); bb != 0; {
		var from board.Square
		from, bb = bb.PopLSB()
		for to := board.QueenAttacks(from, occ) & targets &^ p.ColorBB(us); to != 0; {
			var sq board.Square
			sq, to = to.PopLSB()
			n = appendMove(buf, n, board.NewMove(from, sq))
		}
	}

	n = generatePawnMovesToTargets(p, us, targets, buf, n)
	return n
}

func appendMove(buf []board.Move, n int, m board.Move) int {
	if n < len(buf) {
		buf[n] = m
	}
	return n + 1
}
