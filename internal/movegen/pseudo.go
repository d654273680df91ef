package movegen

import (
	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/position"
)

// generatePseudoLegal generates moves for cat when the side to move is not
// in check. Captures/Quiets/QuietChecks/NonEvasions share the same target
// machinery, differing only in which destination squares are admissible.
func generatePseudoLegal(p *position.Position, cat Category, buf []board.Move) int {
	us := p.SideToMove()
	them := us.Opposite()
	occ := p.Pieces()

	var targets board.Bitboard
	switch cat {
	case Captures:
		targets = p.ColorBB(them)
	case Quiets, QuietChecks:
		targets = ^occ
	default: // NonEvasions
		targets = ^p.ColorBB(us)
	}

	n := 0
	for bb := p.PiecesBy(us, board.King); bb != 0; {
		var from board.Square
		from, bb = bb.PopLSB()
		for to := board.KingAttacks[from] & targets; to != 0; {
			var sq board.Square
			sq, to = to.PopLSB()
			n = appendMove(buf, n, board.NewMove(from, sq))
		}
	}

	n = generateNonKingToTargets(p, us, targets, buf, n)

	if cat == NonEvasions || cat == Quiets {
		n = generateCastles(p, buf, n)
	}

	if cat == QuietChecks {
		n = filterGivesCheck(p, buf, n)
	}

	return n
}

func filterGivesCheck(p *position.Position, buf []board.Move, n int) int {
	out := 0
	for i := 0; i < n; i++ {
		if p.GivesCheck(buf[i]) {
			buf[out] = buf[i]
			out++
		}
	}
	return out
}
