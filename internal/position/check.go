package position

import "github.com/discochess/polybook/internal/board"

// AttackersTo returns every piece, of either color, attacking sq given the
// occupancy occ (which may differ from p.Pieces() when probing a
// hypothetical board, e.g. "is this square attacked if the king stood
// here instead").
func (p *Position) AttackersTo(sq board.Square, occ board.Bitboard) board.Bitboard {
	var attackers board.Bitboard
	attackers |= board.PawnAttacks[board.White][sq] & p.PiecesBy(board.Black, board.Pawn)
	attackers |= board.PawnAttacks[board.Black][sq] & p.PiecesBy(board.White, board.Pawn)
	attackers |= board.KnightAttacks[sq] & p.PiecesOfType(board.Knight)
	attackers |= board.KingAttacks[sq] & p.PiecesOfType(board.King)
	sliders := board.BishopAttacks(sq, occ) & (p.PiecesOfType(board.Bishop) | p.PiecesOfType(board.Queen))
	sliders |= board.RookAttacks(sq, occ) & (p.PiecesOfType(board.Rook) | p.PiecesOfType(board.Queen))
	attackers |= sliders
	return attackers
}

// IsAttackedBy reports whether sq is attacked by any piece of color c,
// given the current occupancy.
func (p *Position) IsAttackedBy(sq board.Square, c board.Color) bool {
	return p.AttackersTo(sq, p.Pieces())&p.ColorBB(c) != 0
}

// Checkers returns the bitboard of pieces currently giving check to the
// side to move's king.
func (p *Position) Checkers() board.Bitboard {
	king := p.KingSquare(p.sideToMove)
	if king == board.NoSquare {
		return 0
	}
	return p.AttackersTo(king, p.Pieces()) & p.ColorBB(p.sideToMove.Opposite())
}

// PinnedPieces returns the bitboard of c's own pieces that are pinned to
// c's king by an enemy slider, i.e. moving them along any axis but the pin
// line would expose the king to check.
func (p *Position) PinnedPieces(c board.Color) board.Bitboard {
	var pinned board.Bitboard
	king := p.KingSquare(c)
	if king == board.NoSquare {
		return 0
	}
	enemy := c.Opposite()
	occ := p.Pieces()

	enemySliders := (p.PiecesBy(enemy, board.Bishop) | p.PiecesBy(enemy, board.Queen) |
		p.PiecesBy(enemy, board.Rook) | p.PiecesBy(enemy, board.Queen))

	for bb := enemySliders; bb != 0; {
		var sq board.Square
		sq, bb = bb.PopLSB()
		pc := p.squares[sq]
		isDiag := pc.Type() == board.Bishop || pc.Type() == board.Queen
		isOrtho := pc.Type() == board.Rook || pc.Type() == board.Queen

		between := board.BetweenBB[sq][king]
		if between == 0 && board.LineBB[sq][king] == 0 {
			continue
		}
		// A slider only pins along a line its piece type actually covers.
		sameFile := sq.File() == king.File()
		sameRank := sq.Rank() == king.Rank()
		sameDiag := abs(sq.File()-king.File()) == abs(sq.Rank()-king.Rank())
		switch {
		case sameDiag && !sameFile && !sameRank:
			if !isDiag {
				continue
			}
		case sameFile || sameRank:
			if !isOrtho {
				continue
			}
		default:
			continue
		}

		blockers := between & occ
		if blockers.PopCount() == 1 && (blockers&p.ColorBB(c)) != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GivesCheck reports whether making m would place the opponent's king in
// check. It evaluates this without mutating the position.
func (p *Position) GivesCheck(m board.Move) bool {
	us := p.sideToMove
	them := us.Opposite()
	enemyKing := p.KingSquare(them)
	if enemyKing == board.NoSquare {
		return false
	}

	from, to := m.From(), m.To()
	moving := p.squares[from]
	pt := moving.Type()
	if m.IsPromotion() {
		pt = m.PromotionType()
	}

	occAfter := p.Pieces()
	occAfter = occAfter.Clear(from).Set(to)
	if m.IsEnPassant() {
		capSq := board.MakeSquare(to.File(), from.Rank())
		occAfter = occAfter.Clear(capSq)
	}

	if board.AttacksFrom(pt, to, occAfter, us)&board.SquareBB(enemyKing) != 0 {
		return true
	}

	// Discovered check: does removing the piece from `from` (and placing
	// it on `to`) open a fresh line from some other slider to enemyKing?
	discoverers := (p.PiecesBy(us, board.Bishop) | p.PiecesBy(us, board.Rook) | p.PiecesBy(us, board.Queen)) &^ board.SquareBB(from)
	if board.BishopAttacks(enemyKing, occAfter)&(p.PiecesBy(us, board.Bishop)|p.PiecesBy(us, board.Queen))&discoverers != 0 {
		return true
	}
	if board.RookAttacks(enemyKing, occAfter)&(p.PiecesBy(us, board.Rook)|p.PiecesBy(us, board.Queen))&discoverers != 0 {
		return true
	}
	if m.IsCastle() {
		rookTo := rookCastleDest(us, to)
		if board.RookAttacks(enemyKing, occAfter)&board.SquareBB(rookTo) != 0 {
			return true
		}
	}
	return false
}

// Legal reports whether the pseudo-legal move m is actually legal: it does
// not leave the moving side's king in check, including en-passant
// discovery and castling through/out of/into check.
func (p *Position) Legal(m board.Move) bool {
	us := p.sideToMove
	from, to := m.From(), m.To()
	king := p.KingSquare(us)

	if m.IsCastle() {
		return p.castleLegal(m)
	}

	if from == king {
		occ := p.Pieces().Clear(from).Set(to)
		if m.IsEnPassant() {
			capSq := board.MakeSquare(to.File(), from.Rank())
			occ = occ.Clear(capSq)
		}
		return p.AttackersTo(to, occ)&p.ColorBB(us.Opposite()) == 0
	}

	if m.IsEnPassant() {
		capSq := board.MakeSquare(to.File(), from.Rank())
		occ := p.Pieces().Clear(from).Clear(capSq).Set(to)
		return p.AttackersTo(king, occ)&p.ColorBB(us.Opposite()) == 0
	}

	pinned := p.PinnedPieces(us)
	if !pinned.Has(from) {
		return true
	}
	return board.LineBB[from][king].Has(to)
}

func rookCastleDest(c board.Color, kingTo board.Square) board.Square {
	if c == board.White {
		if kingTo == whiteKingCastle {
			return board.MakeSquare(5, 0)
		}
		return board.MakeSquare(3, 0)
	}
	if kingTo == blackKingCastle {
		return board.MakeSquare(5, 7)
	}
	return board.MakeSquare(3, 7)
}

func (p *Position) castleLegal(m board.Move) bool {
	us := p.sideToMove
	them := us.Opposite()
	from := m.From()
	to := m.To() // rook square in king-captures-rook encoding

	rank := from.Rank()
	kingSide := to.File() > from.File()
	kingTo := 2
	if kingSide {
		kingTo = 6
	}

	step := -1
	if kingSide {
		step = 1
	}
	for sq := from.File(); ; sq += step {
		s := board.MakeSquare(sq, rank)
		if p.IsAttackedBy(s, them) {
			return false
		}
		if sq == kingTo {
			break
		}
	}
	return true
}
