package position

import "github.com/discochess/polybook/internal/board"

// DoMove applies move m, assumed pseudo-legal, and pushes a StateInfo
// snapshot so UndoMove can restore the prior position exactly, key
// included. The key is updated incrementally rather than recomputed.
func (p *Position) DoMove(m board.Move) {
	st := StateInfo{
		CastleRights:  p.castleRights,
		EPSquare:      p.epSquare,
		HalfmoveClock: p.halfmoveClock,
		Key:           p.key,
		Checkers:      p.Checkers(),
	}

	us := p.sideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	moving := p.squares[from]

	key := p.key
	key ^= board.CastleKey(p.castleRights)
	if p.epSquare != board.NoSquare && p.epCaptureIsPossible() {
		key ^= board.EnPassantFileKey(p.epSquare.File())
	}

	p.halfmoveClock++
	if moving.Type() == board.Pawn {
		p.halfmoveClock = 0
	}

	var captured board.Piece = board.NoPiece

	switch {
	case m.IsCastle():
		kingTo, rookTo := castleDestinations(us, to)
		rook := p.squares[to]
		p.removePiece(from)
		p.removePiece(to)
		p.putPiece(moving, kingTo)
		p.putPiece(rook, rookTo)
		key ^= board.PieceSquareKey(moving, from)
		key ^= board.PieceSquareKey(moving, kingTo)
		key ^= board.PieceSquareKey(rook, to)
		key ^= board.PieceSquareKey(rook, rookTo)

	case m.IsEnPassant():
		capSq := board.MakeSquare(to.File(), from.Rank())
		captured = p.removePiece(capSq)
		key ^= board.PieceSquareKey(captured, capSq)
		key ^= board.PieceSquareKey(moving, from)
		p.movePiece(from, to)
		key ^= board.PieceSquareKey(moving, to)
		p.halfmoveClock = 0

	case m.IsPromotion():
		if p.squares[to] != board.NoPiece {
			captured = p.removePiece(to)
			key ^= board.PieceSquareKey(captured, to)
		}
		p.removePiece(from)
		key ^= board.PieceSquareKey(moving, from)
		promoted := board.MakePiece(us, m.PromotionType())
		p.putPiece(promoted, to)
		key ^= board.PieceSquareKey(promoted, to)
		p.halfmoveClock = 0

	default:
		if p.squares[to] != board.NoPiece {
			captured = p.removePiece(to)
			key ^= board.PieceSquareKey(captured, to)
			p.halfmoveClock = 0
		}
		key ^= board.PieceSquareKey(moving, from)
		p.movePiece(from, to)
		key ^= board.PieceSquareKey(moving, to)
	}

	st.CapturedPiece = captured

	p.castleRights &^= castleRightsLost(from, to, moving)
	if captured != board.NoPiece {
		p.castleRights &^= castleRightsLostOnCapture(to)
	}
	key ^= board.CastleKey(p.castleRights)

	newEP := board.NoSquare
	if moving.Type() == board.Pawn {
		diff := to.Rank() - from.Rank()
		if diff == 2 || diff == -2 {
			newEP = board.MakeSquare(from.File(), (from.Rank()+to.Rank())/2)
		}
	}
	p.epSquare = newEP

	p.sideToMove = them
	key ^= board.TurnKey()
	if newEP != board.NoSquare && p.epCaptureIsPossible() {
		key ^= board.EnPassantFileKey(newEP.File())
	}

	if us == board.Black {
		p.fullmoveNumber++
	}

	p.key = key
	p.states = append(p.states, st)
}

// UndoMove reverses the effect of the immediately preceding DoMove(m).
func (p *Position) UndoMove(m board.Move) {
	n := len(p.states)
	st := p.states[n-1]
	p.states = p.states[:n-1]

	them := p.sideToMove
	us := them.Opposite()
	if us == board.Black {
		p.fullmoveNumber--
	}

	from, to := m.From(), m.To()

	switch {
	case m.IsCastle():
		kingTo, rookTo := castleDestinations(us, to)
		rook := p.removePiece(rookTo)
		king := p.removePiece(kingTo)
		p.putPiece(king, from)
		p.putPiece(rook, to)

	case m.IsEnPassant():
		moving := p.removePiece(to)
		p.putPiece(moving, from)
		capSq := board.MakeSquare(to.File(), from.Rank())
		p.putPiece(st.CapturedPiece, capSq)

	case m.IsPromotion():
		p.removePiece(to)
		p.putPiece(board.MakePiece(us, board.Pawn), from)
		if st.CapturedPiece != board.NoPiece {
			p.putPiece(st.CapturedPiece, to)
		}

	default:
		moving := p.removePiece(to)
		p.putPiece(moving, from)
		if st.CapturedPiece != board.NoPiece {
			p.putPiece(st.CapturedPiece, to)
		}
	}

	p.sideToMove = us
	p.castleRights = st.CastleRights
	p.epSquare = st.EPSquare
	p.halfmoveClock = st.HalfmoveClock
	p.key = st.Key
}

// DoNullMove flips the side to move without moving any piece, for the
// scanner's "--" null-move token. The en-passant right, if any, is
// cleared, matching standard null-move semantics.
func (p *Position) DoNullMove() {
	st := StateInfo{
		CastleRights:  p.castleRights,
		EPSquare:      p.epSquare,
		HalfmoveClock: p.halfmoveClock,
		Key:           p.key,
		Checkers:      p.Checkers(),
		CapturedPiece: board.NoPiece,
	}

	key := p.key
	if p.epSquare != board.NoSquare && p.epCaptureIsPossible() {
		key ^= board.EnPassantFileKey(p.epSquare.File())
	}
	p.epSquare = board.NoSquare
	p.sideToMove = p.sideToMove.Opposite()
	key ^= board.TurnKey()
	p.key = key
	p.halfmoveClock++

	p.states = append(p.states, st)
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	n := len(p.states)
	st := p.states[n-1]
	p.states = p.states[:n-1]

	p.sideToMove = p.sideToMove.Opposite()
	p.epSquare = st.EPSquare
	p.halfmoveClock = st.HalfmoveClock
	p.key = st.Key
}

func castleDestinations(c board.Color, rookFrom board.Square) (kingTo, rookTo board.Square) {
	kingSide := rookFrom.File() == 7
	if c == board.White {
		if kingSide {
			return board.MakeSquare(6, 0), board.MakeSquare(5, 0)
		}
		return board.MakeSquare(2, 0), board.MakeSquare(3, 0)
	}
	if kingSide {
		return board.MakeSquare(6, 7), board.MakeSquare(5, 7)
	}
	return board.MakeSquare(2, 7), board.MakeSquare(3, 7)
}

func castleRightsLost(from, to board.Square, moving board.Piece) uint8 {
	var lost uint8
	if moving.Type() == board.King {
		if moving.Color() == board.White {
			lost |= WhiteKingSide | WhiteQueenSide
		} else {
			lost |= BlackKingSide | BlackQueenSide
		}
	}
	lost |= castleRightsLostOnCapture(from)
	return lost
}

func castleRightsLostOnCapture(sq board.Square) uint8 {
	switch sq {
	case whiteRookKS:
		return WhiteKingSide
	case whiteRookQS:
		return WhiteQueenSide
	case blackRookKS:
		return BlackKingSide
	case blackRookQS:
		return BlackQueenSide
	}
	return 0
}
