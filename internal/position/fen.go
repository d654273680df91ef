package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/discochess/polybook/internal/board"
)

// Set parses fen and replaces the receiver's state with it. A missing
// halfmove clock or fullmove number defaults to 0 and 1 respectively, per
// §4.B. The position's key is computed from scratch.
func (p *Position) Set(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("%w: %q", ErrMalformedFEN, fen)
	}

	var squares [64]board.Piece
	for i := range squares {
		squares[i] = board.NoPiece
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				pc, ok := board.PieceFromFENChar(byte(ch))
				if !ok || file > 7 {
					return fmt.Errorf("%w: bad piece placement %q", ErrMalformedFEN, fields[0])
				}
				squares[board.MakeSquare(file, rank)] = pc
				file++
			}
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %q does not sum to 8", ErrMalformedFEN, rankStr)
		}
	}

	var side board.Color
	switch fields[1] {
	case "w":
		side = board.White
	case "b":
		side = board.Black
	default:
		return fmt.Errorf("%w: bad side to move %q", ErrMalformedFEN, fields[1])
	}

	var rights uint8
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				rights |= WhiteKingSide
			case 'Q':
				rights |= WhiteQueenSide
			case 'k':
				rights |= BlackKingSide
			case 'q':
				rights |= BlackQueenSide
			default:
				return fmt.Errorf("%w: bad castling field %q", ErrMalformedFEN, fields[2])
			}
		}
	}

	epSquare := board.NoSquare
	if fields[3] != "-" {
		sq, err := board.ParseSquare(fields[3])
		if err != nil {
			return fmt.Errorf("%w: bad en-passant square %q", ErrMalformedFEN, fields[3])
		}
		epSquare = sq
	}

	halfmove := 0
	fullmove := 1
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			halfmove = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			fullmove = n
		}
	}

	p.squares = squares
	p.byType = [6]board.Bitboard{}
	p.byColor = [2]board.Bitboard{}
	for sq, pc := range squares {
		if pc != board.NoPiece {
			p.putPiece(pc, board.Square(sq))
		}
	}
	p.sideToMove = side
	p.castleRights = rights
	p.epSquare = epSquare
	p.halfmoveClock = halfmove
	p.fullmoveNumber = fullmove
	p.states = p.states[:0]
	p.key = p.computeKey()

	return nil
}

// FEN renders the position back to Forsyth-Edwards Notation. Set(p.FEN())
// must reproduce an observationally identical position.
func (p *Position) FEN() string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.squares[board.MakeSquare(file, rank)]
			if pc == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(pc.FENChar())
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	b.WriteString(p.sideToMove.String())

	b.WriteByte(' ')
	if p.castleRights == 0 {
		b.WriteByte('-')
	} else {
		if p.castleRights&WhiteKingSide != 0 {
			b.WriteByte('K')
		}
		if p.castleRights&WhiteQueenSide != 0 {
			b.WriteByte('Q')
		}
		if p.castleRights&BlackKingSide != 0 {
			b.WriteByte('k')
		}
		if p.castleRights&BlackQueenSide != 0 {
			b.WriteByte('q')
		}
	}

	b.WriteByte(' ')
	b.WriteString(p.epSquare.String())

	fmt.Fprintf(&b, " %d %d", p.halfmoveClock, p.fullmoveNumber)

	return b.String()
}
