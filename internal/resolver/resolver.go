// Package resolver maps a Standard Algebraic Notation token plus the
// current position to the unique legal move it denotes, disambiguating
// using legality rather than full disambiguation parsing alone.
package resolver

import (
	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/movegen"
	"github.com/discochess/polybook/internal/position"
)

// Resolve maps SAN san, played from position p, to a Move. The scanner has
// already stripped trailing annotation characters ("!?+#"); leading/
// trailing whitespace is not expected either. If san cannot be resolved to
// exactly one legal move, it returns board.MoveNone; ambiguous reports
// whether the failure was due to more than one legal candidate matching
// (as opposed to zero), so the caller can maintain a `fixed` counter per
// §4.D.
func Resolve(p *position.Position, san []byte) (move board.Move, ambiguous bool) {
	if len(san) == 0 {
		return board.MoveNone, false
	}

	if isNullMove(san) {
		return board.MoveNull, false
	}

	if m, ok := resolveCastle(p, san); ok {
		return m, false
	}

	return resolveNormal(p, san)
}

func isNullMove(san []byte) bool {
	return len(san) == 2 && san[0] == '-' && san[1] == '-'
}

func resolveCastle(p *position.Position, san []byte) (board.Move, bool) {
	queenSide := isCastleToken(san, true)
	kingSide := !queenSide && isCastleToken(san, false)
	if !queenSide && !kingSide {
		return board.MoveNone, false
	}

	var buf [256]board.Move
	n := movegen.Generate(p, movegen.Legal, buf[:])
	for i := 0; i < n; i++ {
		m := buf[i]
		if !m.IsCastle() {
			continue
		}
		isQueenSide := m.To().File() < m.From().File()
		if isQueenSide == queenSide {
			return m, true
		}
	}
	return board.MoveNone, false
}

// isCastleToken reports whether san spells out queenside (or kingside)
// castling using either the letter-O or digit-zero convention.
func isCastleToken(san []byte, queenSide bool) bool {
	letter := func(b byte) bool { return b == 'O' || b == 'o' || b == '0' }
	if queenSide {
		return len(san) >= 5 && letter(san[0]) && san[1] == '-' && letter(san[2]) && san[3] == '-' && letter(san[4])
	}
	return len(san) >= 3 && letter(san[0]) && san[1] == '-' && letter(san[2]) &&
		!(len(san) >= 5 && san[3] == '-' && letter(san[4]))
}

// parsedSAN holds the decomposed fields of a non-castling SAN token.
type parsedSAN struct {
	pieceType  board.PieceType
	fromFile   int // -1 if unspecified
	fromRank   int // -1 if unspecified
	toSquare   board.Square
	promotion  board.PieceType
	isPromo    bool
}

func resolveNormal(p *position.Position, san []byte) (board.Move, bool) {
	parsed, ok := parseSAN(san)
	if !ok {
		return board.MoveNone, false
	}

	var buf [256]board.Move
	n := movegen.Generate(p, movegen.Legal, buf[:])

	var candidate board.Move
	count := 0
	for i := 0; i < n; i++ {
		m := buf[i]
		if m.IsCastle() {
			continue
		}
		from := m.From()
		moving := p.PieceOn(from)
		pt := moving.Type()
		if pt != parsed.pieceType {
			continue
		}
		if m.To() != parsed.toSquare {
			continue
		}
		if parsed.fromFile >= 0 && from.File() != parsed.fromFile {
			continue
		}
		if parsed.fromRank >= 0 && from.Rank() != parsed.fromRank {
			continue
		}
		if parsed.isPromo {
			if !m.IsPromotion() || m.PromotionType() != parsed.promotion {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		candidate = m
		count++
	}

	switch count {
	case 1:
		return candidate, false
	case 0:
		return board.MoveNone, false
	default:
		return board.MoveNone, true
	}
}

// parseSAN decomposes a non-castling SAN token (e.g. "Nbd7", "exd6",
// "e8=Q", "Rae1") into piece type, optional disambiguation, destination,
// and optional promotion. It does not itself validate legality; that is
// left to the candidate-filtering pass in resolveNormal.
func parseSAN(san []byte) (parsedSAN, bool) {
	p := parsedSAN{fromFile: -1, fromRank: -1, pieceType: board.Pawn}

	i := 0
	if i < len(san) && isPieceLetter(san[i]) {
		p.pieceType = pieceTypeFromLetter(san[i])
		i++
	}
	if i >= len(san) {
		return parsedSAN{}, false
	}

	// Drop promotion suffix.
	promoIdx := -1
	for j := i; j < len(san); j++ {
		if san[j] == '=' {
			promoIdx = j
			break
		}
	}
	body := san[i:]
	if promoIdx >= 0 {
		body = san[i:promoIdx]
		if promoIdx+1 < len(san) {
			p.promotion = pieceTypeFromLetter(san[promoIdx+1])
			p.isPromo = true
		}
	}

	// Remove capture 'x' if present.
	filtered := make([]byte, 0, len(body))
	for _, b := range body {
		if b == 'x' || b == 'X' {
			continue
		}
		filtered = append(filtered, b)
	}
	if len(filtered) < 2 {
		return parsedSAN{}, false
	}

	destStr := filtered[len(filtered)-2:]
	disambig := filtered[:len(filtered)-2]

	sq, err := board.ParseSquare(string(destStr))
	if err != nil {
		return parsedSAN{}, false
	}
	p.toSquare = sq

	for _, b := range disambig {
		switch {
		case b >= 'a' && b <= 'h':
			p.fromFile = int(b - 'a')
		case b >= '1' && b <= '8':
			p.fromRank = int(b - '1')
		default:
			return parsedSAN{}, false
		}
	}

	return p, true
}

func isPieceLetter(b byte) bool {
	switch b {
	case 'N', 'B', 'R', 'Q', 'K':
		return true
	}
	return false
}

func pieceTypeFromLetter(b byte) board.PieceType {
	switch b {
	case 'N':
		return board.Knight
	case 'B':
		return board.Bishop
	case 'R':
		return board.Rook
	case 'Q':
		return board.Queen
	case 'K':
		return board.King
	}
	return board.Pawn
}
