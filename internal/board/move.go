package board

// Move is a packed 16-bit value: bits 0-5 destination square, bits 6-11
// origin square, bits 12-13 promotion piece code (0=knight, 1=bishop,
// 2=rook, 3=queen), bits 14-15 a special-move flag. Castling is encoded as
// the king capturing its own rook (origin=king square, dest=rook square).
type Move uint16

// MoveNone is the reserved "no move" value; a real move always has
// distinct origin and destination squares, so an all-zero value (origin
// a1, dest a1) can never be produced by legal encoding.
const MoveNone Move = 0

// MoveNull is a distinguished sentinel for the scanner/resolver's "--"
// null-move token. It is never emitted as a PolyEntry.
const MoveNull Move = 0xFFFF

const (
	flagNormal = iota
	flagPromotion
	flagEnPassant
	flagCastle
)

const (
	promoKnight = iota
	promoBishop
	promoRook
	promoQueen
)

// NewMove builds a normal (non-special) move.
func NewMove(from, to Square) Move {
	return Move(to)&0x3F | (Move(from)&0x3F)<<6
}

// NewPromotion builds a promotion move; pt must be Knight, Bishop, Rook or Queen.
func NewPromotion(from, to Square, pt PieceType) Move {
	code := promotionCode(pt)
	return NewMove(from, to) | Move(code)<<12 | Move(flagPromotion)<<14
}

// NewEnPassant builds an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | Move(flagEnPassant)<<14
}

// NewCastle builds a castling move in king-captures-own-rook form.
func NewCastle(kingFrom, rookFrom Square) Move {
	return NewMove(kingFrom, rookFrom) | Move(flagCastle)<<14
}

func promotionCode(pt PieceType) int {
	switch pt {
	case Knight:
		return promoKnight
	case Bishop:
		return promoBishop
	case Rook:
		return promoRook
	case Queen:
		return promoQueen
	}
	return promoKnight
}

// From returns the move's origin square.
func (m Move) From() Square { return Square((m >> 6) & 0x3F) }

// To returns the move's destination square.
func (m Move) To() Square { return Square(m & 0x3F) }

// IsPromotion reports whether m is a promotion move.
func (m Move) IsPromotion() bool { return (m>>14)&0x3 == flagPromotion }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return (m>>14)&0x3 == flagEnPassant }

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool { return (m>>14)&0x3 == flagCastle }

// PromotionType returns the promotion piece type; only meaningful if IsPromotion.
func (m Move) PromotionType() PieceType {
	switch (m >> 12) & 0x3 {
	case promoKnight:
		return Knight
	case promoBishop:
		return Bishop
	case promoRook:
		return Rook
	case promoQueen:
		return Queen
	}
	return Knight
}

// PolyglotMove returns m re-encoded per the Polyglot wire convention: the
// special-flag bits are masked off for normal moves; for promotions the
// promotion code is remapped to (promotion_type - KNIGHT + 1) in bits
// 12-14; castling is left in king-captures-own-rook form unchanged.
func (m Move) PolyglotMove() uint16 {
	base := uint16(m) & 0x0FFF
	if m.IsPromotion() {
		promo := uint16(m.PromotionType()-Knight) + 1
		return base | (promo << 12)
	}
	return base
}
