package board

import "testing"

func TestNewMoveFromTo(t *testing.T) {
	from := MakeSquare(4, 1) // e2
	to := MakeSquare(4, 3)   // e4
	m := NewMove(from, to)
	if m.From() != from {
		t.Errorf("From() = %v, want %v", m.From(), from)
	}
	if m.To() != to {
		t.Errorf("To() = %v, want %v", m.To(), to)
	}
	if m.IsPromotion() || m.IsEnPassant() || m.IsCastle() {
		t.Error("plain move must not report any special flag")
	}
}

func TestNewPromotionRoundTrip(t *testing.T) {
	from := MakeSquare(4, 6) // e7
	to := MakeSquare(4, 7)   // e8
	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		m := NewPromotion(from, to, pt)
		if !m.IsPromotion() {
			t.Fatalf("promotion move to %v not flagged as promotion", pt)
		}
		if m.PromotionType() != pt {
			t.Errorf("PromotionType() = %v, want %v", m.PromotionType(), pt)
		}
	}
}

func TestNewEnPassant(t *testing.T) {
	m := NewEnPassant(MakeSquare(4, 4), MakeSquare(3, 5))
	if !m.IsEnPassant() {
		t.Error("expected IsEnPassant")
	}
	if m.IsPromotion() || m.IsCastle() {
		t.Error("en-passant move must not report other flags")
	}
}

func TestNewCastle(t *testing.T) {
	king := MakeSquare(4, 0)
	rook := MakeSquare(7, 0)
	m := NewCastle(king, rook)
	if !m.IsCastle() {
		t.Error("expected IsCastle")
	}
	if m.From() != king || m.To() != rook {
		t.Error("castle move must encode king-captures-rook form")
	}
}

func TestPolyglotMoveMasksSpecialBitsForNormalMove(t *testing.T) {
	m := NewMove(MakeSquare(4, 1), MakeSquare(4, 3))
	if got := m.PolyglotMove(); got != uint16(m) {
		t.Errorf("PolyglotMove() = %#x, want %#x", got, uint16(m))
	}
}

func TestPolyglotMoveRemapsPromotionCode(t *testing.T) {
	m := NewPromotion(MakeSquare(4, 6), MakeSquare(4, 7), Queen)
	got := m.PolyglotMove()
	wantPromo := uint16(Queen-Knight) + 1
	if (got>>12)&0x7 != wantPromo {
		t.Errorf("promotion bits = %d, want %d", (got>>12)&0x7, wantPromo)
	}
	if got&0x3F != uint16(MakeSquare(4, 7)) {
		t.Errorf("destination bits lost in remap: %#x", got)
	}
}

func TestPolyglotMoveLeavesCastleUnchanged(t *testing.T) {
	m := NewCastle(MakeSquare(4, 0), MakeSquare(7, 0))
	if got := m.PolyglotMove(); got != uint16(m)&0x0FFF {
		t.Errorf("PolyglotMove() for castle = %#x, want %#x", got, uint16(m)&0x0FFF)
	}
}

func TestMoveNoneAndMoveNullAreDistinct(t *testing.T) {
	if MoveNone == MoveNull {
		t.Fatal("MoveNone and MoveNull must be distinct sentinels")
	}
	normal := NewMove(MakeSquare(0, 0), MakeSquare(0, 1))
	if normal == MoveNone {
		t.Error("a real move with distinct squares must not equal MoveNone")
	}
}
