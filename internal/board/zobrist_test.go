package board

import "testing"

func TestRandomTableHasExpectedLength(t *testing.T) {
	if len(randomTable) != 781 {
		t.Fatalf("randomTable has %d entries, want 781", len(randomTable))
	}
}

func TestRandomTableHasNoObviousCollisions(t *testing.T) {
	seen := make(map[uint64]int, len(randomTable))
	for i, v := range randomTable {
		if prev, ok := seen[v]; ok {
			t.Errorf("randomTable[%d] collides with randomTable[%d]: %#x", i, prev, v)
		}
		seen[v] = i
	}
}

func TestCastleKeyDistinctPerRight(t *testing.T) {
	keys := []uint64{
		CastleKey(WhiteKingSide),
		CastleKey(WhiteQueenSide),
		CastleKey(BlackKingSide),
		CastleKey(BlackQueenSide),
	}
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if keys[i] == keys[j] {
				t.Errorf("castle keys %d and %d collide", i, j)
			}
		}
	}
}

func TestCastleKeyComposesByXOR(t *testing.T) {
	both := CastleKey(WhiteKingSide | WhiteQueenSide)
	if both != CastleKey(WhiteKingSide)^CastleKey(WhiteQueenSide) {
		t.Error("CastleKey should XOR independently per right")
	}
}

func TestPieceSquareKeyDistinctPerPieceAndSquare(t *testing.T) {
	a := PieceSquareKey(MakePiece(White, Pawn), MakeSquare(0, 0))
	b := PieceSquareKey(MakePiece(White, Pawn), MakeSquare(1, 0))
	c := PieceSquareKey(MakePiece(Black, Pawn), MakeSquare(0, 0))
	if a == b {
		t.Error("same piece, different square must hash differently")
	}
	if a == c {
		t.Error("same square, different color must hash differently")
	}
}

func TestTurnKeyNonZero(t *testing.T) {
	if TurnKey() == 0 {
		t.Error("TurnKey must be nonzero to affect the position hash")
	}
}
