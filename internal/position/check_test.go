package position

import (
	"testing"

	"github.com/discochess/polybook/internal/board"
)

func TestCheckersEmptyAtStart(t *testing.T) {
	p := New()
	if p.Checkers() != 0 {
		t.Errorf("Checkers() = %#x, want 0 at the starting position", p.Checkers())
	}
}

func TestCheckersDetectsDirectCheck(t *testing.T) {
	var p Position
	if err := p.Set("4k3/8/8/8/8/8/4R3/4K3 b - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if p.Checkers() == 0 {
		t.Error("expected the rook on e2 to check the black king on e8")
	}
}

func TestIsAttackedBy(t *testing.T) {
	var p Position
	if err := p.Set("4k3/8/8/8/8/8/4R3/4K3 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !p.IsAttackedBy(board.MakeSquare(4, 7), board.White) {
		t.Error("e8 should be attacked by White's rook on e2")
	}
	if p.IsAttackedBy(board.MakeSquare(0, 7), board.White) {
		t.Error("a8 should not be attacked by anything here")
	}
}

func TestPinnedPiecesDetectsOrthogonalPin(t *testing.T) {
	var p Position
	if err := p.Set("4k3/8/8/8/4r3/4N3/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	pinned := p.PinnedPieces(board.White)
	if !pinned.Has(board.MakeSquare(4, 2)) {
		t.Errorf("knight on e3 should be pinned by the rook on e4, pinned=%#x", pinned)
	}
}

func TestPinnedPiecesIgnoresOffAxisSlider(t *testing.T) {
	var p Position
	// Rook on a8 shares no file/rank/diagonal with the king on e1, so
	// nothing should be reported pinned through it.
	if err := p.Set("r3k3/8/8/8/8/4N3/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if pinned := p.PinnedPieces(board.White); pinned != 0 {
		t.Errorf("PinnedPieces() = %#x, want 0 (rook not aligned with king)", pinned)
	}
}

func TestGivesCheckDirectAttack(t *testing.T) {
	var p Position
	if err := p.Set("4k3/8/8/8/8/8/8/4KR2 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m := board.NewMove(board.MakeSquare(5, 0), board.MakeSquare(4, 3)) // Rf1-e4
	if !p.GivesCheck(m) {
		t.Error("rook lifting to e4 should check the king on e8 along the e-file")
	}
}

func TestLegalRejectsMoveExposingKing(t *testing.T) {
	var p Position
	// White king on e1, White rook on e2 pinned by a black rook on e8;
	// sliding the rook off the e-file must be illegal.
	if err := p.Set("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m := board.NewMove(board.MakeSquare(4, 1), board.MakeSquare(0, 1)) // Re2-a2
	if p.Legal(m) {
		t.Error("moving the pinned rook off the e-file should be illegal")
	}
	alongPin := board.NewMove(board.MakeSquare(4, 1), board.MakeSquare(4, 4)) // Re2-e5
	if !p.Legal(alongPin) {
		t.Error("moving the pinned rook along the pin line should remain legal")
	}
}

func TestLegalKingMoveIntoCheck(t *testing.T) {
	var p Position
	if err := p.Set("4r3/8/8/8/8/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m := board.NewMove(board.MakeSquare(4, 0), board.MakeSquare(3, 0)) // Ke1-d1, still on back rank but off e-file is fine
	if !p.Legal(m) {
		t.Error("Kd1 should be legal, it leaves the checking rook's file")
	}
	stay := board.NewMove(board.MakeSquare(4, 0), board.MakeSquare(4, 1)) // Ke1-e2, stays on e-file
	if p.Legal(stay) {
		t.Error("Ke2 should be illegal, still on the rook's file")
	}
}
