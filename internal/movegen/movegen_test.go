package movegen

import (
	"testing"

	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/position"
)

// perft counts leaf nodes at depth, the standard correctness oracle for a
// move generator: known node counts for well-studied positions catch both
// under- and over-generation bugs that no single hand-picked case would.
func perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var buf [256]board.Move
	n := Generate(p, Legal, buf[:])
	if depth == 1 {
		return uint64(n)
	}
	var nodes uint64
	for i := 0; i < n; i++ {
		m := buf[i]
		p.DoMove(m)
		nodes += perft(p, depth-1)
		p.UndoMove(m)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tt := range tests {
		p := position.New()
		if got := perft(p, tt.depth); got != tt.want {
			t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	// The well-known "Kiwipete" position, chosen for exercising castling,
	// en-passant, and promotions together.
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	tests := []struct {
		depth int
		want  uint64
	}{
		{1, 48},
		{2, 2039},
	}
	for _, tt := range tests {
		var p position.Position
		if err := p.Set(fen); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := perft(&p, tt.depth); got != tt.want {
			t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	// Position 5 from the standard perft suite; its depth-one moves
	// include capture-promotions onto c8 and kingside castling.
	const fen = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	p := position.Position{}
	if err := p.Set(fen); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := perft(&p, 1); got != 44 {
		t.Errorf("perft(1) = %d, want 44", got)
	}
}

func TestGenerateLegalOnlyReturnsLegalMoves(t *testing.T) {
	p := position.New()
	var buf [256]board.Move
	n := Generate(p, Legal, buf[:])
	for i := 0; i < n; i++ {
		if !p.Legal(buf[i]) {
			t.Errorf("Generate(Legal) produced an illegal move %v", buf[i])
		}
	}
}

func TestGenerateEvasionsWhenInCheck(t *testing.T) {
	var p position.Position
	// White king on e1 in check from a black rook on e2: only a king
	// move off the e-file or capturing the rook can get out of check.
	if err := p.Set("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var buf [256]board.Move
	n := Generate(&p, Legal, buf[:])
	if n == 0 {
		t.Fatal("expected at least one legal evasion")
	}
	for i := 0; i < n; i++ {
		m := buf[i]
		if m.From() != p.KingSquare(board.White) {
			t.Errorf("evasion %v does not move the king, but nothing else can resolve this check", m)
		}
	}
}

func TestGenerateCapturesCategoryOnlyProducesCaptures(t *testing.T) {
	var p position.Position
	if err := p.Set("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var buf [256]board.Move
	n := Generate(&p, Captures, buf[:])
	if n != 1 {
		t.Fatalf("got %d captures, want 1 (exd5)", n)
	}
	if buf[0].To() != board.MakeSquare(3, 4) {
		t.Errorf("capture destination = %v, want d5", buf[0].To())
	}
}
