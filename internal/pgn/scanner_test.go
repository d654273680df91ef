package pgn

import (
	"bytes"
	"testing"
)

func scanAll(t *testing.T, data string) ([]Game, []Diagnostic) {
	t.Helper()
	var games []Game
	var diags diagSlice
	s := New([]byte(data), 0, func(g Game) { games = append(games, g) }, &diags)
	s.Run()
	return games, diags
}

type diagSlice []Diagnostic

func (d *diagSlice) Report(diag Diagnostic) { *d = append(*d, diag) }

func sans(g Game) []string {
	toks := g.Tokens()
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = string(tok)
	}
	return out
}

const headerBlock = `[Event "Test"]
[Site "?"]
[Date "????.??.??"]
[Round "?"]
[White "A"]
[Black "B"]
[Result "1-0"]

`

func TestScanOneGameOneMoveBook(t *testing.T) {
	data := headerBlock + "1. e4 1-0\n"
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	g := games[0]
	if got := sans(g); !equalStrings(got, []string{"e4"}) {
		t.Errorf("Tokens() = %v, want [e4]", got)
	}
	if g.Result != WhiteWin {
		t.Errorf("Result = %v, want WhiteWin", g.Result)
	}
}

func TestScanFullGameWithMoveNumbers(t *testing.T) {
	data := headerBlock + "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0\n"
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}
	if got := sans(games[0]); !equalStrings(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestScanCastlingAndPromotion(t *testing.T) {
	data := headerBlock + "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O Nf6 5. d4 exd4 6. e5 d5 7. exf6 Qxf6 8. Re1+ Be6 9. c3 dxc3 10. Qd5 Qd6 11. O-O-O O-O-O 12. b4 c2xd1=Q+ 1-0\n"
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	toks := sans(games[0])
	if toks[6] != "O-O" {
		t.Errorf("move 7 = %q, want O-O", toks[6])
	}
	if toks[20] != "O-O-O" {
		t.Errorf("move 21 = %q, want O-O-O", toks[20])
	}
	// trailing check/annotation marks classify as whitespace and are
	// stripped, never appearing in the emitted SAN token.
	last := toks[len(toks)-1]
	if last != "c2xd1=Q" {
		t.Errorf("last move = %q, want c2xd1=Q", last)
	}
}

func TestScanFENHeaderGame(t *testing.T) {
	data := `[Event "Test"]
[FEN "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"]
[Result "1-0"]

1. e8=Q 1-0
`
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	if games[0].FEN != "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1" {
		t.Errorf("FEN = %q", games[0].FEN)
	}
}

func TestScanUnclosedBraceRecoversAtNextEvent(t *testing.T) {
	data := headerBlock + "1. e4 e5 {this comment is never closed\n" + headerBlock + "1. d4 d5 1-0\n"
	games, diags := scanAll(t, data)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1 (the unclosed brace), got %v", len(diags), diags)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1 (first game dropped, second recovered)", len(games))
	}
	want := []string{"d4", "d5"}
	if got := sans(games[0]); !equalStrings(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestScanIgnoresNestedVariationsAndNAGs(t *testing.T) {
	data := headerBlock + "1. e4 $1 e5 (1... c5 2. Nf3) 2. Nf3 Nc6 1-0\n"
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	want := []string{"e4", "e5", "Nf3", "Nc6"}
	if got := sans(games[0]); !equalStrings(got, want) {
		t.Errorf("Tokens() = %v, want %v (variation and NAG should be skipped)", got, want)
	}
}

func TestScanDrawAndUnknownResults(t *testing.T) {
	data := headerBlock + "1. e4 e5 1/2-1/2\n" +
		headerBlock + "1. d4 d5 *\n"
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	if games[0].Result != Draw {
		t.Errorf("game 0 result = %v, want Draw", games[0].Result)
	}
	if games[1].Result != Unknown {
		t.Errorf("game 1 result = %v, want Unknown", games[1].Result)
	}
}

func TestScanMissingResultBeforeNextEvent(t *testing.T) {
	data := headerBlock + "1. e4 e5 2. Nf3 Nc6\n" + headerBlock + "1. d4 d5 1-0\n"
	games, diags := scanAll(t, data)
	_ = diags
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2 (dangling game should be flushed as Unknown)", len(games))
	}
	if games[0].Result != Unknown {
		t.Errorf("first game result = %v, want Unknown", games[0].Result)
	}
	want := []string{"e4", "e5", "Nf3", "Nc6"}
	if got := sans(games[0]); !equalStrings(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestScanNullMoveToken(t *testing.T) {
	data := headerBlock + "1. e4 -- 2. Nf3 Nc6 1-0\n"
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []string{"e4", "--", "Nf3", "Nc6"}
	if got := sans(games[0]); !equalStrings(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestScanResultOffsetMatchesByteOffset(t *testing.T) {
	data := headerBlock + "1. e4 e5 1-0\n"
	// headerBlock's [Result "1-0"] tag holds an earlier "1-0"; the
	// movetext result token is the last occurrence.
	resultIdx := bytes.LastIndex([]byte(data), []byte("1-0"))
	games, _ := scanAll(t, data)
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	if games[0].ResultOffset != int64(resultIdx) {
		t.Errorf("ResultOffset = %d, want %d", games[0].ResultOffset, resultIdx)
	}
}

func TestScanBaseOffsetShiftsResultOffset(t *testing.T) {
	data := "1. e4 e5 1-0\n"
	const base int64 = 4096
	var games []Game
	var diags diagSlice
	s := New([]byte(data), base, func(g Game) { games = append(games, g) }, &diags)
	s.Run()
	if len(games) != 1 {
		t.Fatalf("got %d games, want 1", len(games))
	}
	want := base + int64(bytes.Index([]byte(data), []byte("1-0")))
	if games[0].ResultOffset != want {
		t.Errorf("ResultOffset = %d, want %d", games[0].ResultOffset, want)
	}
}

func TestScanGamesEmittedAndDroppedCounters(t *testing.T) {
	data := headerBlock + "1. e4 e5 {unclosed\n" + headerBlock + "1. d4 d5 1-0\n"
	var games []Game
	var diags diagSlice
	s := New([]byte(data), 0, func(g Game) { games = append(games, g) }, &diags)
	s.Run()
	if s.GamesEmitted() != 1 {
		t.Errorf("GamesEmitted() = %d, want 1", s.GamesEmitted())
	}
	if s.GamesDropped() != 1 {
		t.Errorf("GamesDropped() = %d, want 1", s.GamesDropped())
	}
}

func TestScanNilDiagnosticSinkDoesNotPanic(t *testing.T) {
	data := headerBlock + "1. e4 e5 {unclosed\n" + headerBlock + "1. d4 d5 1-0\n"
	s := New([]byte(data), 0, func(Game) {}, nil)
	s.Run()
	if s.GamesEmitted() != 1 {
		t.Errorf("GamesEmitted() = %d, want 1", s.GamesEmitted())
	}
}

func TestScanResultAfterBlackMoveAllCodes(t *testing.T) {
	cases := []struct {
		result string
		want   ResultCode
	}{
		{"1-0", WhiteWin},
		{"0-1", BlackWin},
		{"1/2-1/2", Draw},
	}
	for _, c := range cases {
		data := headerBlock + "1. e4 e5 " + c.result + "\n"
		games, diags := scanAll(t, data)
		if len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics: %v", c.result, diags)
		}
		if len(games) != 1 {
			t.Fatalf("%s: got %d games, want 1", c.result, len(games))
		}
		if games[0].Result != c.want {
			t.Errorf("%s: Result = %v, want %v", c.result, games[0].Result, c.want)
		}
		want := []string{"e4", "e5"}
		if got := sans(games[0]); !equalStrings(got, want) {
			t.Errorf("%s: Tokens() = %v, want %v (move number vs result must not swallow the moves)", c.result, got, want)
		}
	}
}

func TestScanRealMoveNumberAfterBlackMoveStillParses(t *testing.T) {
	// Guards against over-correcting the move-number/result ambiguity: a
	// genuine multi-digit move number following Black's reply must still
	// be consumed as a move number, not misread as a result.
	data := headerBlock + "1. e4 e5 2. Nf3 Nc6 1-0\n"
	games, diags := scanAll(t, data)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []string{"e4", "e5", "Nf3", "Nc6"}
	if got := sans(games[0]); !equalStrings(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
	if games[0].Result != WhiteWin {
		t.Errorf("Result = %v, want WhiteWin", games[0].Result)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
