// Package pgn implements the byte-driven, table-directed PGN scanner: it
// tokenises possibly malformed game text into per-game SAN-move arrays
// without ever panicking on bad input. See state.go for the Token/Step
// tables the inner loop dispatches through.
package pgn

import "bytes"

// ResultCode is the packed result field later folded into a PolyEntry's
// learn word.
type ResultCode uint8

const (
	WhiteWin ResultCode = 0
	BlackWin ResultCode = 1
	Draw     ResultCode = 2
	Unknown  ResultCode = 3
)

// Limits enforced by the scanner; exceeding any of them ends the current
// game with a recoverable error rather than growing unbounded buffers.
const (
	MaxSANBuffer = 8 * 1024
	MaxFENBuffer = 256
	MaxStack     = 16
)

// Game is the scanner's per-game output: a packed, zero-terminated
// sequence of SAN tokens, an optional starting FEN, and the game result
// with the byte offset at which its result token begins.
type Game struct {
	SANBuf       []byte
	SANCount     int
	FEN          string
	Result       ResultCode
	ResultOffset int64
}

// Tokens splits SANBuf into its zero-terminated SAN strings.
func (g *Game) Tokens() [][]byte {
	if g.SANCount == 0 {
		return nil
	}
	return bytes.Split(bytes.TrimRight(g.SANBuf, "\x00"), []byte{0})
}

// Diagnostic describes one recoverable scanner failure.
type Diagnostic struct {
	State  string
	Offset int64
	Window []byte
}

// DiagnosticSink receives a Diagnostic for every recoverable scanner error.
type DiagnosticSink interface {
	Report(Diagnostic)
}

// Scanner holds all per-run mutable state. A Scanner is not safe for
// concurrent use; callers scanning file partitions in parallel (§5) should
// use one Scanner per goroutine.
type Scanner struct {
	data       []byte
	pos        int
	baseOffset int64
	state      state

	stack    [MaxStack]state
	stackLen int

	sanBuf      [MaxSANBuffer]byte
	sanLen      int
	moveCount   int
	whiteToMove bool

	fenBuf [MaxFENBuffer]byte
	fenLen int
	hasFEN bool
	fenSaw bool // has the closing quote of the FEN tag been seen

	gameStart    int
	resultCode   ResultCode
	resultOffset int64

	onGame func(Game)
	diag   DiagnosticSink

	gamesEmitted int
	gamesDropped int
}

// New returns a Scanner over data, whose absolute file offset is baseOffset
// (non-zero when data is a partition of a larger mapped file). onGame is
// invoked once per successfully parsed game; diag may be nil.
func New(data []byte, baseOffset int64, onGame func(Game), diag DiagnosticSink) *Scanner {
	return &Scanner{
		data:        data,
		baseOffset:  baseOffset,
		state:       sHeader,
		onGame:      onGame,
		diag:        diag,
		whiteToMove: true,
	}
}

// GamesEmitted returns the number of games successfully handed to onGame.
func (s *Scanner) GamesEmitted() int { return s.gamesEmitted }

// GamesDropped returns the number of games abandoned after a recoverable error.
func (s *Scanner) GamesDropped() int { return s.gamesDropped }

// Run scans the whole buffer to completion. It never returns an error: all
// failures are recoverable and reported through the DiagnosticSink.
func (s *Scanner) Run() {
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		tk := classify(b)
		act := stepTable[s.state][tk]
		s.state = act(s, b, s.pos)
		s.pos++
	}
}

func (s *Scanner) offset(pos int) int64 { return s.baseOffset + int64(pos) }

func (s *Scanner) pushState(st state) {
	if s.stackLen < MaxStack {
		s.stack[s.stackLen] = st
		s.stackLen++
	} else {
		s.fail(pos0(s), "state stack overflow")
	}
}

func (s *Scanner) popState() state {
	if s.stackLen == 0 {
		return sHeader
	}
	s.stackLen--
	return s.stack[s.stackLen]
}

func pos0(s *Scanner) int { return s.pos }

// fail reports a diagnostic, drops the current game, and resets the
// scanner to HEADER, per the never-fatal recovery discipline.
func (s *Scanner) fail(pos int, reason string) state {
	if s.diag != nil {
		start := pos - 50
		if start < 0 {
			start = 0
		}
		end := pos + 1
		if end > len(s.data) {
			end = len(s.data)
		}
		window := append([]byte(nil), s.data[start:end]...)
		s.diag.Report(Diagnostic{State: reason, Offset: s.offset(pos), Window: window})
	}
	s.gamesDropped++
	s.resetGame()
	return sHeader
}

func (s *Scanner) resetGame() {
	s.sanLen = 0
	s.moveCount = 0
	s.fenLen = 0
	s.hasFEN = false
	s.fenSaw = false
	s.whiteToMove = true
	s.stackLen = 0
}

func (s *Scanner) appendSANByte(pos int, b byte) state {
	if s.sanLen >= MaxSANBuffer {
		return s.fail(pos, "san buffer overflow")
	}
	s.sanBuf[s.sanLen] = b
	s.sanLen++
	return sReadSAN
}

func (s *Scanner) appendSANToken(pos int, tok []byte) state {
	if s.sanLen+len(tok) >= MaxSANBuffer {
		return s.fail(pos, "san buffer overflow")
	}
	copy(s.sanBuf[s.sanLen:], tok)
	s.sanLen += len(tok)
	return s.completeSAN()
}

// completeSAN terminates the current SAN token with a NUL, counts the
// move, toggles the white/black alternation, and returns the state that
// should follow: NEXT_SAN directly after White's move (Black replies with
// no move-number prefix), or NEXT_MOVE (expecting a move number) after
// Black's.
func (s *Scanner) completeSAN() state {
	if s.sanLen >= MaxSANBuffer {
		return s.fail(s.pos, "san buffer overflow")
	}
	s.sanBuf[s.sanLen] = 0
	s.sanLen++
	s.moveCount++

	wasWhite := s.whiteToMove
	s.whiteToMove = !s.whiteToMove
	if wasWhite {
		return sNextSAN
	}
	return sNextMove
}
