package pgn

import "bytes"

func actIgnore(s *Scanner, b byte, pos int) state { return s.state }

// actOpenTag handles '[' in HEADER or TAG: look ahead for the literal
// `FEN "` to switch into FEN_TAG, otherwise a plain tag.
func actOpenTag(s *Scanner, b byte, pos int) state {
	s.pushState(s.state)
	rest := s.data[pos+1:]
	if bytes.HasPrefix(rest, []byte(`FEN "`)) {
		s.fenLen = 0
		s.hasFEN = true
		s.pos += len(`FEN "`)
		return sFenTag
	}
	return sTag
}

func actCloseTag(s *Scanner, b byte, pos int) state {
	return s.popState()
}

// actReadFEN accumulates bytes of the FEN tag body until the closing quote.
func actReadFEN(s *Scanner, b byte, pos int) state {
	if s.fenLen >= MaxFENBuffer {
		return s.fail(pos, "fen buffer overflow")
	}
	s.fenBuf[s.fenLen] = b
	s.fenLen++
	return sFenTag
}

func actCloseFEN(s *Scanner, b byte, pos int) state {
	s.fenSaw = true
	return sTag
}

// actOpenBrace opens a brace comment from movetext, saving the resume state.
func actOpenBrace(s *Scanner, b byte, pos int) state {
	s.pushState(s.state)
	return sBraceComment
}

// actOpenBraceFromSAN handles the rare case of a brace opening mid-SAN
// token; the SAN accumulated so far is kept, comment is discarded, and the
// scanner resumes reading the same SAN token afterward.
func actOpenBraceFromSAN(s *Scanner, b byte, pos int) state {
	s.pushState(sReadSAN)
	return sBraceComment
}

func actCloseBrace(s *Scanner, b byte, pos int) state {
	return s.popState()
}

// actBraceLookaheadEvent implements the "missing closing brace" recovery:
// a `[Event ` seen while still inside a brace comment is treated as the
// start of the next game, since PGN braces do not nest and a genuinely
// unterminated comment would otherwise swallow the rest of the file.
func actBraceLookaheadEvent(s *Scanner, b byte, pos int) state {
	rest := s.data[pos:]
	if bytes.HasPrefix(rest, []byte("[Event ")) {
		s.fail(pos, "unclosed brace comment")
		return sTag
	}
	return sBraceComment
}

func actVariationOpen(s *Scanner, b byte, pos int) state {
	s.pushState(s.state)
	return sVariation
}

func actVariationClose(s *Scanner, b byte, pos int) state {
	return s.popState()
}

func actOpenNAG(s *Scanner, b byte, pos int) state {
	s.pushState(s.state)
	return sNag
}

func actNagEnd(s *Scanner, b byte, pos int) state {
	return s.popState()
}

// actMoveNumberOrResult resolves the ambiguity at NEXT_MOVE: a '1' there
// normally begins a move number like "14." but, when the result follows a
// Black move (the common case for a decisive game), the same position
// holds "1-0" with no trailing dot. Resolved by direct lookahead, same as
// actZeroAmbiguous.
func actMoveNumberOrResult(s *Scanner, b byte, pos int) state {
	rest := s.data[pos:]
	switch {
	case bytes.HasPrefix(rest, []byte("1-0")):
		s.resultCode = WhiteWin
		s.resultOffset = s.offset(pos)
		s.pos = pos + len("1-0") - 1
		return sResult
	case bytes.HasPrefix(rest, []byte("1/2-1/2")):
		s.resultCode = Draw
		s.resultOffset = s.offset(pos)
		s.pos = pos + len("1/2-1/2") - 1
		return sResult
	default:
		return sMoveNumber
	}
}

// actZeroMoveNumberOrResult is actMoveNumberOrResult's '0' counterpart: a
// move number never legitimately starts at zero, so a '0' at NEXT_MOVE is
// "0-1" unless proven otherwise.
func actZeroMoveNumberOrResult(s *Scanner, b byte, pos int) state {
	rest := s.data[pos:]
	if bytes.HasPrefix(rest, []byte("0-1")) {
		s.resultCode = BlackWin
		s.resultOffset = s.offset(pos)
		s.pos = pos + len("0-1") - 1
		return sResult
	}
	return sMoveNumber
}

func actMoveNumberDone(s *Scanner, b byte, pos int) state {
	return sNextSAN
}

// actStartSAN begins a new SAN token at either NEXT_MOVE (implicit move
// number "1" for the very first ply, or after recovering from a comment)
// or NEXT_SAN.
func actStartSAN(s *Scanner, b byte, pos int) state {
	return s.appendSANByte(pos, b)
}

func actSANChar(s *Scanner, b byte, pos int) state {
	return s.appendSANByte(pos, b)
}

func actEndSAN(s *Scanner, b byte, pos int) state {
	return s.completeSAN()
}

// actZeroAmbiguous resolves the T_ZERO ambiguity at NEXT_SAN: "0-0-0" and
// "0-0" are castling SAN tokens; "0-1" is a game result. The byte at pos is
// the leading '0'; we resolve by direct lookahead rather than threading a
// third state through the table, mirroring how actOpenTag resolves its own
// one-off ambiguity.
func actZeroAmbiguous(s *Scanner, b byte, pos int) state {
	rest := s.data[pos:]
	switch {
	case bytes.HasPrefix(rest, []byte("0-0-0")):
		s.pos = pos + len("0-0-0") - 1
		return s.appendSANToken(pos, []byte("0-0-0"))
	case bytes.HasPrefix(rest, []byte("0-0")):
		s.pos = pos + len("0-0") - 1
		return s.appendSANToken(pos, []byte("0-0"))
	case bytes.HasPrefix(rest, []byte("0-1")):
		s.resultCode = BlackWin
		s.resultOffset = s.offset(pos)
		s.pos = pos + len("0-1") - 1
		return sResult
	default:
		return s.fail(pos, "ambiguous zero token")
	}
}

// actStartResult resolves the result token under the cursor (the scanner
// may enter here on '1' of "1-0"/"1/2-1/2", or on '*').
func actStartResult(s *Scanner, b byte, pos int) state {
	rest := s.data[pos:]
	switch {
	case bytes.HasPrefix(rest, []byte("1-0")):
		s.resultCode = WhiteWin
		s.resultOffset = s.offset(pos)
		s.pos = pos + len("1-0") - 1
	case bytes.HasPrefix(rest, []byte("1/2-1/2")):
		s.resultCode = Draw
		s.resultOffset = s.offset(pos)
		s.pos = pos + len("1/2-1/2") - 1
	case bytes.HasPrefix(rest, []byte("*")):
		s.resultCode = Unknown
		s.resultOffset = s.offset(pos)
	default:
		return s.fail(pos, "unrecognised result token")
	}
	return sResult
}

// actEndGame fires the per-game callback and resets to HEADER.
func actEndGame(s *Scanner, b byte, pos int) state {
	game := Game{
		SANBuf:       append([]byte(nil), s.sanBuf[:s.sanLen]...),
		SANCount:     s.moveCount,
		Result:       s.resultCode,
		ResultOffset: s.resultOffset,
	}
	if s.hasFEN {
		game.FEN = string(s.fenBuf[:s.fenLen])
	}
	if s.onGame != nil {
		s.onGame(game)
	}
	s.gamesEmitted++
	s.resetGame()
	return sHeader
}

// actMissingResult treats a stray '[' seen while expecting a move or SAN
// as an implicit game terminator (a missing result token): flush whatever
// has been accumulated as an Unknown-result game, then fast-forward into
// TAG for the '[' just seen.
func actMissingResult(s *Scanner, b byte, pos int) state {
	if s.moveCount > 0 {
		s.resultCode = Unknown
		s.resultOffset = s.offset(pos)
		actEndGame(s, b, pos)
	} else {
		s.resetGame()
	}
	s.pushState(sHeader)
	if bytes.HasPrefix(s.data[pos+1:], []byte(`FEN "`)) {
		s.fenLen = 0
		s.hasFEN = true
		s.pos += len(`FEN "`)
		return sFenTag
	}
	return sTag
}
