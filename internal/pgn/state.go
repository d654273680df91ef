package pgn

// state is one node of the scanner's state machine, per §4.E.
type state uint8

const (
	sHeader state = iota
	sTag
	sFenTag
	sBraceComment
	sVariation
	sNag
	sNextMove
	sMoveNumber
	sNextSAN
	sReadSAN
	sResult
	numStates
)

// action is one cell of the Step[state][token] dispatch table: given the
// current byte and its position in the buffer, it mutates the scanner and
// returns the next state.
type action func(s *Scanner, b byte, pos int) state

// stepTable is built once in init(); indexing is [state][tokenClass].
var stepTable [numStates][int(tNone) + 1]action

func init() {
	for st := state(0); st < numStates; st++ {
		for tk := 0; tk <= int(tNone); tk++ {
			stepTable[st][tk] = actIgnore
		}
	}

	// HEADER accepts further tags but, once the tag block ends, the next
	// byte is the start of movetext (typically "1." or the first SAN of
	// an implicit move one) with no further delimiter — so HEADER shares
	// NEXT_MOVE's transitions for everything but '['.
	nextMoveRow := map[tokenClass]action{
		tSpace:    actIgnore,
		tDigit:    actMoveNumberOrResult,
		tZero:     actZeroMoveNumberOrResult,
		tMoveHead: actStartSAN,
		tMinus:    actStartSAN,
		tResult:   actStartResult,
		tLBrace:   actOpenBrace,
		tLParen:   actVariationOpen,
		tDollar:   actOpenNAG,
		tLBracket: actMissingResult,
	}

	headerRow := map[tokenClass]action{}
	for tk, act := range nextMoveRow {
		headerRow[tk] = act
	}
	headerRow[tLBracket] = actOpenTag
	setRow(sHeader, headerRow, actIgnore)

	setRow(sTag, map[tokenClass]action{
		tRBracket: actCloseTag,
	}, actIgnore)

	setRow(sFenTag, map[tokenClass]action{
		tQuote: actCloseFEN,
	}, actReadFEN)

	setRow(sBraceComment, map[tokenClass]action{
		tRBrace:   actCloseBrace,
		tLBracket: actBraceLookaheadEvent,
	}, actIgnore)

	setRow(sVariation, map[tokenClass]action{
		tLParen: actVariationOpen,
		tRParen: actVariationClose,
	}, actIgnore)

	setRow(sNag, map[tokenClass]action{
		tDigit: actIgnore,
		tZero:  actIgnore,
	}, actNagEnd)

	setRow(sNextMove, nextMoveRow, actIgnore)

	setRow(sMoveNumber, map[tokenClass]action{
		tDigit: actIgnore,
		tDot:   actMoveNumberDone,
		tSpace: actMoveNumberDone,
	}, actIgnore)

	setRow(sNextSAN, map[tokenClass]action{
		tSpace:    actIgnore,
		tDot:      actIgnore,
		tMoveHead: actStartSAN,
		tMinus:    actStartSAN,
		tZero:     actZeroAmbiguous,
		tDigit:    actStartResult,
		tResult:   actStartResult,
		tLBrace:   actOpenBrace,
		tLParen:   actVariationOpen,
		tDollar:   actOpenNAG,
		tLBracket: actMissingResult,
	}, actIgnore)

	setRow(sReadSAN, map[tokenClass]action{
		tSpace:  actEndSAN,
		tLBrace: actOpenBraceFromSAN,
	}, actSANChar)

	setRow(sResult, map[tokenClass]action{
		tSpace: actEndGame,
	}, actIgnore)
}

func setRow(st state, m map[tokenClass]action, def action) {
	for tk := 0; tk <= int(tNone); tk++ {
		if a, ok := m[tokenClass(tk)]; ok {
			stepTable[st][tk] = a
		} else {
			stepTable[st][tk] = def
		}
	}
}
