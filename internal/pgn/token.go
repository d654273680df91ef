package pgn

// tokenClass is the character class a byte is mapped to before it reaches
// the state-transition table. Keeping this as a flat lookup table (rather
// than a chain of byte comparisons) is what makes the scanner's inner loop
// branch-predictable at hundreds of MB/s.
type tokenClass uint8

const (
	tSpace tokenClass = iota
	tResult
	tMinus
	tDot
	tQuote
	tDollar
	tLBracket
	tRBracket
	tLBrace
	tRBrace
	tLParen
	tRParen
	tZero
	tDigit
	tMoveHead
	tNone
)

// classTable maps every byte value to its tokenClass. Built once in init.
var classTable [256]tokenClass

func init() {
	for i := range classTable {
		classTable[i] = tNone
	}
	for _, b := range []byte(" \t\r\n!?+#") {
		classTable[b] = tSpace
	}
	classTable['/'] = tResult
	classTable['*'] = tResult
	classTable['-'] = tMinus
	classTable['.'] = tDot
	classTable['"'] = tQuote
	classTable['$'] = tDollar
	classTable['['] = tLBracket
	classTable[']'] = tRBracket
	classTable['{'] = tLBrace
	classTable['}'] = tRBrace
	classTable['('] = tLParen
	classTable[')'] = tRParen
	classTable['0'] = tZero
	for _, b := range []byte("123456789") {
		classTable[b] = tDigit
	}
	for _, b := range []byte("abcdefghNBRQKOo") {
		classTable[b] = tMoveHead
	}
}

func classify(b byte) tokenClass { return classTable[b] }
