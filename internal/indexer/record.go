// Package indexer accumulates (key, move, weight, learn) records from
// replayed games, sorts and deduplicates them, recomputes per-move
// frequencies within equal-key runs, and serialises the result to the
// bit-exact Polyglot binary format.
package indexer

import "github.com/discochess/polybook/internal/pgn"

// Record is one (position key, move, weight, learn) tuple, pre-serialisation.
type Record struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

const maxOffset30 = 0x3FFFFFFF

// packLearn packs the upper 2 bits of result code and the lower 30 bits of
// (offset>>3), supporting PGN files up to 8 GiB addressable at 8-byte
// granularity.
func packLearn(result pgn.ResultCode, offset int64) uint32 {
	return uint32(result)<<30 | uint32((offset>>3)&maxOffset30)
}

// ResultOf unpacks the result code from a learn word.
func ResultOf(learn uint32) pgn.ResultCode { return pgn.ResultCode(learn >> 30) }

// OffsetOf unpacks the (shifted) PGN byte offset from a learn word.
func OffsetOf(learn uint32) uint32 { return learn & maxOffset30 }
