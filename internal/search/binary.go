// Package search implements binary search within a sorted Polyglot book
// for the run of entries matching a given key.
package search

import (
	"encoding/binary"
	"errors"
	"sort"
)

// ErrNotFound indicates the position's key has no entries in the book.
var ErrNotFound = errors.New("search: position not found")

// entrySize matches indexer.EntrySize; duplicated here to avoid a
// dependency cycle (indexer never needs to search its own output).
const entrySize = 16

// Entry is one decoded Polyglot record.
type Entry struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// FindMoves binary-searches data (a book: entries sorted ascending by key,
// 16 bytes each, no header) for the leftmost entry whose key matches, then
// walks forward while keys match, returning every entry found. It returns
// ErrNotFound if no entry has that key, or if data is not a well-formed
// book (length not a multiple of entrySize).
func FindMoves(data []byte, key uint64) ([]Entry, error) {
	if len(data)%entrySize != 0 {
		return nil, ErrNotFound
	}
	n := len(data) / entrySize

	idx := sort.Search(n, func(i int) bool {
		return entryKey(data, i) >= key
	})
	if idx >= n || entryKey(data, idx) != key {
		return nil, ErrNotFound
	}

	var out []Entry
	for i := idx; i < n && entryKey(data, i) == key; i++ {
		out = append(out, decodeEntry(data, i))
	}
	return out, nil
}

func entryKey(data []byte, i int) uint64 {
	return binary.BigEndian.Uint64(data[i*entrySize:])
}

func decodeEntry(data []byte, i int) Entry {
	off := i * entrySize
	return Entry{
		Key:    binary.BigEndian.Uint64(data[off : off+8]),
		Move:   binary.BigEndian.Uint16(data[off+8 : off+10]),
		Weight: binary.BigEndian.Uint16(data[off+10 : off+12]),
		Learn:  binary.BigEndian.Uint32(data[off+12 : off+16]),
	}
}
