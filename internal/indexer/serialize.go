package indexer

import (
	"encoding/binary"
	"io"
)

// EntrySize is the fixed width of one serialised Polyglot entry.
const EntrySize = 16

// WriteBook serialises records (already sorted ascending by key via
// Finalize) to w in bit-exact Polyglot form: 8-byte key, 2-byte move,
// 2-byte weight, 4-byte learn, all big-endian, with no file header. In
// full mode every record is written as-is, preserving per-game
// provenance; otherwise consecutive (key, move) duplicates are collapsed
// first.
func WriteBook(w io.Writer, records []Record, full bool) (int64, error) {
	if !full {
		records = Dedupe(records)
	}

	var buf [EntrySize]byte
	var written int64
	for _, r := range records {
		binary.BigEndian.PutUint64(buf[0:8], r.Key)
		binary.BigEndian.PutUint16(buf[8:10], r.Move)
		binary.BigEndian.PutUint16(buf[10:12], weightOrOne(r.Weight))
		binary.BigEndian.PutUint32(buf[12:16], r.Learn)
		n, err := w.Write(buf[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// weightOrOne enforces the weight-positivity invariant (§8): every
// serialised weight must be >= 1.
func weightOrOne(w uint16) uint16 {
	if w == 0 {
		return 1
	}
	return w
}

// ReadBook deserialises a Polyglot book from r (used by tests and the
// verify/stats CLI paths to round-trip what WriteBook produced).
func ReadBook(r io.Reader) ([]Record, error) {
	var out []Record
	var buf [EntrySize]byte
	for {
		_, err := io.ReadFull(r, buf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		out = append(out, Record{
			Key:    binary.BigEndian.Uint64(buf[0:8]),
			Move:   binary.BigEndian.Uint16(buf[8:10]),
			Weight: binary.BigEndian.Uint16(buf[10:12]),
			Learn:  binary.BigEndian.Uint32(buf[12:16]),
		})
	}
	return out, nil
}
