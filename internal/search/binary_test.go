package search

import (
	"encoding/binary"
	"testing"
)

func encode(entries []Entry) []byte {
	buf := make([]byte, len(entries)*entrySize)
	for i, e := range entries {
		off := i * entrySize
		binary.BigEndian.PutUint64(buf[off:off+8], e.Key)
		binary.BigEndian.PutUint16(buf[off+8:off+10], e.Move)
		binary.BigEndian.PutUint16(buf[off+10:off+12], e.Weight)
		binary.BigEndian.PutUint32(buf[off+12:off+16], e.Learn)
	}
	return buf
}

func TestFindMoves(t *testing.T) {
	data := encode([]Entry{
		{Key: 10, Move: 1, Weight: 1},
		{Key: 20, Move: 2, Weight: 3},
		{Key: 20, Move: 3, Weight: 1},
		{Key: 20, Move: 4, Weight: 2},
		{Key: 30, Move: 5, Weight: 1},
	})

	tests := []struct {
		name    string
		key     uint64
		want    int
		wantErr bool
	}{
		{name: "leading key", key: 10, want: 1},
		{name: "run of three", key: 20, want: 3},
		{name: "trailing key", key: 30, want: 1},
		{name: "missing key below", key: 5, wantErr: true},
		{name: "missing key between", key: 15, wantErr: true},
		{name: "missing key above", key: 40, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindMoves(data, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindMoves() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if err != ErrNotFound {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
				return
			}
			if len(got) != tt.want {
				t.Fatalf("got %d entries, want %d", len(got), tt.want)
			}
			for _, e := range got {
				if e.Key != tt.key {
					t.Errorf("entry key = %d, want %d", e.Key, tt.key)
				}
			}
		})
	}
}

func TestFindMovesMalformedBook(t *testing.T) {
	_, err := FindMoves([]byte{1, 2, 3}, 1)
	if err != ErrNotFound {
		t.Fatalf("error = %v, want ErrNotFound for malformed book", err)
	}
}

func BenchmarkFindMoves(b *testing.B) {
	entries := make([]Entry, 0, 3000)
	for i := uint64(0); i < 1000; i++ {
		entries = append(entries,
			Entry{Key: i * 3, Move: 1},
			Entry{Key: i*3 + 1, Move: 2},
			Entry{Key: i*3 + 2, Move: 3},
		)
	}
	data := encode(entries)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FindMoves(data, 1500)
	}
}
