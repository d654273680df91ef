package indexer

import (
	"testing"

	"github.com/discochess/polybook/internal/pgn"
)

func TestPackLearnRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		result pgn.ResultCode
		offset int64
	}{
		{"white win at zero", pgn.WhiteWin, 0},
		{"black win", pgn.BlackWin, 1 << 10},
		{"draw", pgn.Draw, 1 << 20},
		{"unknown near max", pgn.Unknown, int64(maxOffset30) << 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			learn := packLearn(tt.result, tt.offset)
			if got := ResultOf(learn); got != tt.result {
				t.Errorf("ResultOf() = %v, want %v", got, tt.result)
			}
			wantOffset := uint32((tt.offset >> 3) & maxOffset30)
			if got := OffsetOf(learn); got != wantOffset {
				t.Errorf("OffsetOf() = %d, want %d", got, wantOffset)
			}
		})
	}
}

func TestPackLearnResultInUpperBits(t *testing.T) {
	learn := packLearn(pgn.BlackWin, 0)
	if learn>>30 != uint32(pgn.BlackWin) {
		t.Errorf("learn>>30 = %d, want %d", learn>>30, pgn.BlackWin)
	}
}
