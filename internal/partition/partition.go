// Package partition splits a mapped PGN buffer into independently
// scannable chunks on game boundaries, so the CLI's build pipeline can run
// one scanner+indexer per chunk concurrently (§5: "Implementations MAY
// parallelise the scanner by partitioning the file on game boundaries").
// The book itself stays a single flat sorted file; only the input-side
// scan is parallelised, never the output shape.
package partition

import "bytes"

// eventMarker is the boundary token games are split on.
var eventMarker = []byte("\n[Event ")

// Chunk is one contiguous byte range of the original buffer, together with
// its absolute starting offset (so scanner diagnostics and learn-word PGN
// offsets remain correct regardless of how the buffer was split).
type Chunk struct {
	Data   []byte
	Offset int64
}

// Split divides data into at most n chunks, each boundary snapped forward
// to the next "\n[Event " marker so no chunk starts or ends mid-game. If
// fewer than n game boundaries exist, Split returns fewer, larger chunks.
// n <= 1 returns data as a single chunk.
func Split(data []byte, n int) []Chunk {
	if n <= 1 || len(data) == 0 {
		return []Chunk{{Data: data, Offset: 0}}
	}

	targetSize := len(data) / n
	if targetSize == 0 {
		return []Chunk{{Data: data, Offset: 0}}
	}

	var chunks []Chunk
	start := 0
	for start < len(data) {
		end := start + targetSize
		if end >= len(data) {
			chunks = append(chunks, Chunk{Data: data[start:], Offset: int64(start)})
			break
		}
		boundary := nextEventBoundary(data, end)
		if boundary <= start || boundary >= len(data) {
			chunks = append(chunks, Chunk{Data: data[start:], Offset: int64(start)})
			break
		}
		chunks = append(chunks, Chunk{Data: data[start:boundary], Offset: int64(start)})
		start = boundary
	}
	return chunks
}

// nextEventBoundary returns the offset of the first event marker at or
// after from, or len(data) if none remains.
func nextEventBoundary(data []byte, from int) int {
	idx := bytes.Index(data[from:], eventMarker)
	if idx < 0 {
		return len(data)
	}
	return from + idx + 1 // +1 to land on '[', past the marker's leading '\n'
}
