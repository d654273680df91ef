package indexer

import "sort"

// Finalize sorts records ascending by key. In default (non-full) mode, it
// additionally recomputes weights within every equal-key run of length >= 3
// as each distinct move's occurrence count, re-sorting the run by (weight
// descending, move descending) for deterministic output; shorter runs keep
// their original per-game weights and relative order. In full mode the
// frequency pass is skipped entirely so every per-game record survives
// with its own learn word, preserving provenance for the query formatter's
// multiset statistics.
func Finalize(records []Record, full bool) []Record {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	if full {
		return records
	}

	out := make([]Record, 0, len(records))
	i := 0
	for i < len(records) {
		j := i
		for j < len(records) && records[j].Key == records[i].Key {
			j++
		}
		run := records[i:j]
		if len(run) >= 3 {
			out = append(out, rerankByFrequency(run)...)
		} else {
			out = append(out, run...)
		}
		i = j
	}
	return out
}

// rerankByFrequency collapses run (all sharing one key) to one record per
// distinct move, weight set to occurrence count, sorted by weight
// descending then move descending.
func rerankByFrequency(run []Record) []Record {
	counts := make(map[uint16]int, len(run))
	learn := make(map[uint16]uint32, len(run))
	order := make([]uint16, 0, len(run))
	for _, r := range run {
		if _, seen := counts[r.Move]; !seen {
			order = append(order, r.Move)
			learn[r.Move] = r.Learn
		}
		counts[r.Move]++
	}

	key := run[0].Key
	out := make([]Record, 0, len(order))
	for _, mv := range order {
		out = append(out, Record{Key: key, Move: mv, Weight: uint16(counts[mv]), Learn: learn[mv]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Move > out[j].Move
	})
	return out
}

// Dedupe collapses consecutive (key, move) duplicates in an already
// key-sorted slice, keeping the first occurrence's weight/learn. Used for
// "full" mode's output path is skipped entirely (every occurrence is kept
// there); compact mode calls this after Finalize.
func Dedupe(records []Record) []Record {
	if len(records) == 0 {
		return records
	}
	out := records[:1]
	for _, r := range records[1:] {
		last := out[len(out)-1]
		if r.Key == last.Key && r.Move == last.Move {
			continue
		}
		out = append(out, r)
	}
	return out
}
