package indexer

import "testing"

func TestFinalizeSortsByKey(t *testing.T) {
	records := []Record{
		{Key: 3, Move: 1, Weight: 1},
		{Key: 1, Move: 1, Weight: 1},
		{Key: 2, Move: 1, Weight: 1},
	}
	out := Finalize(records, false)
	for i := 1; i < len(out); i++ {
		if out[i-1].Key > out[i].Key {
			t.Fatalf("not sorted: %v", out)
		}
	}
}

func TestFinalizeRerankThreshold(t *testing.T) {
	// A run of exactly two shares the original weights/order untouched.
	records := []Record{
		{Key: 5, Move: 10, Weight: 1, Learn: 1},
		{Key: 5, Move: 20, Weight: 1, Learn: 2},
	}
	out := Finalize(records, false)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 (run below rerank threshold)", len(out))
	}
	if out[0].Move != 10 || out[1].Move != 20 {
		t.Errorf("order changed for a run of two: %v", out)
	}
}

func TestFinalizeRerankCollapsesByFrequency(t *testing.T) {
	records := []Record{
		{Key: 7, Move: 1, Weight: 1, Learn: 100},
		{Key: 7, Move: 2, Weight: 1, Learn: 200},
		{Key: 7, Move: 1, Weight: 1, Learn: 101},
		{Key: 7, Move: 1, Weight: 1, Learn: 102},
	}
	out := Finalize(records, false)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 distinct moves", len(out))
	}
	// Move 1 occurred 3 times, move 2 once; descending weight puts move 1 first.
	if out[0].Move != 1 || out[0].Weight != 3 {
		t.Errorf("out[0] = %+v, want move=1 weight=3", out[0])
	}
	if out[0].Learn != 100 {
		t.Errorf("out[0].Learn = %d, want 100 (first-seen)", out[0].Learn)
	}
	if out[1].Move != 2 || out[1].Weight != 1 {
		t.Errorf("out[1] = %+v, want move=2 weight=1", out[1])
	}
}

func TestFinalizeFullModeSkipsRerank(t *testing.T) {
	records := []Record{
		{Key: 7, Move: 1, Weight: 1, Learn: 100},
		{Key: 7, Move: 1, Weight: 1, Learn: 101},
		{Key: 7, Move: 1, Weight: 1, Learn: 102},
	}
	out := Finalize(records, true)
	if len(out) != 3 {
		t.Fatalf("got %d records in full mode, want all 3 preserved", len(out))
	}
}

func TestDedupeCollapsesConsecutiveDuplicates(t *testing.T) {
	records := []Record{
		{Key: 1, Move: 1, Weight: 1, Learn: 1},
		{Key: 1, Move: 1, Weight: 1, Learn: 2},
		{Key: 1, Move: 2, Weight: 1, Learn: 3},
		{Key: 2, Move: 1, Weight: 1, Learn: 4},
	}
	out := Dedupe(records)
	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}
	if out[0].Learn != 1 {
		t.Errorf("Dedupe did not keep first occurrence's learn word")
	}
}

func TestDedupeEmpty(t *testing.T) {
	if out := Dedupe(nil); len(out) != 0 {
		t.Errorf("Dedupe(nil) = %v, want empty", out)
	}
}
