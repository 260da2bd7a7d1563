package core

import "testing"

func TestChunksQuarterly(t *testing.T) {
	r := DateRange{Start: NewDate(2023, 1, 1), End: NewDate(2023, 8, 15)}
	chunks, err := r.Chunks(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []DateRange{
		{Start: NewDate(2023, 1, 1), End: NewDate(2023, 3, 31)},
		{Start: NewDate(2023, 4, 1), End: NewDate(2023, 6, 30)},
		{Start: NewDate(2023, 7, 1), End: NewDate(2023, 8, 15)},
	}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %v", len(want), len(chunks), chunks)
	}
	for i := range want {
		if !chunks[i].Start.Equal(want[i].Start.Time) || !chunks[i].End.Equal(want[i].End.Time) {
			t.Fatalf("chunk %d: expected %s, got %s", i, want[i], chunks[i])
		}
	}
}

func TestChunksShortRange(t *testing.T) {
	r := DateRange{Start: NewDate(2023, 5, 10), End: NewDate(2023, 6, 1)}
	chunks, err := r.Chunks(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected single chunk, got %d", len(chunks))
	}
	if chunks[0] != r {
		t.Fatalf("expected chunk equal to full range %s, got %s", r, chunks[0])
	}
}

func TestChunksSingleDay(t *testing.T) {
	d := NewDate(2024, 2, 29)
	chunks, err := DateRange{Start: d, End: d}.Chunks(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Start != d || chunks[0].End != d {
		t.Fatalf("expected one single-day chunk, got %v", chunks)
	}
}

func TestChunksCoverRange(t *testing.T) {
	cases := []struct {
		name   string
		r      DateRange
		months int
	}{
		{"one year quarterly", DateRange{NewDate(2022, 1, 1), NewDate(2022, 12, 31)}, 3},
		{"monthly from month end", DateRange{NewDate(2023, 1, 31), NewDate(2023, 7, 4)}, 1},
		{"leap february", DateRange{NewDate(2024, 1, 15), NewDate(2024, 3, 15)}, 1},
		{"long range big chunks", DateRange{NewDate(2019, 6, 3), NewDate(2025, 2, 28)}, 6},
		{"year boundary", DateRange{NewDate(2022, 11, 20), NewDate(2023, 2, 10)}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := tc.r.Chunks(tc.months)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(chunks) == 0 {
				t.Fatal("expected at least one chunk")
			}
			if !chunks[0].Start.Equal(tc.r.Start.Time) {
				t.Fatalf("first chunk starts %s, want %s", chunks[0].Start, tc.r.Start)
			}
			last := chunks[len(chunks)-1]
			if !last.End.Equal(tc.r.End.Time) {
				t.Fatalf("last chunk ends %s, want %s", last.End, tc.r.End)
			}
			for i, c := range chunks {
				if c.Start.After(c.End.Time) {
					t.Fatalf("chunk %d inverted: %s", i, c)
				}
				// Each chunk stays within the configured month span.
				if !c.End.Before(addMonths(c.Start.Time, tc.months)) {
					t.Fatalf("chunk %d too long: %s with months=%d", i, c, tc.months)
				}
				if i == 0 {
					continue
				}
				if !c.Start.Equal(chunks[i-1].End.Next().Time) {
					t.Fatalf("gap or overlap between chunk %d (%s) and chunk %d (%s)", i-1, chunks[i-1], i, c)
				}
			}
		})
	}
}

func TestChunksMonthEndClamping(t *testing.T) {
	// A chunk starting on Jan 31 with months=1 ends the day before the
	// clamped Feb 28, i.e. Feb 27; the next chunk picks up on Feb 28.
	r := DateRange{Start: NewDate(2023, 1, 31), End: NewDate(2023, 3, 31)}
	chunks, err := r.Chunks(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !chunks[0].End.Equal(NewDate(2023, 2, 27).Time) {
		t.Fatalf("expected first chunk to end 2023-02-27, got %s", chunks[0].End)
	}
	if !chunks[1].Start.Equal(NewDate(2023, 2, 28).Time) {
		t.Fatalf("expected second chunk to start 2023-02-28, got %s", chunks[1].Start)
	}
}

func TestChunksInvalid(t *testing.T) {
	valid := DateRange{Start: NewDate(2023, 1, 1), End: NewDate(2023, 2, 1)}
	if _, err := valid.Chunks(0); err == nil {
		t.Fatal("expected error for zero chunk size")
	}
	inverted := DateRange{Start: NewDate(2023, 2, 1), End: NewDate(2023, 1, 1)}
	if _, err := inverted.Chunks(3); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if _, err := (DateRange{}).Chunks(3); err == nil {
		t.Fatal("expected error for zero range")
	}
}
