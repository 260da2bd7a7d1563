package core

import "time"

// Chunks splits the range into consecutive sub-ranges spanning at most
// months calendar months each. Chunks are chronological, non-overlapping
// and contiguous: each chunk starts the day after the previous one ends,
// the first chunk starts on r.Start and the last chunk ends on r.End.
//
// Boundaries are month-aligned relative to the range start: a chunk
// starting on s ends on addMonths(s, months) minus one day, so a
// 3-month chunk starting 2023-01-01 ends 2023-03-31.
func (r DateRange) Chunks(months int) ([]DateRange, error) {
	if months < 1 {
		return nil, ErrInvalidChunkSize
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var chunks []DateRange
	cur := r.Start
	for !cur.After(r.End.Time) {
		end := Date{Time: addMonths(cur.Time, months).AddDate(0, 0, -1)}
		if end.After(r.End.Time) {
			end = r.End
		}
		chunks = append(chunks, DateRange{Start: cur, End: end})
		cur = end.Next()
	}
	return chunks, nil
}

// addMonths advances t by the given number of months, clamping the day of
// month to the target month's length (Jan 31 + 1 month = Feb 28).
func addMonths(t time.Time, months int) time.Time {
	month := int(t.Month()) - 1 + months
	year := t.Year() + month/12
	month = month%12 + 1
	day := t.Day()
	if last := daysIn(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
