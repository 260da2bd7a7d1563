package core

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used by the config file and
// the RescueTime API (restrict_begin / restrict_end).
const DateLayout = "2006-01-02"

type (
	// Date is a calendar date. The time-of-day part is always midnight UTC.
	Date struct {
		time.Time
	}

	// DateRange is an inclusive span of calendar dates.
	DateRange struct {
		Start Date
		End   Date
	}

	// ActivityRecord is one row of fetched time-tracking data. Domain,
	// Group, Subgroup and FetchedAt are tagged on import; the raw API
	// response does not carry them per-row.
	ActivityRecord struct {
		Date             string `parquet:"date" json:"date"`
		TimeSpentSeconds int64  `parquet:"time_spent_seconds" json:"time_spent_seconds"`
		NumberOfPeople   int64  `parquet:"number_of_people" json:"number_of_people"`
		Activity         string `parquet:"activity" json:"activity"`
		Document         string `parquet:"document" json:"document"`
		Category         string `parquet:"category" json:"category"`
		Productivity     int64  `parquet:"productivity" json:"productivity"`
		Domain           string `parquet:"domain" json:"domain"`
		Group            string `parquet:"group" json:"group"`
		Subgroup         string `parquet:"subgroup" json:"subgroup"`
		FetchedAt        string `parquet:"fetched_at" json:"fetched_at"`
	}

	// Dataset is an ordered collection of activity records.
	Dataset []ActivityRecord
)

var (
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidRange     = errors.New("range start must not be after end")
	ErrInvalidChunkSize = errors.New("chunk size must be at least one month")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: must be in YYYY-MM-DD format", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return Date{Time: d.AddDate(0, 0, 1)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (r DateRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("invalid range start: %w", err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("invalid range end: %w", err)
	}
	if r.Start.After(r.End.Time) {
		return ErrInvalidRange
	}
	return nil
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// TotalSeconds sums the time spent across all records.
func (ds Dataset) TotalSeconds() int64 {
	var total int64
	for _, rec := range ds {
		total += rec.TimeSpentSeconds
	}
	return total
}

// DateSpan returns the earliest and latest record dates. Records without
// a date (summary granularity) are ignored. ok is false when no record
// carries a date.
func (ds Dataset) DateSpan() (min, max string, ok bool) {
	for _, rec := range ds {
		if rec.Date == "" {
			continue
		}
		if !ok || rec.Date < min {
			min = rec.Date
		}
		if !ok || rec.Date > max {
			max = rec.Date
		}
		ok = true
	}
	return min, max, ok
}
