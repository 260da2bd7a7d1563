// Package memory provides an in-memory ActivitySource for tests and
// offline runs, seeded with canned activity rows per domain.
package memory

import (
	"context"
	"sync"

	"rtpipe/internal/core"
)

type Store struct {
	mu    sync.Mutex
	rows  map[string]core.Dataset
	fail  map[string]error
	calls []Call
}

// Call records one FetchActivity invocation.
type Call struct {
	Domain   string
	Range    core.DateRange
	Detailed bool
}

func New() *Store {
	return &Store{
		rows: make(map[string]core.Dataset),
		fail: make(map[string]error),
	}
}

// Seed adds rows for a domain. Rows keep their insertion order.
func (s *Store) Seed(domain string, rows ...core.ActivityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[domain] = append(s.rows[domain], rows...)
}

// FailWith makes every fetch for the domain return err.
func (s *Store) FailWith(domain string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[domain] = err
}

// Calls returns the fetches issued so far.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// FetchActivity returns the seeded rows whose date falls inside r.
// Dateless rows (summary granularity) are always included.
func (s *Store) FetchActivity(_ context.Context, domain string, r core.DateRange, detailed bool) (core.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Domain: domain, Range: r, Detailed: detailed})

	if err := s.fail[domain]; err != nil {
		return nil, err
	}

	var out core.Dataset
	for _, rec := range s.rows[domain] {
		if rec.Date != "" && !inRange(rec.Date, r) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// inRange compares the record's calendar-date prefix against the range
// bounds; ISO dates order lexicographically.
func inRange(date string, r core.DateRange) bool {
	if len(date) < len(core.DateLayout) {
		return false
	}
	day := date[:len(core.DateLayout)]
	return day >= r.Start.String() && day <= r.End.String()
}
