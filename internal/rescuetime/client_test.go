package rescuetime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rtpipe/internal/core"
)

const intervalBody = `{
	"row_headers": ["Date", "Time Spent (seconds)", "Number of People", "Activity", "Document", "Category", "Productivity"],
	"rows": [
		["2023-01-02T10:00:00", 1200, 1, "github.com", "pull requests", "Software Development", 2],
		["2023-01-02T11:00:00", 300, 1, "nytimes.com", "front page", "News", -1],
		["2023-01-03T09:00:00", 900, 1, "github.com", "issues", "Software Development", 2],
		["2023-01-02T10:00:00", 1200, 1, "github.com", "pull requests", "Software Development", 2]
	]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestFetchActivityDetailed(t *testing.T) {
	var gotQuery map[string]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"key":             q.Get("key"),
			"perspective":     q.Get("perspective"),
			"resolution_time": q.Get("resolution_time"),
			"restrict_begin":  q.Get("restrict_begin"),
			"restrict_end":    q.Get("restrict_end"),
			"format":          q.Get("format"),
		}
		w.Write([]byte(intervalBody))
	})

	r := core.DateRange{Start: core.NewDate(2023, 1, 1), End: core.NewDate(2023, 3, 31)}
	ds, err := c.FetchActivity(context.Background(), "github.com", r, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"key":             "test-key",
		"perspective":     "interval",
		"resolution_time": "hour",
		"restrict_begin":  "2023-01-01",
		"restrict_end":    "2023-03-31",
		"format":          "json",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	// The nytimes row is filtered out and the duplicate github row dropped.
	if len(ds) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(ds), ds)
	}
	first := ds[0]
	if first.Date != "2023-01-02T10:00:00" || first.TimeSpentSeconds != 1200 ||
		first.Activity != "github.com" || first.Document != "pull requests" ||
		first.Category != "Software Development" || first.Productivity != 2 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if ds[1].Document != "issues" {
		t.Fatalf("unexpected second record: %+v", ds[1])
	}
}

func TestFetchActivitySummaryPerspective(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("perspective") != "rank" {
			t.Errorf("perspective = %q, want rank", q.Get("perspective"))
		}
		if q.Get("resolution_time") != "" {
			t.Errorf("resolution_time should not be set for summary fetches")
		}
		w.Write([]byte(`{
			"row_headers": ["Rank", "Time Spent (seconds)", "Number of People", "Activity", "Category", "Productivity"],
			"rows": [[1, 4500, 1, "github.com", "Software Development", 2]]
		}`))
	})

	r := core.DateRange{Start: core.NewDate(2023, 1, 1), End: core.NewDate(2023, 1, 31)}
	ds, err := c.FetchActivity(context.Background(), "github.com", r, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("expected 1 record, got %d", len(ds))
	}
	if ds[0].Date != "" || ds[0].Document != "" {
		t.Fatalf("summary record should have no date or document: %+v", ds[0])
	}
	if ds[0].TimeSpentSeconds != 4500 {
		t.Fatalf("TimeSpentSeconds = %d", ds[0].TimeSpentSeconds)
	}
}

func TestFetchActivityHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	})
	r := core.DateRange{Start: core.NewDate(2023, 1, 1), End: core.NewDate(2023, 1, 31)}
	if _, err := c.FetchActivity(context.Background(), "github.com", r, true); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchActivityMalformedBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	r := core.DateRange{Start: core.NewDate(2023, 1, 1), End: core.NewDate(2023, 1, 31)}
	if _, err := c.FetchActivity(context.Background(), "github.com", r, true); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("expected error without API key")
	}
	t.Setenv(APIKeyEnv, "abc")
	c, err := NewFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.apiKey != "abc" {
		t.Fatalf("apiKey = %q", c.apiKey)
	}
}
