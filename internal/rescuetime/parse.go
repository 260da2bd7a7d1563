package rescuetime

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"rtpipe/internal/core"
)

// apiResponse is the Analytics API JSON shape: a header list plus
// positional rows whose layout depends on the requested perspective.
type apiResponse struct {
	RowHeaders []string `json:"row_headers"`
	Rows       [][]any  `json:"rows"`
}

// Column names as returned by the API. The rank perspective omits Date
// and Document.
const (
	colDate         = "Date"
	colTimeSpent    = "Time Spent (seconds)"
	colPeople       = "Number of People"
	colActivity     = "Activity"
	colDocument     = "Document"
	colCategory     = "Category"
	colProductivity = "Productivity"
)

func decodeResponse(body io.Reader) (core.Dataset, error) {
	var resp apiResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	idx := make(map[string]int, len(resp.RowHeaders))
	for i, h := range resp.RowHeaders {
		idx[h] = i
	}

	ds := make(core.Dataset, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		ds = append(ds, core.ActivityRecord{
			Date:             stringAt(row, idx, colDate),
			TimeSpentSeconds: intAt(row, idx, colTimeSpent),
			NumberOfPeople:   intAt(row, idx, colPeople),
			Activity:         stringAt(row, idx, colActivity),
			Document:         stringAt(row, idx, colDocument),
			Category:         stringAt(row, idx, colCategory),
			Productivity:     intAt(row, idx, colProductivity),
		})
	}
	return ds, nil
}

func stringAt(row []any, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

func intAt(row []any, idx map[string]int, col string) int64 {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return 0
	}
	switch v := row[i].(type) {
	case float64: // encoding/json decodes all numbers to float64
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// filterDomain keeps rows mentioning the domain in any descriptive column
// and drops exact duplicates, preserving first-seen order.
func filterDomain(ds core.Dataset, domain string) core.Dataset {
	needle := strings.ToLower(domain)
	seen := make(map[core.ActivityRecord]bool, len(ds))
	var out core.Dataset
	for _, rec := range ds {
		if !matchesDomain(rec, needle) {
			continue
		}
		if seen[rec] {
			continue
		}
		seen[rec] = true
		out = append(out, rec)
	}
	return out
}

func matchesDomain(rec core.ActivityRecord, needle string) bool {
	for _, field := range []string{rec.Activity, rec.Document, rec.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
