package rescuetime

import (
	"context"

	"rtpipe/internal/core"
)

// ActivitySource is the outbound port the fetch phase pulls activity rows
// from. The production implementation is Client; tests use memory.Store.
type ActivitySource interface {
	// FetchActivity returns the activity rows for one domain over one date
	// range. Detailed selects per-interval rows; otherwise the API's
	// summary (rank) rows are returned. Returned records are not yet
	// tagged with group/subgroup metadata.
	FetchActivity(ctx context.Context, domain string, r core.DateRange, detailed bool) (core.Dataset, error)
}
