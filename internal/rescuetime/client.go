package rescuetime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"rtpipe/internal/core"
)

// APIKeyEnv is the environment variable holding the RescueTime API key.
const APIKeyEnv = "RESCUETIME_API_KEY"

const defaultBaseURL = "https://www.rescuetime.com/anapi/data"

var ErrMissingAPIKey = errors.New(APIKeyEnv + " is not set")

// Client calls the RescueTime Analytics API Data endpoint.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// NewFromEnv creates a client with the API key from the process environment.
func NewFromEnv() (*Client, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	return NewClient(key), nil
}

// FetchActivity implements ActivitySource. It issues one GET per call and
// keeps only rows whose activity, document or category contains the domain
// (case-insensitive), de-duplicated.
func (c *Client) FetchActivity(ctx context.Context, domain string, r core.DateRange, detailed bool) (core.Dataset, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	if detailed {
		q.Set("perspective", "interval")
		q.Set("resolution_time", "hour")
	} else {
		q.Set("perspective", "rank")
	}
	q.Set("restrict_begin", r.Start.String())
	q.Set("restrict_end", r.End.String())
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rescuetime request for %s: %w", r, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rescuetime request for %s: status %d: %s", r, resp.StatusCode, string(body))
	}

	rows, err := decodeResponse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rescuetime response for %s: %w", r, err)
	}
	return filterDomain(rows, domain), nil
}
