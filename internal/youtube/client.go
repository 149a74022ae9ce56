package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultTimeout = 8 * time.Second
)

// HTTPClient is the subset of http.Client the API client needs; injected in
// tests to avoid network access.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPClient) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = base }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// Client talks to the external platform's metadata API with an API key.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient HTTPClient
}

// NewClient creates an API client. The key is appended to every request.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VideosByIDs fetches full video resources for up to 50 IDs in one call.
func (c *Client) VideosByIDs(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return []Video{}, nil
	}
	q := url.Values{
		"part": {"snippet,statistics,contentDetails"},
		"id":   {strings.Join(ids, ",")},
	}
	var resp videoListResponse
	if err := c.get(ctx, "/videos", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// MostPopular fetches the platform's trending chart, optionally filtered by
// category ID.
func (c *Client) MostPopular(ctx context.Context, limit int, categoryID string) ([]Video, error) {
	q := url.Values{
		"part":       {"snippet,statistics,contentDetails"},
		"chart":      {"mostPopular"},
		"maxResults": {fmt.Sprintf("%d", clampResults(limit))},
	}
	if categoryID != "" {
		q.Set("videoCategoryId", categoryID)
	}
	var resp videoListResponse
	if err := c.get(ctx, "/videos", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Search runs a free-text video search, then hydrates the hits with
// statistics and contentDetails through a second videos call (the search
// endpoint only returns snippets).
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Video, error) {
	q := url.Values{
		"part":       {"snippet"},
		"type":       {"video"},
		"q":          {query},
		"maxResults": {fmt.Sprintf("%d", clampResults(limit))},
	}
	var resp searchListResponse
	if err := c.get(ctx, "/search", q, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return c.VideosByIDs(ctx, ids)
}

// ChannelByID fetches a single channel resource. Returns nil when the API
// knows no such channel.
func (c *Client) ChannelByID(ctx context.Context, id string) (*Channel, error) {
	q := url.Values{
		"part": {"snippet,statistics"},
		"id":   {id},
	}
	var resp channelListResponse
	if err := c.get(ctx, "/channels", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return &resp.Items[0], nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("platform api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("platform api: %s returned %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

// clampResults keeps maxResults within the API's accepted 1..50 range.
func clampResults(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}
