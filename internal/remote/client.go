// Package remote implements the HTTP client for the ticker search backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/marketpeek/tickerpick/internal/ticker"
)

const (
	defaultTimeout  = 10 * time.Second
	requestsPerSec  = 5
	requestBurst    = 5
	maxErrorPayload = 4 << 10
)

// Client talks to the search backend. A token-bucket limiter keeps rapid
// debounce expiries from hammering the API; all operations honour their
// context for cancellation.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit overrides the default request rate.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// New returns a client for the backend at baseURL. The API key may be empty
// for backends that do not require one.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), requestBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Results []ticker.Record `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Search queries the backend for symbols matching query. Failures carry a
// *Error so callers can separate connectivity from application problems.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]ticker.Record, error) {
	endpoint := fmt.Sprintf("%s/v1/search?q=%s&limit=%s",
		c.baseURL, url.QueryEscape(query), strconv.Itoa(limit))

	var payload searchResponse
	if err := c.get(ctx, "search", endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Directory fetches the full symbol directory for the offline index.
func (c *Client) Directory(ctx context.Context) ([]ticker.Record, error) {
	var records []ticker.Record
	if err := c.get(ctx, "directory", c.baseURL+"/v1/tickers", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AddToWatchlist registers the record with the backend watchlist.
func (c *Client) AddToWatchlist(ctx context.Context, rec ticker.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return applicationError("watchlist add", err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/watchlist", bytes.NewReader(body))
	if err != nil {
		return applicationError("watchlist add", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do("watchlist add", req, nil)
}

func (c *Client) get(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return applicationError(op, err.Error())
	}
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return Classify(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classify(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return applicationError(op, errorMessage(resp))
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return applicationError(op, "malformed response: "+err.Error())
	}
	return nil
}

func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorPayload))
	if err == nil && len(data) > 0 {
		var payload errorResponse
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return payload.Error
		}
	}
	return "unexpected status " + resp.Status
}
