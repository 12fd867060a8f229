package logmeinapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://secure.logmein.com/public-api/v1"
	userAgent      = "lmi-prune/0.1 (https://github.com/Another0Noob/lmi-prune)"
)
const (
	rateLimitRequests = 2
	rateLimitDuration = time.Second
)

// Client talks to the LogMeIn Central public API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	creds       Credentials
	rateLimiter *rate.Limiter
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets an overall per-request timeout on a copy of the client's
// http.Client. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// NewClient creates a new LogMeIn API client.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{},
		baseURL:     DefaultBaseURL,
		userAgent:   userAgent,
		creds:       creds,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDuration/time.Duration(rateLimitRequests)), rateLimitRequests),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an authenticated HTTP request (raw, no JSON decoding).
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.creds.Header())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// validator is implemented by response bodies that can tell a well-formed
// but incomplete payload from a real one.
type validator interface {
	validate() error
}

// doJSON executes the request and decodes a 2xx body into out. out may be
// nil when the caller only cares about the status; otherwise an empty body is
// a *DecodeError. The returned status is zero when no response was received.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) (int, error) {
	resp, err := c.doRequest(ctx, method, endpoint, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return resp.StatusCode, &DecodeError{StatusCode: resp.StatusCode, Err: ErrEmptyBody}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return resp.StatusCode, &DecodeError{StatusCode: resp.StatusCode, Body: truncate(string(b), 512), Err: err}
	}
	if v, ok := out.(validator); ok {
		if err := v.validate(); err != nil {
			return resp.StatusCode, &DecodeError{StatusCode: resp.StatusCode, Body: truncate(string(b), 512), Err: err}
		}
	}
	return resp.StatusCode, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
