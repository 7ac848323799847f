package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultRetries     = 2
	DefaultBackoffBase = time.Second

	// maxBackoff caps the delay between attempts regardless of how many
	// retries are configured.
	maxBackoff = 30 * time.Second
)

// Response is the byte-level result of a successful (2xx) request.
type Response struct {
	StatusCode int
	Body       []byte
	URL        string
}

type Interface interface {
	Get(ctx context.Context, path string) (*Response, error)
	GetJSON(ctx context.Context, path string, v any) error
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	retries     int
	backoffBase time.Duration
	userAgent   string
	GetFunc     func(ctx context.Context, path string) (*Response, error)
}

type Options struct {
	BaseURL string
	// Timeout bounds each attempt, not the whole retry loop.
	Timeout time.Duration
	// Retries is the number of additional attempts after the first. Zero
	// means DefaultRetries; pass a negative value to disable retries.
	Retries     int
	BackoffBase time.Duration
	UserAgent   string
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.Retries == 0 {
		opts.Retries = DefaultRetries
	} else if opts.Retries < 0 {
		opts.Retries = 0
	}

	if opts.BackoffBase == 0 {
		opts.BackoffBase = DefaultBackoffBase
	}

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		retries:     opts.Retries,
		backoffBase: opts.BackoffBase,
		userAgent:   opts.UserAgent,
	}
}

// Get fetches path, retrying transient failures (transport errors and 5xx
// responses) with exponential backoff. A 4xx response is permanent and is
// returned immediately as a *HTTPError without further attempts.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	var fullURL string
	if c.baseURL == "" {
		fullURL = path // If no base URL, treat path as full URL
	} else {
		fullURL = c.baseURL + path // Otherwise combine them
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := Backoff(attempt-1, c.backoffBase)
			log.Debug().
				Str("url", fullURL).
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Msg("retrying request")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := c.doOnce(ctx, fullURL)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && !httpErr.Retryable() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, fullURL)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			return
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: fullURL}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        fullURL,
	}, nil
}

// GetJSON fetches path and unmarshals the response body into v. A body that
// is not valid JSON for v yields a *DecodeError.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &DecodeError{URL: resp.URL, Err: err}
	}
	return nil
}

// Backoff returns the delay before the nth retry (zero-based): the base
// doubled per retry, capped at 30 seconds.
func Backoff(n int, base time.Duration) time.Duration {
	if base <= 0 {
		base = DefaultBackoffBase
	}
	if n > 30 {
		return maxBackoff
	}
	d := base << uint(n)
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}
