// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads source pages over HTTP with a configured user
// agent, timeout and retry policy, singly or as a bounded parallel batch.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/hsr-graph/internal/httputil"
	"github.com/pdiddy/hsr-graph/internal/logging"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

// DefaultUserAgent identifies the fetcher when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (compatible; hsr-graph/0.1)"

const (
	defaultTimeout     = 30 * time.Second
	defaultParallelism = 4
)

// maxBodySize bounds a single page download.
var maxBodySize int64 = 16 << 20

// ErrBodyTooLarge is returned when a page exceeds the download limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Retryable reports whether a later attempt might succeed.
func (e *StatusError) Retryable() bool {
	return httputil.Retryable(e.StatusCode) || e.StatusCode >= 500
}

// IsRetryable classifies a fetch error. Status errors decide for
// themselves. Cancellation and oversized pages are permanent. Any other
// transport failure, timeouts included, is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrBodyTooLarge) {
		return false
	}
	return true
}

// Client fetches pages.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Retry     httputil.Policy
	Logger    *slog.Logger
}

// New builds a client from cfg. Zero values fall back to a 30 s timeout
// and DefaultUserAgent.
func New(cfg types.HTTPConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: ua,
		Retry:     httputil.Policy{MaxRetries: cfg.MaxRetries},
		Logger:    logger,
	}
}

// Get downloads url and returns its body. Non-2xx responses surface as
// *StatusError after retries are exhausted.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	policy := c.Retry
	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt, status int, wait time.Duration) {
			logging.Warn(c.Logger, "retrying page fetch",
				logging.FieldURL, url,
				logging.FieldStatusCode, status,
				logging.FieldAttempt, attempt,
				logging.FieldWait, wait.String())
		}
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.Do(ctx, client, req, policy)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(body)) > maxBodySize {
		return nil, fmt.Errorf("GET %s: %w (%d bytes)", url, ErrBodyTooLarge, maxBodySize)
	}
	return body, nil
}

// Page is the outcome of fetching one URL in a batch.
type Page struct {
	URL  string
	Body []byte
	Err  error
}

// GetAll fetches urls with at most parallelism requests in flight and
// returns one Page per URL in input order. A failed page does not stop
// the others; its error is recorded on the Page.
func (c *Client) GetAll(ctx context.Context, urls []string, parallelism int) []Page {
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}
	pages := make([]Page, len(urls))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, url := range urls {
		g.Go(func() error {
			body, err := c.Get(ctx, url)
			pages[i] = Page{URL: url, Body: body, Err: err}
			return nil
		})
	}
	g.Wait()
	return pages
}
