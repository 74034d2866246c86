// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the retrying HTTP round trip used by the
// page fetcher.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseDelay is the first backoff when a Policy leaves BaseDelay
// unset. Tests override this to avoid real sleeps.
var DefaultBaseDelay = 2 * time.Second

const (
	defaultMaxRetries = 3
	defaultMaxDelay   = time.Minute
)

// Policy controls how Do retries.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero or negative uses the default (3).
	MaxRetries int

	// BaseDelay starts the exponential backoff; it doubles per attempt.
	BaseDelay time.Duration

	// MaxDelay caps a single wait, including server Retry-After hints.
	MaxDelay time.Duration

	// OnRetry, when set, is called before each backoff wait.
	OnRetry func(attempt, status int, wait time.Duration)
}

// Retryable reports whether a status code is worth retrying: rate limits
// and transient upstream failures.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Backoff returns the wait before retry number attempt (zero-based). A
// Retry-After header in seconds takes precedence over the exponential
// schedule. The result never exceeds MaxDelay.
func (p Policy) Backoff(attempt int, resp *http.Response) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	limit := p.MaxDelay
	if limit <= 0 {
		limit = defaultMaxDelay
	}

	wait := base << attempt
	if resp != nil {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
			wait = time.Duration(secs) * time.Second
		}
	}
	if wait > limit || wait < 0 {
		wait = limit
	}
	return wait
}

// Do executes req and retries while the response status is Retryable.
// Each retried response body is drained and closed before waiting. If
// ctx is cancelled during a wait Do returns ctx.Err(). After exhausting
// retries the last response is returned so the caller can inspect it.
// Transport errors are returned immediately.
func Do(ctx context.Context, client *http.Client, req *http.Request, p Policy) (*http.Response, error) {
	maxRetries := p.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := p.Backoff(attempt, resp)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if p.OnRetry != nil {
			p.OnRetry(attempt+1, resp.StatusCode, wait)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}
