// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across pipeline stages.
package httputil

import (
	"io"
	"net/http"
	"time"
)

// Policy controls retry behavior for rate-limited requests.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BaseDelay is the first backoff duration; it doubles per attempt.
	// Tests set this to a tiny value to avoid real sleeps.
	BaseDelay time.Duration
}

// DefaultPolicy retries HTTP 429/503 up to four times starting at 5 s:
// 5 s, 10 s, 20 s, 40 s.
var DefaultPolicy = Policy{MaxRetries: 4, BaseDelay: 5 * time.Second}

// retryable reports whether status indicates a transient vendor-side
// condition worth retrying.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// Do executes req and retries 429/503 responses with exponential backoff.
// The response body of each retried attempt is drained and closed before
// sleeping. If the request context is cancelled during a backoff wait the
// context error is returned. After exhausting retries the last response is
// returned so the caller can inspect it.
func Do(client *http.Client, req *http.Request, policy Policy) (*http.Response, error) {
	if policy.MaxRetries <= 0 {
		policy.MaxRetries = DefaultPolicy.MaxRetries
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultPolicy.BaseDelay
	}

	ctx := req.Context()
	delay := policy.BaseDelay

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= policy.MaxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
