package apod

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDateError reports a manual date the archive cannot serve: bad
// format, before the first APOD, or in the future.
type InvalidDateError struct {
	Value  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Value, e.Reason)
}

// RateLimitedError reports an upstream 429. The client performs no retry;
// callers decide whether and when to try again.
type RateLimitedError struct {
	RetryAfter time.Duration // zero when the upstream sent no hint
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("apod api rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "apod api rate limit exceeded"
}

// UpstreamError reports any non-200 response other than 429, carrying the
// status and raw body so the adapter can surface a useful message.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "…"
	}
	if body == "" {
		return fmt.Sprintf("apod api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("apod api returned status %d: %s", e.StatusCode, body)
}

// MalformedResponseError reports a 200 response that could not be turned
// into a complete entry: undecodable JSON or required fields absent.
type MalformedResponseError struct {
	Missing []string // empty when Err is set
	Err     error    // decode failure, nil when fields were missing
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("apod api response is not valid json: %v", e.Err)
	}
	return fmt.Sprintf("apod api response missing required fields: %s", strings.Join(e.Missing, ", "))
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure (dial, TLS, timeout,
// canceled context) before any status line was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("apod api unreachable: %v", e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }
