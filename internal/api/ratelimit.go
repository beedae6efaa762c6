package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Rate-limit response headers sent by the Bluefox API.
const (
	headerRateLimit     = "x-ratelimit-limit"
	headerRateRemaining = "x-ratelimit-remaining"
	headerRateReset     = "x-ratelimit-reset"
)

// RateLimiter tracks the quota the server last reported and gates
// requests pre-flight. The values are advisory: the server remains
// authoritative and can still answer 429 even when the local counters
// looked positive.
//
// Counters only change when a response carrying rate-limit headers is
// observed. In particular, a depleted quota is not reset locally when
// the window passes; the next server response does that (lazy reset).
type RateLimiter struct {
	mu        sync.Mutex
	limit     int64
	remaining int64
	reset     int64 // epoch millis
	tracked   bool  // false until the server reports a quota
}

// NewRateLimiter returns a rate limiter with an unbounded quota.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{}
}

// UpdateFromHeaders records the quota from a server response. Headers
// that are absent or unparseable leave the corresponding field
// untracked; there is no error path.
func (rl *RateLimiter) UpdateFromHeaders(h http.Header) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v := h.Get(headerRateLimit); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			rl.limit = n
		}
	}
	if v := h.Get(headerRateRemaining); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			rl.remaining = n
			rl.tracked = true
		} else {
			rl.tracked = false
		}
	}
	if v := h.Get(headerRateReset); v != "" {
		// Server reports seconds; store millis.
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			rl.reset = n * 1000
		}
	}
}

// Check fails fast with a rate-limit error when the last reported quota
// is depleted and the reset time has not passed. It performs no waiting.
func (rl *RateLimiter) Check() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.tracked || rl.remaining > 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	if now >= rl.reset {
		return nil
	}

	return &Error{
		Code:    CodeRateLimitError,
		Status:  http.StatusTooManyRequests,
		Message: "rate limit exceeded",
		Details: map[string]any{
			"limit":   rl.limit,
			"resetAt": rl.reset,
		},
	}
}

// Snapshot returns the current limit, remaining and reset values.
// Remaining is -1 while the quota is untracked.
func (rl *RateLimiter) Snapshot() (limit, remaining, reset int64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if !rl.tracked {
		return rl.limit, -1, rl.reset
	}
	return rl.limit, rl.remaining, rl.reset
}
