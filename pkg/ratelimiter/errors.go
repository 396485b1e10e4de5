package ratelimiter

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/apiguard/pkg/clock"
)

// Package-level error definitions for rate limiter operations.
var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrEmptyIdentifier   = errors.New("identifier cannot be empty")
	ErrContextCancelled  = errors.New("context cancelled")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// ExceededError reports a denied attempt together with the time the block
// lifts, so callers can show a countdown instead of a bare refusal.
type ExceededError struct {
	BlockedUntil int64 // milliseconds since epoch
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s: blocked until %s", ErrRateLimitExceeded, clock.Time(e.BlockedUntil).Format(time.RFC3339))
}

// Is reports whether target is ErrRateLimitExceeded.
func (e *ExceededError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// RetryAfter returns how long the caller has to wait from now (ms) until the
// block lifts. Never negative.
func (e *ExceededError) RetryAfter(now int64) time.Duration {
	if e.BlockedUntil <= now {
		return 0
	}
	return time.Duration(e.BlockedUntil-now) * time.Millisecond
}
