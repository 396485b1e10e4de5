// Package replay rejects messages whose timestamp falls outside an allowed age window.
//
// A timestamp t is fresh at time now iff 0 <= now-t <= maxAge. Timestamps from
// the future are rejected as well, so a sender cannot pre-date messages to
// extend their lifetime. All values are milliseconds since the Unix epoch.
//
// The check is meant to run after signature verification: an unsigned
// timestamp proves nothing.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/apiguard/pkg/clock"
)

// DefaultMaxAge is the default freshness window.
const DefaultMaxAge = 5 * time.Minute

var (
	// ErrReplayDetected is returned for a timestamp older than the window.
	ErrReplayDetected = errors.New("replay: stale message")

	// ErrFutureTimestamp is returned for a timestamp ahead of the local clock.
	// It wraps ErrReplayDetected.
	ErrFutureTimestamp = fmt.Errorf("%w: timestamp is in the future", ErrReplayDetected)
)

// CheckFreshness reports whether timestamp is within maxAgeMs of now and not
// after now.
func CheckFreshness(timestamp, now, maxAgeMs int64) bool {
	age := now - timestamp
	return age >= 0 && age <= maxAgeMs
}

// Guard applies CheckFreshness against a clock.
type Guard struct {
	maxAge int64
	now    clock.Func
}

// Option configures a Guard.
type Option func(*Guard)

// WithMaxAge sets the freshness window. Non-positive values are ignored.
func WithMaxAge(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.maxAge = clock.Millis(d)
		}
	}
}

// WithClock sets the clock the guard compares against.
func WithClock(fn clock.Func) Option {
	return func(g *Guard) {
		g.now = clock.Or(fn)
	}
}

// New creates a Guard with a DefaultMaxAge window on the system clock.
func New(opts ...Option) *Guard {
	g := &Guard{
		maxAge: clock.Millis(DefaultMaxAge),
		now:    clock.System,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAge returns the configured window.
func (g *Guard) MaxAge() time.Duration {
	return time.Duration(g.maxAge) * time.Millisecond
}

// Check returns nil when timestamp is fresh, ErrFutureTimestamp when it is
// ahead of the clock and ErrReplayDetected when it is too old.
func (g *Guard) Check(timestamp int64) error {
	now := g.now()
	if CheckFreshness(timestamp, now, g.maxAge) {
		return nil
	}
	if timestamp > now {
		return ErrFutureTimestamp
	}
	return ErrReplayDetected
}
