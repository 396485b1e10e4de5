// Package clock supplies time as integer milliseconds since the Unix epoch.
//
// Security comparisons (replay windows, lockout expiry) are done on int64
// milliseconds rather than time.Time so they never depend on location data
// or monotonic-reading quirks.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
)

// Func returns the current time in milliseconds since the Unix epoch.
type Func func() int64

// System reads the process-wide cached wall clock.
func System() int64 {
	return timecache.CachedTime().UnixMilli()
}

// Or returns fn, or System when fn is nil.
func Or(fn Func) Func {
	if fn == nil {
		return System
	}
	return fn
}

// Millis converts a duration to whole milliseconds.
func Millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// Time converts milliseconds since the epoch to a UTC time.Time.
func Time(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	now atomic.Int64
}

// NewManual creates a Manual clock set to start (milliseconds since epoch).
func NewManual(start int64) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

// Now returns the current manual time. Its method value satisfies Func.
func (m *Manual) Now() int64 {
	return m.now.Load()
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) int64 {
	return m.now.Add(d.Milliseconds())
}

// Set moves the clock to ms.
func (m *Manual) Set(ms int64) {
	m.now.Store(ms)
}
