package ratelimiter

import "context"

// Record is the per-identifier attempt state.
type Record struct {
	IdentifierHash string
	AttemptCount   uint32
	WindowStart    int64 // first failed attempt, ms since epoch
	Blocked        bool
	ExpiresAt      int64 // after this instant the record carries no state
}

// UpdateFunc computes the next state of a record. It receives a copy of the
// current record, or nil when none exists, and returns the record to store.
// Returning nil deletes the record.
type UpdateFunc func(current *Record) *Record

// Store holds attempt records. Implementations must run each Update as one
// atomic read-modify-write, so concurrent failures on the same key are never
// under-counted.
type Store interface {
	// Update applies fn to the record under key and returns a copy of the
	// stored result (nil if deleted).
	Update(ctx context.Context, key string, fn UpdateFunc) (*Record, error)

	// Delete removes the record under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
