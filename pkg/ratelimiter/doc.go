// Package ratelimiter provides a sliding-window login attempt limiter with
// temporary lockout and a pluggable record store.
//
// Each identifier (typically a normalized email) moves through four states:
//
//	Unthrottled -> Counting -> Blocked -> (block elapsed) -> Unthrottled
//
// The first failed attempt opens a window. Further failures inside the window
// increment the count; once it reaches MaxAttempts the identifier is blocked
// until WindowStart+BlockDuration. A window that elapses without reaching the
// threshold is discarded. A successful login deletes the record outright.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.New(store, ratelimiter.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := limiter.CheckAttempt(ctx, email)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed {
//		return res.Err() // *ExceededError with BlockedUntil
//	}
//
//	if err := authenticate(ctx, email, password); err != nil {
//		_, _ = limiter.RecordFailedAttempt(ctx, email)
//		return err
//	}
//	return limiter.RecordSuccessfulAttempt(ctx, email)
//
// # Storage
//
// Store is a small interface built around an atomic Update: the limiter
// computes the next record inside the callback, so two concurrent failures
// for the same identifier are always both counted. MemoryStore keeps records
// in process memory and loses them on restart.
//
// MemoryStore runs an optional cleanup loop that drops expired records:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(store.Run(ctx))
//
// # Privacy
//
// Records are keyed by HMAC-SHA256 of the trimmed, lower-cased identifier
// under a random per-limiter key. Use WithHashKey when several limiters
// share a store.
//
// # Error Handling
//
//	var exceeded *ratelimiter.ExceededError
//	if errors.As(err, &exceeded) {
//		retry := exceeded.RetryAfter(clock.System())
//	}
//
// ExceededError matches ErrRateLimitExceeded with errors.Is. Store failures
// wrap ErrStoreUnavailable.
package ratelimiter
