package ratelimiter

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/apiguard/core/logger"
	"github.com/dmitrymomot/apiguard/pkg/clock"
)

// Result describes the outcome of a limiter call.
type Result struct {
	Allowed      bool
	Remaining    int   // attempts left in the current window
	BlockedUntil int64 // ms since epoch; zero unless denied
}

// Err returns an *ExceededError for a denied result and nil otherwise.
func (r Result) Err() error {
	if r.Allowed {
		return nil
	}
	return &ExceededError{BlockedUntil: r.BlockedUntil}
}

// Limiter counts failed login attempts per identifier inside a sliding window
// and blocks the identifier once the threshold is reached.
//
// Identifiers are keyed by an HMAC-SHA256 digest under a per-limiter random
// key; the plaintext identifier is never stored or logged.
type Limiter struct {
	store   Store
	config  Config
	hashKey []byte
	now     clock.Func
	logger  *slog.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock sets the clock used for window and block arithmetic.
func WithClock(fn clock.Func) Option {
	return func(l *Limiter) {
		l.now = clock.Or(fn)
	}
}

// WithHashKey fixes the identifier hashing key. Limiters sharing a Store must
// share the key.
func WithHashKey(key []byte) Option {
	return func(l *Limiter) {
		if len(key) > 0 {
			l.hashKey = append([]byte(nil), key...)
		}
	}
}

// WithLogger sets the logger for limiter decisions.
func WithLogger(lg *slog.Logger) Option {
	return func(l *Limiter) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New creates a Limiter backed by store.
func New(store Store, config Config, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	l := &Limiter{
		store:  store,
		config: config,
		now:    clock.System,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.hashKey == nil {
		l.hashKey = make([]byte, sha256.Size)
		if _, err := io.ReadFull(rand.Reader, l.hashKey); err != nil {
			return nil, fmt.Errorf("failed to generate identifier hash key: %w", err)
		}
	}

	return l, nil
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// HashIdentifier returns the key an identifier is stored under. Identifiers
// are trimmed and lower-cased first so "User@Example.com " and
// "user@example.com" share one record.
func (l *Limiter) HashIdentifier(identifier string) string {
	mac := hmac.New(sha256.New, l.hashKey)
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(identifier))))
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckAttempt reports whether identifier may attempt to authenticate now.
// It expires stale records and moves a record that reached the threshold to
// the blocked state. It never counts an attempt itself.
func (l *Limiter) CheckAttempt(ctx context.Context, identifier string) (Result, error) {
	key, err := l.key(identifier)
	if err != nil {
		return Result{}, err
	}

	now := l.now()
	var res Result

	_, err = l.store.Update(ctx, key, func(r *Record) *Record {
		if r != nil && !r.Blocked && int(r.AttemptCount) >= l.config.MaxAttempts {
			l.block(r)
		}

		r = l.expire(r, now)
		if r == nil {
			res = Result{Allowed: true, Remaining: l.config.MaxAttempts}
			return nil
		}

		if r.Blocked {
			res = Result{BlockedUntil: r.ExpiresAt}
			return r
		}

		res = Result{Allowed: true, Remaining: l.remaining(r)}
		return r
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if !res.Allowed {
		l.logger.WarnContext(ctx, "login attempt denied",
			slog.String("identifier", key),
			slog.Int64("blocked_until", res.BlockedUntil))
	}

	return res, nil
}

// RecordFailedAttempt counts a failed authentication for identifier. The
// first failure opens a new window; reaching MaxAttempts blocks the
// identifier until WindowStart+BlockDuration. Failures while blocked do not
// extend the block.
func (l *Limiter) RecordFailedAttempt(ctx context.Context, identifier string) (Result, error) {
	key, err := l.key(identifier)
	if err != nil {
		return Result{}, err
	}

	now := l.now()
	var res Result

	_, err = l.store.Update(ctx, key, func(r *Record) *Record {
		r = l.expire(r, now)
		switch {
		case r == nil:
			r = &Record{
				IdentifierHash: key,
				AttemptCount:   1,
				WindowStart:    now,
				ExpiresAt:      now + clock.Millis(l.config.Window),
			}
		case r.Blocked:
			res = Result{BlockedUntil: r.ExpiresAt}
			return r
		default:
			r.AttemptCount++
		}

		if int(r.AttemptCount) >= l.config.MaxAttempts {
			l.block(r)
			res = Result{BlockedUntil: r.ExpiresAt}
			return r
		}

		res = Result{Allowed: true, Remaining: l.remaining(r)}
		return r
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if !res.Allowed {
		l.logger.WarnContext(ctx, "login identifier blocked",
			slog.String("identifier", key),
			slog.Int64("blocked_until", res.BlockedUntil))
	}

	return res, nil
}

// RecordSuccessfulAttempt clears all state for identifier.
func (l *Limiter) RecordSuccessfulAttempt(ctx context.Context, identifier string) error {
	key, err := l.key(identifier)
	if err != nil {
		return err
	}
	if err := l.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (l *Limiter) key(identifier string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", ErrEmptyIdentifier
	}
	return l.HashIdentifier(identifier), nil
}

// expire returns nil when r no longer carries state at now.
func (l *Limiter) expire(r *Record, now int64) *Record {
	if r == nil {
		return nil
	}
	if r.Blocked {
		if now >= r.WindowStart+clock.Millis(l.config.BlockDuration) {
			return nil
		}
		return r
	}
	if now-r.WindowStart > clock.Millis(l.config.Window) {
		return nil
	}
	return r
}

// block is measured from the first attempt of the window, not from the
// attempt that crossed the threshold.
func (l *Limiter) block(r *Record) {
	r.Blocked = true
	r.ExpiresAt = r.WindowStart + clock.Millis(l.config.BlockDuration)
}

func (l *Limiter) remaining(r *Record) int {
	return max(l.config.MaxAttempts-int(r.AttemptCount), 0)
}
