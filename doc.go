// Package apiguard is the client-side security core of an API consumer. It
// encrypts and signs request payloads, verifies and decrypts responses,
// rejects replayed messages, limits login attempts per identifier and clears
// session artifacts on logout. Every security-relevant outcome is recorded in
// a bounded, masked event log.
//
// # Package Organization
//
//	github.com/dmitrymomot/apiguard                  - Guard facade, Config aggregate, login flow
//	github.com/dmitrymomot/apiguard/core/transport   - http.RoundTripper applying the encryption policy
//	github.com/dmitrymomot/apiguard/core/session     - auth cookie expiry across scopes, locked password buffers
//	github.com/dmitrymomot/apiguard/core/cookie      - expiry cookies and domain/path scope derivation
//	github.com/dmitrymomot/apiguard/core/securitylog - ring buffer of masked security events
//	github.com/dmitrymomot/apiguard/core/validator   - email and password checks
//	github.com/dmitrymomot/apiguard/core/sanitizer   - input normalization
//	github.com/dmitrymomot/apiguard/core/logger      - slog setup and attribute helpers
//	github.com/dmitrymomot/apiguard/core/config      - environment loading
//	github.com/dmitrymomot/apiguard/pkg/secrets      - PBKDF2 key derivation and AES-256-GCM payload cipher
//	github.com/dmitrymomot/apiguard/pkg/signature    - HMAC-SHA256 payload signing
//	github.com/dmitrymomot/apiguard/pkg/replay       - timestamp freshness window
//	github.com/dmitrymomot/apiguard/pkg/ratelimiter  - sliding-window login attempt limiter
//	github.com/dmitrymomot/apiguard/pkg/clock        - millisecond clocks, including a manual one for tests
//	github.com/dmitrymomot/apiguard/pkg/codec        - base64 helpers and buffer wiping
//
// # Usage
//
//	cfg, err := apiguard.LoadConfig()
//	if err != nil {
//		return err
//	}
//
//	guard, err := apiguard.New(cfg, apiguard.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	client, err := guard.Client(nil)
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(guard.Run(ctx))
//
//	err = guard.Login(ctx, email, password, func(ctx context.Context, email string, pw *session.Secret) error {
//		return pw.Use(func(b []byte) error {
//			return api.Login(ctx, client, email, b)
//		})
//	})
//	var exceeded *ratelimiter.ExceededError
//	if errors.As(err, &exceeded) {
//		// show a countdown until exceeded.BlockedUntil
//	}
//
//	// on logout
//	cleared, err := guard.Logout(ctx)
//
// # Login flow
//
// Login normalizes and validates the credentials before anything is counted,
// asks the limiter whether the identifier may try, runs the caller's
// authenticator and records the outcome. Identifiers are stored and logged
// only as keyed hashes. The password is moved into a memguard buffer for the
// duration of the call and destroyed afterwards.
//
// # Transport
//
// Requests to sensitive endpoints are always encrypted; public endpoints are
// never touched; everything else follows SECURITY_ENCRYPTION_ENABLED. Enveloped
// responses are verified (signature, then freshness) before they are
// decrypted. Callers only ever see a generic *transport.SecureError; use
// errors.Is against the sentinels to tell a replay from tampering.
package apiguard
