package apiguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/dmitrymomot/apiguard/core/cookie"
	"github.com/dmitrymomot/apiguard/core/logger"
	"github.com/dmitrymomot/apiguard/core/sanitizer"
	"github.com/dmitrymomot/apiguard/core/securitylog"
	"github.com/dmitrymomot/apiguard/core/session"
	"github.com/dmitrymomot/apiguard/core/transport"
	"github.com/dmitrymomot/apiguard/core/validator"
	"github.com/dmitrymomot/apiguard/pkg/clock"
	"github.com/dmitrymomot/apiguard/pkg/ratelimiter"
)

// credentials is the login input. Tags drive sanitization and the email
// check; the password policy comes from Config.
type credentials struct {
	Email    string `json:"email" sanitize:"email" validate:"email"`
	Password string `json:"password" sanitize:"password"`
}

// Authenticator performs the actual credential check, typically a request to
// the login endpoint. It receives the normalized email and the sanitized
// password in a locked buffer that is destroyed when Login returns; do not
// retain it. A nil return means the credentials were accepted.
type Authenticator func(ctx context.Context, email string, password *session.Secret) error

// Guard wires the transport interceptor, the login attempt limiter, session
// cleanup and the security event log around one shared configuration.
type Guard struct {
	cfg Config

	store   *ratelimiter.MemoryStore
	limiter *ratelimiter.Limiter
	cleaner *session.Cleaner
	events  *securitylog.Log
	jar     http.CookieJar
	logger  *slog.Logger
	now     clock.Func
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSecurityLog sets the event log. By default each Guard owns a log sized
// by Config.SecurityLog; pass securitylog.Default() to share the process-wide
// one.
func WithSecurityLog(l *securitylog.Log) Option {
	return func(g *Guard) {
		if l != nil {
			g.events = l
		}
	}
}

// WithJar sets the cookie jar installed by Client and cleared by Logout.
func WithJar(jar http.CookieJar) Option {
	return func(g *Guard) {
		if jar != nil {
			g.jar = jar
		}
	}
}

// WithClock sets the clock used for payload timestamps, freshness checks,
// attempt windows and event timestamps.
func WithClock(fn clock.Func) Option {
	return func(g *Guard) {
		g.now = clock.Or(fn)
	}
}

// New validates cfg and builds a Guard.
func New(cfg Config, opts ...Option) (*Guard, error) {
	if err := cfg.Transport.Validate(); err != nil {
		return nil, err
	}

	g := &Guard{
		cfg:    cfg,
		logger: logger.Discard(),
		now:    clock.System,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.events == nil {
		g.events = securitylog.New(
			securitylog.WithCapacity(cfg.SecurityLog.Capacity),
			securitylog.WithClock(g.now),
			securitylog.WithLogger(g.logger),
		)
	}
	if g.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		g.jar = jar
	}

	g.store = ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(cfg.Login.CleanupInterval),
		ratelimiter.WithMemoryStoreLogger(g.logger),
		ratelimiter.WithMemoryStoreClock(g.now),
	)

	limiter, err := ratelimiter.New(g.store, cfg.Login,
		ratelimiter.WithClock(g.now),
		ratelimiter.WithLogger(g.logger),
	)
	if err != nil {
		return nil, err
	}
	g.limiter = limiter

	cleaner, err := session.NewCleaner(cfg.Session,
		session.WithJar(g.jar),
		session.WithCookieManager(cookie.NewFromConfig(cfg.Cookie)),
		session.WithSecurityLog(g.events),
		session.WithLogger(g.logger),
	)
	if err != nil {
		return nil, err
	}
	g.cleaner = cleaner

	return g, nil
}

// Transport returns an interceptor wrapping next (http.DefaultTransport when
// nil). Every origin it talks to is tracked for Logout.
func (g *Guard) Transport(next http.RoundTripper) (*transport.Interceptor, error) {
	return transport.New(g.cfg.Transport,
		transport.WithNext(next),
		transport.WithSecurityLog(g.events),
		transport.WithLogger(g.logger),
		transport.WithClock(g.now),
		transport.WithOriginObserver(g.cleaner.TrackOrigin),
	)
}

// Client returns a copy of base (or of a zero client) whose transport is
// wrapped by an interceptor and whose jar is the Guard's jar. A jar already
// set on base is replaced; pass it with WithJar to keep it.
func (g *Guard) Client(base *http.Client) (*http.Client, error) {
	c := &http.Client{}
	if base != nil {
		cp := *base
		c = &cp
	}

	rt, err := g.Transport(c.Transport)
	if err != nil {
		return nil, err
	}
	c.Transport = rt
	c.Jar = g.jar
	return c, nil
}

// Login runs the authentication flow:
//
//  1. normalize the email and sanitize the password
//  2. validate both; failures do not count as attempts
//  3. refuse the attempt while the identifier is blocked
//  4. call authenticate with the password in a locked buffer
//  5. record the outcome with the limiter and the event log
//
// Validation failures return validator.ValidationErrors (matching
// ErrValidation). A blocked identifier yields a *ratelimiter.ExceededError,
// also when the failure being recorded is the one that triggered the block;
// in that case the authenticator's error is wrapped as well. Cancellation of
// ctx during authenticate is not counted as a failed attempt.
//
// Every attempt that reaches authenticate takes at least
// Config.MinLoginDuration.
func (g *Guard) Login(ctx context.Context, email, password string, authenticate Authenticator) error {
	if authenticate == nil {
		return ErrNilAuthenticator
	}
	started := time.Now()

	creds := credentials{Email: email, Password: password}
	if err := sanitizer.SanitizeStruct(&creds); err != nil {
		return err
	}
	email = creds.Email

	if err := g.validate(creds); err != nil {
		g.events.Record(ctx, securitylog.KindValidationFailed, "login input rejected", map[string]any{
			"fields": invalidFields(err),
		})
		return err
	}

	id := g.limiter.HashIdentifier(email)

	res, err := g.limiter.CheckAttempt(ctx, email)
	if err != nil {
		return err
	}
	if !res.Allowed {
		g.events.Record(ctx, securitylog.KindLoginBlocked, "login attempt refused while blocked", map[string]any{
			"identifier":    id,
			"blocked_until": res.BlockedUntil,
		})
		return res.Err()
	}

	secret := session.NewSecretString(creds.Password)
	g.cleaner.TrackSecret(secret)
	defer g.cleaner.Release(secret)
	defer g.pad(ctx, started)

	authErr := authenticate(ctx, email, secret)
	if authErr == nil {
		if err := g.limiter.RecordSuccessfulAttempt(ctx, email); err != nil {
			g.logger.WarnContext(ctx, "failed to reset login attempts",
				logger.Identifier(id),
				logger.Error(err))
		}
		g.events.Record(ctx, securitylog.KindLoginSuccess, "login succeeded", map[string]any{
			"identifier": id,
		})
		return nil
	}

	if errors.Is(authErr, context.Canceled) || errors.Is(authErr, context.DeadlineExceeded) {
		return authErr
	}

	res, err = g.limiter.RecordFailedAttempt(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %w", authErr, err)
	}
	if !res.Allowed {
		g.events.Record(ctx, securitylog.KindLoginBlocked, "login failed, identifier blocked", map[string]any{
			"identifier":    id,
			"blocked_until": res.BlockedUntil,
		})
		return fmt.Errorf("%w: %w", authErr, res.Err())
	}

	g.events.Record(ctx, securitylog.KindLoginFailure, "login failed", map[string]any{
		"identifier": id,
		"remaining":  res.Remaining,
	})
	return authErr
}

// Logout clears every auth artifact: cookies in the jar across all scopes of
// the origins the Guard has talked to, and any password buffers still alive.
func (g *Guard) Logout(ctx context.Context) (int, error) {
	return g.cleaner.ClearAuthArtifacts(ctx)
}

// Run returns a function for errgroup that drives periodic cleanup of
// expired attempt records until ctx is cancelled. With cleanup disabled it
// only waits for ctx.
func (g *Guard) Run(ctx context.Context) func() error {
	if g.cfg.Login.CleanupInterval <= 0 {
		return func() error {
			<-ctx.Done()
			return nil
		}
	}
	return g.store.Run(ctx)
}

// Config returns the configuration the Guard was built with.
func (g *Guard) Config() Config {
	return g.cfg
}

// Limiter returns the login attempt limiter.
func (g *Guard) Limiter() *ratelimiter.Limiter {
	return g.limiter
}

// Cleaner returns the session cleaner.
func (g *Guard) Cleaner() *session.Cleaner {
	return g.cleaner
}

// SecurityLog returns the event log every component records to.
func (g *Guard) SecurityLog() *securitylog.Log {
	return g.events
}

// Jar returns the cookie jar installed by Client.
func (g *Guard) Jar() http.CookieJar {
	return g.jar
}

func (g *Guard) pad(ctx context.Context, started time.Time) {
	wait := g.cfg.MinLoginDuration - time.Since(started)
	if wait <= 0 {
		return
	}

	t := time.NewTimer(wait)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// validate returns validator.ValidationErrors covering both fields, email
// first.
func (g *Guard) validate(creds credentials) error {
	var errs validator.ValidationErrors
	if err := validator.ValidateStruct(&creds); err != nil {
		if !errors.As(err, &errs) {
			return err
		}
	}
	if err := validator.Apply(validator.ValidPassword("password", creds.Password, g.cfg.Password)); err != nil {
		var pwErrs validator.ValidationErrors
		if errors.As(err, &pwErrs) {
			errs = append(errs, pwErrs...)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func invalidFields(err error) []string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}
