package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/apiguard/core/logger"
	"github.com/dmitrymomot/apiguard/core/securitylog"
	"github.com/dmitrymomot/apiguard/pkg/clock"
	"github.com/dmitrymomot/apiguard/pkg/replay"
	"github.com/dmitrymomot/apiguard/pkg/secrets"
	"github.com/dmitrymomot/apiguard/pkg/signature"
)

// Exchange is the per-request state carried from InterceptRequest to
// InterceptResponse.
type Exchange struct {
	CorrelationID string
	Method        string
	URL           string // sanitized
	Class         Class
	Encrypted     bool // request body was sealed
	Start         int64
}

// Interceptor applies the security policy around an HTTP round trip. It
// implements http.RoundTripper and is safe for concurrent use.
//
// Per request it logs exactly one security event for the request phase and
// one for the response phase. It never retries.
type Interceptor struct {
	cfg        Config
	next       http.RoundTripper
	classifier *Classifier
	codec      *Codec
	events     *securitylog.Log
	logger     *slog.Logger
	now        clock.Func
	newID      func() string
	observe    func(*url.URL)
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithNext sets the wrapped RoundTripper. Defaults to http.DefaultTransport.
func WithNext(rt http.RoundTripper) Option {
	return func(i *Interceptor) {
		if rt != nil {
			i.next = rt
		}
	}
}

// WithSecurityLog sets the security event log. Defaults to securitylog.Default().
func WithSecurityLog(l *securitylog.Log) Option {
	return func(i *Interceptor) {
		if l != nil {
			i.events = l
		}
	}
}

// WithLogger sets the logger used when request logging is enabled.
func WithLogger(l *slog.Logger) Option {
	return func(i *Interceptor) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithClock sets the clock for timestamps, payload stamping and freshness.
func WithClock(fn clock.Func) Option {
	return func(i *Interceptor) {
		i.now = clock.Or(fn)
	}
}

// WithIDGenerator overrides the correlation ID generator (default: UUID v4).
func WithIDGenerator(fn func() string) Option {
	return func(i *Interceptor) {
		if fn != nil {
			i.newID = fn
		}
	}
}

// WithOriginObserver registers fn to be called with the URL of every request
// that passes the request phase.
func WithOriginObserver(fn func(*url.URL)) Option {
	return func(i *Interceptor) {
		i.observe = fn
	}
}

// New builds an Interceptor, deriving the cipher, signer and replay guard
// from cfg.
func New(cfg Config, opts ...Option) (*Interceptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	i := &Interceptor{
		cfg:        cfg,
		next:       http.DefaultTransport,
		classifier: NewClassifier(cfg.SensitiveEndpoints, cfg.PublicEndpoints),
		events:     securitylog.Default(),
		logger:     logger.Discard(),
		now:        clock.System,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(i)
	}

	cipher, err := secrets.NewCipher(cfg.EncryptionSecret,
		secrets.WithIterations(cfg.KDFIterations),
		secrets.WithClock(i.now))
	if err != nil {
		return nil, err
	}
	signer, err := signature.New([]byte(cfg.HMACSecret))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	guard := replay.New(replay.WithMaxAge(cfg.ReplayWindow), replay.WithClock(i.now))

	i.codec = NewCodec(cipher, signer, guard)
	return i, nil
}

// Classifier returns the endpoint classifier.
func (i *Interceptor) Classifier() *Classifier {
	return i.classifier
}

// Codec returns the envelope codec, configured with the same secrets.
func (i *Interceptor) Codec() *Codec {
	return i.codec
}

// RoundTrip implements http.RoundTripper.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	out, ex, err := i.InterceptRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := i.next.RoundTrip(out)
	if err != nil {
		i.record(req.Context(), securitylog.KindTransportError, "request failed in transport", ex, map[string]any{
			"error": transportCause(err).Error(),
		})
		return nil, err
	}

	return i.InterceptResponse(ex, resp)
}

// InterceptRequest applies the request-phase policy and returns the request
// to send. req itself is never modified.
func (i *Interceptor) InterceptRequest(req *http.Request) (*http.Request, *Exchange, error) {
	ctx := req.Context()
	class := i.classifier.Classify(req.URL)
	ex := &Exchange{
		CorrelationID: i.newID(),
		Method:        req.Method,
		URL:           logger.SanitizeURL(req.URL),
		Class:         class,
		Start:         i.now(),
	}

	if class != ClassPublic && i.cfg.EnforceHTTPS && !isSecureURL(req.URL) {
		closeBody(req)
		i.record(ctx, securitylog.KindInsecureTransport, "refused request over insecure transport", ex, nil)
		return nil, nil, &SecureError{Phase: PhaseRequest, Kind: ErrInsecureTransport, CorrelationID: ex.CorrelationID}
	}

	out := req.Clone(ctx)
	if class != ClassPublic {
		setSecurityHeaders(out.Header, i.cfg.ClientVersion, ex.CorrelationID, ex.Start)
	}

	kind := securitylog.KindSecureRequest
	message := "secure request prepared"
	var extra map[string]any

	if i.shouldEncrypt(class) && hasBody(req) {
		body, err := readBody(req)
		if err != nil {
			i.record(ctx, securitylog.KindEncryptionError, "failed to read request body", ex, map[string]any{"error": err.Error()})
			return nil, nil, &SecureError{Phase: PhaseRequest, Kind: secrets.ErrEncryption, CorrelationID: ex.CorrelationID}
		}

		sealed, err := i.codec.Seal(body)
		switch {
		case err == nil:
			setBody(out, sealed)
			out.Header.Set("Content-Type", "application/json")
			out.Header.Set(HeaderEncrypted, "true")
			ex.Encrypted = true
		case i.mandatory(class):
			i.record(ctx, securitylog.KindEncryptionError, "request encryption failed", ex, map[string]any{"error": err.Error()})
			return nil, nil, &SecureError{Phase: PhaseRequest, Kind: secrets.ErrEncryption, CorrelationID: ex.CorrelationID}
		default:
			setBody(out, body)
			kind = securitylog.KindEncryptionFallback
			message = "request encryption failed, sending plaintext"
			extra = map[string]any{"error": err.Error()}
		}
	}

	i.record(ctx, kind, message, ex, extra)

	if i.observe != nil {
		i.observe(req.URL)
	}
	return out, ex, nil
}

// InterceptResponse verifies and decrypts an enveloped JSON response. Any
// failure closes the body and returns a *SecureError; the response is never
// partially trusted.
func (i *Interceptor) InterceptResponse(ex *Exchange, resp *http.Response) (*http.Response, error) {
	ctx := context.Background()
	if resp.Request != nil {
		ctx = resp.Request.Context()
	}

	fail := func(kind string, sentinel error, cause error) (*http.Response, error) {
		_ = resp.Body.Close()
		i.record(ctx, kind, "secure response rejected", ex, map[string]any{
			"status": resp.StatusCode,
			"error":  cause.Error(),
		})
		return nil, &SecureError{Phase: PhaseResponse, Kind: sentinel, CorrelationID: ex.CorrelationID}
	}

	encryptedHint := resp.Header.Get(HeaderEncrypted) != ""
	if !encryptedHint && !isJSON(resp.Header.Get("Content-Type")) {
		i.recordResponse(ctx, ex, resp.StatusCode, false)
		return resp, nil
	}

	limit := i.cfg.MaxResponseBytes
	readLimit := limit
	if readLimit < math.MaxInt64 {
		readLimit++
	}
	buf, err := io.ReadAll(io.LimitReader(resp.Body, readLimit))
	if err != nil {
		return fail(securitylog.KindDecryptionError, secrets.ErrDecryption, err)
	}
	if int64(len(buf)) > limit {
		if encryptedHint {
			return fail(securitylog.KindDecryptionError, ErrResponseTooLarge, ErrResponseTooLarge)
		}
		// Too large to be an envelope we accept; stream it through untouched.
		resp.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(buf), resp.Body), resp.Body}
		i.recordResponse(ctx, ex, resp.StatusCode, false)
		return resp, nil
	}
	_ = resp.Body.Close()

	plain, encrypted, err := i.codec.Open(buf)
	if err != nil {
		switch {
		case errors.Is(err, signature.ErrSignatureInvalid):
			return fail(securitylog.KindSignatureInvalid, signature.ErrSignatureInvalid, err)
		case errors.Is(err, replay.ErrFutureTimestamp):
			return fail(securitylog.KindReplayDetected, replay.ErrFutureTimestamp, err)
		case errors.Is(err, replay.ErrReplayDetected):
			return fail(securitylog.KindReplayDetected, replay.ErrReplayDetected, err)
		default:
			return fail(securitylog.KindDecryptionError, secrets.ErrDecryption, err)
		}
	}

	resp.Body = io.NopCloser(bytes.NewReader(plain))
	resp.ContentLength = int64(len(plain))
	resp.Header.Set("Content-Length", strconv.Itoa(len(plain)))
	resp.Header.Del(HeaderEncrypted)

	i.recordResponse(ctx, ex, resp.StatusCode, encrypted)
	return resp, nil
}

func (i *Interceptor) shouldEncrypt(class Class) bool {
	switch class {
	case ClassSensitive:
		return true
	case ClassPublic:
		return false
	default:
		return i.cfg.EncryptionEnabled
	}
}

// mandatory reports whether an encryption failure must abort the request.
func (i *Interceptor) mandatory(class Class) bool {
	return class == ClassSensitive || i.cfg.StrictEncryption
}

func (i *Interceptor) recordResponse(ctx context.Context, ex *Exchange, status int, encrypted bool) {
	i.record(ctx, securitylog.KindSecureResponse, "secure response accepted", ex, map[string]any{
		"status":             status,
		"response_encrypted": encrypted,
	})

	if i.cfg.RequestLogging {
		i.logger.InfoContext(ctx, "secure round trip",
			logger.CorrelationID(ex.CorrelationID),
			logger.Method(ex.Method),
			slog.String("url", ex.URL),
			logger.StatusCode(status),
			slog.String("class", ex.Class.String()),
			logger.Duration(time.Duration(i.now()-ex.Start)*time.Millisecond))
	}
}

func (i *Interceptor) record(ctx context.Context, kind, message string, ex *Exchange, extra map[string]any) {
	details := map[string]any{
		"correlation_id": ex.CorrelationID,
		"method":         ex.Method,
		"url":            ex.URL,
		"class":          ex.Class.String(),
		"encrypted":      ex.Encrypted,
	}
	for k, v := range extra {
		details[k] = v
	}
	i.events.Record(ctx, kind, message, details)
}

// transportCause drops the *url.Error wrapper, whose message repeats the
// full URL including the query string.
func transportCause(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}

func isSecureURL(u *url.URL) bool {
	if strings.EqualFold(u.Scheme, "https") {
		return true
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func hasBody(req *http.Request) bool {
	return req.Body != nil && req.Body != http.NoBody
}

// readBody drains and closes the request body.
func readBody(req *http.Request) ([]byte, error) {
	defer req.Body.Close()
	return io.ReadAll(req.Body)
}

// closeBody honours the RoundTripper contract on early returns.
func closeBody(req *http.Request) {
	if hasBody(req) {
		_ = req.Body.Close()
	}
}

func setBody(req *http.Request, body []byte) {
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
}
