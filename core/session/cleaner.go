package session

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/apiguard/core/cookie"
	"github.com/dmitrymomot/apiguard/core/logger"
	"github.com/dmitrymomot/apiguard/core/securitylog"
)

// Cookie name prefixes that browsers treat specially; "__Host-session" is
// still a session cookie.
var cookiePrefixes = []string{"__Host-", "__Secure-"}

// maxOriginPaths bounds the path prefixes remembered per origin.
const maxOriginPaths = 512

// origin is a tracked scheme+host with every path prefix requested from it.
// A cookie set without a Path attribute is stored under the directory of the
// request that set it, so any of these may hold one.
type origin struct {
	url   *url.URL
	paths []string
}

func (o *origin) addPaths(path string) {
	for _, p := range cookie.Paths(path) {
		if len(o.paths) >= maxOriginPaths {
			return
		}
		if !slices.Contains(o.paths, p) {
			o.paths = append(o.paths, p)
		}
	}
}

// Cleaner removes authentication artifacts: auth cookies in a client cookie
// jar or on a response, and tracked in-memory secrets. Unrelated cookies are
// never touched.
type Cleaner struct {
	authNames    []string
	extraDomains []string
	extraPaths   []string

	jar     http.CookieJar
	cookies *cookie.Manager
	events  *securitylog.Log
	logger  *slog.Logger

	mu      sync.Mutex
	origins map[string]*origin
	secrets []*Secret
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithJar sets the client cookie jar to clean and the origins whose cookies
// it holds. More origins can be added later with TrackOrigin.
func WithJar(jar http.CookieJar, origins ...*url.URL) Option {
	return func(c *Cleaner) {
		c.jar = jar
		for _, u := range origins {
			c.trackOrigin(u)
		}
	}
}

// WithCookieManager sets the manager used to build expiry cookies.
func WithCookieManager(m *cookie.Manager) Option {
	return func(c *Cleaner) {
		if m != nil {
			c.cookies = m
		}
	}
}

// WithSecurityLog sets the security event log. Defaults to securitylog.Default().
func WithSecurityLog(l *securitylog.Log) Option {
	return func(c *Cleaner) {
		if l != nil {
			c.events = l
		}
	}
}

// WithLogger sets the logger for internal diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cleaner) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCleaner creates a Cleaner for the auth cookie names in cfg.
func NewCleaner(cfg Config, opts ...Option) (*Cleaner, error) {
	names := make([]string, 0, len(cfg.AuthCookies))
	for _, n := range cfg.AuthCookies {
		if n = strings.TrimSpace(n); n != "" && !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoAuthCookies
	}

	c := &Cleaner{
		authNames:    names,
		extraDomains: cfg.CookieDomains,
		extraPaths:   cfg.CookiePaths,
		cookies:      cookie.New(),
		events:       securitylog.Default(),
		logger:       logger.Discard(),
		origins:      make(map[string]*origin),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// IsAuthCookie reports whether name is one of the configured auth cookies,
// ignoring case and the __Host- / __Secure- prefixes.
func (c *Cleaner) IsAuthCookie(name string) bool {
	for _, p := range cookiePrefixes {
		if rest, ok := strings.CutPrefix(name, p); ok {
			name = rest
			break
		}
	}
	return slices.ContainsFunc(c.authNames, func(n string) bool {
		return strings.EqualFold(n, name)
	})
}

// TrackOrigin records an origin whose cookies live in the jar. Origins are
// keyed by scheme and host; every path prefix of every URL seen for a host is
// kept for scope derivation.
func (c *Cleaner) TrackOrigin(u *url.URL) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trackOrigin(u)
}

func (c *Cleaner) trackOrigin(u *url.URL) {
	if u == nil || u.Host == "" {
		return
	}
	key := strings.ToLower(u.Scheme + "://" + u.Host)
	o, ok := c.origins[key]
	if !ok {
		o = &origin{url: &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}}
		c.origins[key] = o
	}
	o.addPaths(u.Path)
}

// TrackSecret registers s to be destroyed by the next ClearAuthArtifacts.
func (c *Cleaner) TrackSecret(s *Secret) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secrets = append(c.secrets, s)
}

// Release destroys s and stops tracking it.
func (c *Cleaner) Release(s *Secret) {
	if s == nil {
		return
	}
	s.Destroy()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.secrets = slices.DeleteFunc(c.secrets, func(t *Secret) bool { return t == s })
}

// ClearAuthArtifacts expires every auth cookie in the jar across all domain
// and path scopes of each tracked origin and destroys tracked secrets. It
// returns the number of artifacts that were actually present. Calling it
// again is safe; cookies are re-expired and the count is zero.
func (c *Cleaner) ClearAuthArtifacts(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	origins := make([]origin, 0, len(c.origins))
	for _, o := range c.origins {
		origins = append(origins, origin{url: o.url, paths: slices.Clone(o.paths)})
	}
	secrets := c.secrets
	c.secrets = nil
	c.mu.Unlock()

	cleared := 0
	if c.jar != nil {
		for _, o := range origins {
			cleared += c.clearJar(o)
		}
	}

	for _, s := range secrets {
		if s.Destroy() {
			cleared++
		}
	}

	c.events.Record(ctx, securitylog.KindSessionCleared, "authentication artifacts cleared", map[string]any{
		"count":   cleared,
		"origins": len(origins),
	})
	c.logger.DebugContext(ctx, "auth artifacts cleared",
		logger.Count("count", cleared),
		logger.Count("origins", len(origins)))

	return cleared, nil
}

// ExpireResponseCookies writes expiry headers on w for every auth cookie
// present on r, across all domain and path scopes of the request. It returns
// the number of cookies expired.
func (c *Cleaner) ExpireResponseCookies(w http.ResponseWriter, r *http.Request) int {
	names := make([]string, 0)
	for _, ck := range r.Cookies() {
		if c.IsAuthCookie(ck.Name) && !slices.Contains(names, ck.Name) {
			names = append(names, ck.Name)
		}
	}
	if len(names) == 0 {
		return 0
	}

	scopes := cookie.Scopes(r.Host, r.URL.Path, c.extraDomains, c.extraPaths)
	for _, name := range names {
		// name is non-empty, Expire cannot fail.
		_, _ = c.cookies.Expire(w, name, scopes)
	}

	c.events.Record(r.Context(), securitylog.KindSessionCleared, "authentication cookies expired on response", map[string]any{
		"count": len(names),
	})

	return len(names)
}

// clearJar expires the configured names plus any prefixed variants found in
// the jar, under every domain of the origin crossed with every path it was
// requested under. It returns how many auth cookies the jar held for it.
func (c *Cleaner) clearJar(o origin) int {
	scopes := cookie.Scopes(o.url.Host, "/", c.extraDomains, append(slices.Clone(o.paths), c.extraPaths...))

	paths := make([]string, 0)
	for _, s := range scopes {
		if !slices.Contains(paths, s.Path) {
			paths = append(paths, s.Path)
		}
	}

	present := make(map[string]struct{})
	names := slices.Clone(c.authNames)
	for _, p := range paths {
		u := *o.url
		u.Path = p
		for _, ck := range c.jar.Cookies(&u) {
			if !c.IsAuthCookie(ck.Name) {
				continue
			}
			present[ck.Name+"="+ck.Value] = struct{}{}
			if !slices.Contains(names, ck.Name) {
				names = append(names, ck.Name)
			}
		}
	}

	for _, name := range names {
		c.jar.SetCookies(o.url, c.cookies.ExpiredSet(name, scopes))
	}

	return len(present)
}
