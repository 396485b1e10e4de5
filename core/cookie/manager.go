package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Manager writes expiry cookies with consistent attributes.
type Manager struct {
	defaults Attributes
}

// New creates a Manager. Defaults are Path "/", Secure, HttpOnly and
// SameSite=Lax.
func New(opts ...Option) *Manager {
	defaults := Attributes{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Defaults returns the attributes applied to every written cookie.
func (m *Manager) Defaults() Attributes {
	return m.defaults
}

// Get retrieves a cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete expires a cookie under the default path and domain.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.Expired(name, Scope{Domain: m.defaults.Domain, Path: m.defaults.Path}))
}

// Expire writes an expiry Set-Cookie header for name under each scope and
// returns how many headers were written. Scopes that serialize identically
// (".example.com" and "example.com") are written once.
func (m *Manager) Expire(w http.ResponseWriter, name string, scopes []Scope) (int, error) {
	if name == "" {
		return 0, ErrInvalidName
	}

	seen := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		c := m.Expired(name, s)
		v := c.String()
		if _, dup := seen[v]; dup || v == "" {
			continue
		}
		seen[v] = struct{}{}
		w.Header().Add("Set-Cookie", v)
	}
	return len(seen), nil
}

// Expired returns a cookie that, once stored, removes name under scope.
func (m *Manager) Expired(name string, scope Scope) *http.Cookie {
	path := scope.Path
	if path == "" {
		path = "/"
	}

	return &http.Cookie{
		Name:        name,
		Value:       "",
		Path:        path,
		Domain:      scope.Domain,
		MaxAge:      -1,
		Expires:     time.Unix(0, 0),
		Secure:      m.defaults.Secure,
		HttpOnly:    m.defaults.HttpOnly,
		SameSite:    m.defaults.SameSite,
		Partitioned: m.defaults.Partitioned,
	}
}

// ExpiredSet returns expiry cookies for name under every scope.
func (m *Manager) ExpiredSet(name string, scopes []Scope) []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(scopes))
	for _, s := range scopes {
		cookies = append(cookies, m.Expired(name, s))
	}
	return cookies
}
