package cookie

import "net/http"

// Attributes are written on every expiry cookie. A browser only replaces a
// stored cookie when name, domain and path match, but it refuses the
// replacement outright when the attributes are unacceptable (SameSite=None
// without Secure, a partitioned cookie without Partitioned), so they are
// part of the match in practice.
type Attributes struct {
	Path        string
	Domain      string
	Secure      bool
	HttpOnly    bool
	SameSite    http.SameSite
	Partitioned bool
}

// Option adjusts Attributes.
type Option func(*Attributes)

// WithPath sets the fallback path used when a scope has none.
func WithPath(path string) Option {
	return func(a *Attributes) {
		a.Path = path
	}
}

// WithDomain sets the domain used by Delete.
func WithDomain(domain string) Option {
	return func(a *Attributes) {
		a.Domain = domain
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(a *Attributes) {
		a.Secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(a *Attributes) {
		a.HttpOnly = httpOnly
	}
}

// WithSameSite sets SameSite. SameSite=None implies Secure.
func WithSameSite(sameSite http.SameSite) Option {
	return func(a *Attributes) {
		a.SameSite = sameSite
	}
}

// WithPartitioned marks expiry cookies as partitioned (CHIPS), which is
// needed to remove cookies that were stored partitioned. Implies Secure.
func WithPartitioned(partitioned bool) Option {
	return func(a *Attributes) {
		a.Partitioned = partitioned
	}
}

// applyOptions copies base, applies opts and then enforces the attribute
// combinations browsers require.
func applyOptions(base Attributes, opts []Option) Attributes {
	a := base
	for _, opt := range opts {
		opt(&a)
	}
	if a.SameSite == http.SameSiteNoneMode || a.Partitioned {
		a.Secure = true
	}
	return a
}
