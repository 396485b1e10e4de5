// Package cookie computes the scopes an HTTP cookie can live under and writes
// expiry cookies for them.
//
// A browser stores a cookie per (name, domain, path). A cookie named "session"
// set by app.example.com/account may exist host-only, under Domain=example.com,
// under Path=/account, or any combination. Expiring it with a single
// Set-Cookie only removes one of those, so logout code needs every plausible
// combination.
//
// # Scopes
//
//	scopes := cookie.Scopes("app.example.com", "/account/settings", nil, nil)
//	// domains: "", "app.example.com", ".app.example.com", ".example.com"
//	// paths:   "/", "/account", "/account/settings"
//
// Extra domains and paths (for example from configuration) are appended
// after the derived ones.
//
// # Expiry
//
//	manager := cookie.New(cookie.WithSameSite(http.SameSiteStrictMode))
//
//	// One Set-Cookie header per distinct scope
//	n, err := manager.Expire(w, "session", scopes)
//
//	// Expiry cookies for a client-side jar
//	jar.SetCookies(u, manager.ExpiredSet("session", scopes))
//
// Expiry cookies carry an empty value, Max-Age=0 on the wire and an Expires
// date at the Unix epoch.
//
// # Configuration
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg) // COOKIE_PATH, COOKIE_DOMAIN, COOKIE_SECURE, ...
//	manager := cookie.NewFromConfig(cfg)
package cookie
