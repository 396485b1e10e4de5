package session

// Config lists the cookies treated as authentication artifacts and any
// cookie scopes beyond the ones derived from the request origin.
type Config struct {
	AuthCookies   []string `env:"AUTH_COOKIES" envDefault:"session,session_id,auth_token,access_token,refresh_token,remember_me,csrf_token"`
	CookieDomains []string `env:"COOKIE_DOMAINS"`
	CookiePaths   []string `env:"COOKIE_PATHS"`
}

// DefaultConfig returns the default auth cookie list with no extra scopes.
func DefaultConfig() Config {
	return Config{
		AuthCookies: []string{
			"session",
			"session_id",
			"auth_token",
			"access_token",
			"refresh_token",
			"remember_me",
			"csrf_token",
		},
	}
}
