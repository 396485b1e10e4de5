package cookie

import "net/http"

// Config is read from COOKIE_* variables and sets the attributes of expiry
// cookies. They should mirror how the server issues its auth cookies.
type Config struct {
	Path        string   `env:"COOKIE_PATH" envDefault:"/"`
	Domain      string   `env:"COOKIE_DOMAIN"`
	Secure      bool     `env:"COOKIE_SECURE" envDefault:"true"`
	HttpOnly    bool     `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite    SameSite `env:"COOKIE_SAME_SITE" envDefault:"Lax"`
	Partitioned bool     `env:"COOKIE_PARTITIONED" envDefault:"false"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: SameSite(http.SameSiteLaxMode),
	}
}

// NewFromConfig builds a Manager from cfg. Empty Path and zero SameSite keep
// the Manager defaults; opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	all := []Option{
		WithDomain(cfg.Domain),
		WithSecure(cfg.Secure),
		WithHTTPOnly(cfg.HttpOnly),
		WithPartitioned(cfg.Partitioned),
	}
	if cfg.Path != "" {
		all = append(all, WithPath(cfg.Path))
	}
	if cfg.SameSite != 0 {
		all = append(all, WithSameSite(cfg.SameSite.Mode()))
	}
	return New(append(all, opts...)...)
}
