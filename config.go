package apiguard

import (
	"time"

	"github.com/dmitrymomot/apiguard/core/config"
	"github.com/dmitrymomot/apiguard/core/cookie"
	"github.com/dmitrymomot/apiguard/core/securitylog"
	"github.com/dmitrymomot/apiguard/core/session"
	"github.com/dmitrymomot/apiguard/core/transport"
	"github.com/dmitrymomot/apiguard/core/validator"
	"github.com/dmitrymomot/apiguard/pkg/ratelimiter"
)

// Config aggregates the settings of every component a Guard builds.
//
// Environment variables:
//
//	SECURITY_*      transport policy and secrets (SECURITY_ENCRYPTION_SECRET and
//	                SECURITY_HMAC_SECRET are required)
//	LOGIN_*         attempt limiter and LOGIN_MIN_DURATION padding
//	SESSION_*       auth cookie names and extra cookie scopes
//	PASSWORD_*      password policy
//	SECURITY_LOG_*  event log capacity
//	COOKIE_*        attributes of expiry cookies
type Config struct {
	Transport        transport.Config         `envPrefix:"SECURITY_"`
	Login            ratelimiter.Config       `envPrefix:"LOGIN_"`
	MinLoginDuration time.Duration            `env:"LOGIN_MIN_DURATION" envDefault:"0s"`
	Session          session.Config           `envPrefix:"SESSION_"`
	Password         validator.PasswordPolicy `envPrefix:"PASSWORD_"`
	SecurityLog      securitylog.Config       `envPrefix:"SECURITY_LOG_"`
	Cookie           cookie.Config
}

// DefaultConfig returns the defaults of every component. The transport
// secrets are empty and must be set before calling New.
func DefaultConfig() Config {
	return Config{
		Transport:   transport.DefaultConfig(),
		Login:       ratelimiter.DefaultConfig(),
		Session:     session.DefaultConfig(),
		Password:    validator.DefaultPasswordPolicy(),
		SecurityLog: securitylog.Config{Capacity: securitylog.DefaultCapacity},
		Cookie:      cookie.DefaultConfig(),
	}
}

// LoadConfig reads Config from the environment (and a .env file, if present).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
