package transport

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrymomot/apiguard/pkg/replay"
	"github.com/dmitrymomot/apiguard/pkg/secrets"
)

// DefaultMaxResponseBytes bounds how much of a JSON response is buffered.
const DefaultMaxResponseBytes = 10 << 20

// Config controls the interceptor policy.
type Config struct {
	EncryptionEnabled  bool          `env:"ENCRYPTION_ENABLED" envDefault:"true"`
	EnforceHTTPS       bool          `env:"ENFORCE_HTTPS" envDefault:"true"`
	RequestLogging     bool          `env:"REQUEST_LOGGING" envDefault:"false"`
	EncryptionSecret   string        `env:"ENCRYPTION_SECRET,required"`
	HMACSecret         string        `env:"HMAC_SECRET,required"`
	SensitiveEndpoints []string      `env:"SENSITIVE_ENDPOINTS" envDefault:"payment,profile,billing"`
	PublicEndpoints    []string      `env:"PUBLIC_ENDPOINTS" envDefault:"health,auth/login,auth/register,auth/refresh"`
	KDFIterations      int           `env:"KDF_ITERATIONS" envDefault:"100000"`
	ReplayWindow       time.Duration `env:"REPLAY_WINDOW" envDefault:"5m"`
	ClientVersion      string        `env:"CLIENT_VERSION" envDefault:"1.0.0"`
	StrictEncryption   bool          `env:"STRICT_ENCRYPTION" envDefault:"false"`
	MaxResponseBytes   int64         `env:"MAX_RESPONSE_BYTES" envDefault:"10485760"`
}

// DefaultConfig returns the default policy. Secrets are left empty and must
// be provided.
func DefaultConfig() Config {
	return Config{
		EncryptionEnabled:  true,
		EnforceHTTPS:       true,
		SensitiveEndpoints: []string{"payment", "profile", "billing"},
		PublicEndpoints:    []string{"health", "auth/login", "auth/register", "auth/refresh"},
		KDFIterations:      secrets.DefaultIterations,
		ReplayWindow:       replay.DefaultMaxAge,
		ClientVersion:      "1.0.0",
		MaxResponseBytes:   DefaultMaxResponseBytes,
	}
}

// Validate checks that both secrets are set and limits are positive.
func (c Config) Validate() error {
	if c.EncryptionSecret == "" {
		return fmt.Errorf("%w: encryption secret is empty", ErrInvalidConfig)
	}
	if c.HMACSecret == "" {
		return fmt.Errorf("%w: hmac secret is empty", ErrInvalidConfig)
	}
	if c.KDFIterations <= 0 {
		return fmt.Errorf("%w: kdf iterations must be positive", ErrInvalidConfig)
	}
	if c.ReplayWindow <= 0 {
		return fmt.Errorf("%w: replay window must be positive", ErrInvalidConfig)
	}
	if c.MaxResponseBytes <= 0 || c.MaxResponseBytes >= math.MaxInt64 {
		return fmt.Errorf("%w: max response bytes must be between 1 and %d", ErrInvalidConfig, int64(math.MaxInt64-1))
	}
	return nil
}
