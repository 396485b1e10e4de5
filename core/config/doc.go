// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/apiguard/core/config"
//
//	type SecurityConfig struct {
//		EncryptionEnabled bool   `env:"SECURITY_ENCRYPTION_ENABLED" envDefault:"true"`
//		EncryptionSecret  string `env:"SECURITY_ENCRYPTION_SECRET,required"`
//		HMACSecret        string `env:"SECURITY_HMAC_SECRET,required"`
//	}
//
//	func main() {
//		var sec SecurityConfig
//
//		// Load with error handling
//		if err := config.Load(&sec); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&sec)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 SecurityConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 SecurityConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type LoginConfig struct {
//		MaxAttempts int `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&SecurityConfig{})
//	config.MustLoad(&LoginConfig{})
//
// Call Reset in tests that change the environment between loads.
package config
