package ratelimiter

import (
	"fmt"
	"time"
)

// Config holds login limiter settings.
// Environment variables are read without a prefix here; the application
// config nests it under LOGIN_.
type Config struct {
	MaxAttempts     int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	Window          time.Duration `env:"WINDOW" envDefault:"15m"`
	BlockDuration   time.Duration `env:"BLOCK_DURATION" envDefault:"15m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the defaults: 5 attempts per 15 minute window and a
// 15 minute block.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     5,
		Window:          15 * time.Minute,
		BlockDuration:   15 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Validate checks that the limiter can operate with c.
func (c Config) Validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidConfig, c.Window)
	}
	if c.BlockDuration <= 0 {
		return fmt.Errorf("%w: block duration must be positive, got %s", ErrInvalidConfig, c.BlockDuration)
	}
	return nil
}
