package apiguard_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apiguard"
	"github.com/dmitrymomot/apiguard/core/config"
)

func TestLoadConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("SECURITY_ENCRYPTION_SECRET", "env-encryption-secret")
	t.Setenv("SECURITY_HMAC_SECRET", "env-hmac-secret")
	t.Setenv("SECURITY_SENSITIVE_ENDPOINTS", "payment,wallet")
	t.Setenv("SECURITY_STRICT_ENCRYPTION", "true")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "4")
	t.Setenv("LOGIN_BLOCK_DURATION", "30m")
	t.Setenv("LOGIN_MIN_DURATION", "250ms")
	t.Setenv("SESSION_AUTH_COOKIES", "sid,jwt")
	t.Setenv("SESSION_COOKIE_DOMAINS", "example.com")
	t.Setenv("PASSWORD_MIN_LENGTH", "12")
	t.Setenv("SECURITY_LOG_CAPACITY", "50")
	t.Setenv("COOKIE_SAME_SITE", "Strict")

	cfg, err := apiguard.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-encryption-secret", cfg.Transport.EncryptionSecret)
	assert.Equal(t, "env-hmac-secret", cfg.Transport.HMACSecret)
	assert.Equal(t, []string{"payment", "wallet"}, cfg.Transport.SensitiveEndpoints)
	assert.Equal(t, []string{"health", "auth/login", "auth/register", "auth/refresh"}, cfg.Transport.PublicEndpoints)
	assert.True(t, cfg.Transport.EncryptionEnabled)
	assert.True(t, cfg.Transport.StrictEncryption)
	assert.Equal(t, 5*time.Minute, cfg.Transport.ReplayWindow)

	assert.Equal(t, 4, cfg.Login.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Login.Window)
	assert.Equal(t, 30*time.Minute, cfg.Login.BlockDuration)
	assert.Equal(t, 250*time.Millisecond, cfg.MinLoginDuration)

	assert.Equal(t, []string{"sid", "jwt"}, cfg.Session.AuthCookies)
	assert.Equal(t, []string{"example.com"}, cfg.Session.CookieDomains)

	assert.Equal(t, 12, cfg.Password.MinLength)
	assert.True(t, cfg.Password.RequireSpecial)
	assert.Equal(t, 50, cfg.SecurityLog.Capacity)

	assert.Equal(t, "/", cfg.Cookie.Path)
	assert.Equal(t, http.SameSiteStrictMode, cfg.Cookie.SameSite.Mode())

	g, err := apiguard.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 50, g.SecurityLog().Capacity())
	assert.True(t, g.Cleaner().IsAuthCookie("__Host-SID"))
}

func TestLoadConfig_MissingSecrets(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	// t.Setenv restores the previous values; the variables must be unset, not
	// empty, for the required check to fire.
	for _, key := range []string{"SECURITY_ENCRYPTION_SECRET", "SECURITY_HMAC_SECRET"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := apiguard.LoadConfig()
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := apiguard.DefaultConfig()
	assert.Empty(t, cfg.Transport.EncryptionSecret)
	assert.Equal(t, 5, cfg.Login.MaxAttempts)
	assert.Zero(t, cfg.MinLoginDuration)
	assert.Contains(t, cfg.Session.AuthCookies, "refresh_token")
	assert.Equal(t, 8, cfg.Password.MinLength)
	assert.Equal(t, 1000, cfg.SecurityLog.Capacity)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cfg.Cookie.SameSite.Mode())
}
