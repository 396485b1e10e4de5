package session_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apiguard/core/securitylog"
	"github.com/dmitrymomot/apiguard/core/session"
)

func cookieNames(cookies []*http.Cookie) []string {
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	slices.Sort(names)
	return names
}

func seededJar(t *testing.T) (*cookiejar.Jar, *url.URL) {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	origin, err := url.Parse("https://app.example.com/account/settings")
	require.NoError(t, err)

	jar.SetCookies(origin, []*http.Cookie{
		{Name: "session", Value: "s1", Path: "/"},
		{Name: "auth_token", Value: "t1", Domain: "example.com", Path: "/"},
		{Name: "refresh_token", Value: "r1", Path: "/account"},
		{Name: "__Host-csrf_token", Value: "c1", Path: "/", Secure: true},
		{Name: "theme", Value: "dark", Path: "/"},
		{Name: "analytics", Value: "a1", Domain: "example.com", Path: "/"},
	})
	require.Len(t, jar.Cookies(origin), 6)

	return jar, origin
}

func TestNewCleaner(t *testing.T) {
	t.Parallel()

	_, err := session.NewCleaner(session.Config{AuthCookies: []string{" ", ""}})
	assert.ErrorIs(t, err, session.ErrNoAuthCookies)

	c, err := session.NewCleaner(session.DefaultConfig())
	require.NoError(t, err)

	assert.True(t, c.IsAuthCookie("session"))
	assert.True(t, c.IsAuthCookie("Access_Token"))
	assert.True(t, c.IsAuthCookie("__Host-session"))
	assert.True(t, c.IsAuthCookie("__Secure-refresh_token"))
	assert.False(t, c.IsAuthCookie("theme"))
	assert.False(t, c.IsAuthCookie("session_theme"))
}

func TestCleaner_ClearAuthArtifacts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	jar, origin := seededJar(t)
	events := securitylog.New()

	cleaner, err := session.NewCleaner(session.DefaultConfig(),
		session.WithJar(jar, origin),
		session.WithSecurityLog(events))
	require.NoError(t, err)

	pw := session.NewSecretString("hunter2")
	cleaner.TrackSecret(pw)

	n, err := cleaner.ClearAuthArtifacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "four auth cookies and one secret")

	assert.Equal(t, []string{"analytics", "theme"}, cookieNames(jar.Cookies(origin)))
	assert.False(t, pw.Alive())

	entries := events.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, securitylog.KindSessionCleared, entries[0].Kind)
	assert.Equal(t, 5, entries[0].Details["count"])
	for _, v := range []string{"s1", "t1", "r1", "c1", "hunter2"} {
		assert.NotContains(t, entries[0].Message, v)
	}

	t.Run("second call is a no-op", func(t *testing.T) {
		n, err := cleaner.ClearAuthArtifacts(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, []string{"analytics", "theme"}, cookieNames(jar.Cookies(origin)))
	})
}

func TestCleaner_TrackOrigin(t *testing.T) {
	t.Parallel()

	jar, origin := seededJar(t)
	cleaner, err := session.NewCleaner(session.DefaultConfig(),
		session.WithJar(jar),
		session.WithSecurityLog(securitylog.New()))
	require.NoError(t, err)

	n, err := cleaner.ClearAuthArtifacts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "no origin tracked yet")
	assert.Len(t, jar.Cookies(origin), 6)

	cleaner.TrackOrigin(origin)
	cleaner.TrackOrigin(origin)

	n, err = cleaner.ClearAuthArtifacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"analytics", "theme"}, cookieNames(jar.Cookies(origin)))
}

func TestCleaner_ExtraPaths(t *testing.T) {
	t.Parallel()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	origin, _ := url.Parse("https://example.com/")
	api, _ := url.Parse("https://example.com/api/v1")
	jar.SetCookies(api, []*http.Cookie{{Name: "access_token", Value: "x", Path: "/api"}})

	cfg := session.DefaultConfig()
	cfg.CookiePaths = []string{"/api"}
	cleaner, err := session.NewCleaner(cfg,
		session.WithJar(jar, origin),
		session.WithSecurityLog(securitylog.New()))
	require.NoError(t, err)

	n, err := cleaner.ClearAuthArtifacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, jar.Cookies(api))
}

func TestCleaner_DefaultPathFromLaterRequest(t *testing.T) {
	t.Parallel()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	health, _ := url.Parse("https://api.example.com/health")
	login, _ := url.Parse("https://api.example.com/auth/login")
	profile, _ := url.Parse("https://api.example.com/users/me/profile")

	// no Path attribute: stored under the request directory, /auth
	jar.SetCookies(login, []*http.Cookie{{Name: "session", Value: "abc"}})
	jar.SetCookies(profile, []*http.Cookie{{Name: "refresh_token", Value: "r1", Path: "/users/me"}})
	require.Len(t, jar.Cookies(login), 1)

	cleaner, err := session.NewCleaner(session.DefaultConfig(),
		session.WithJar(jar),
		session.WithSecurityLog(securitylog.New()))
	require.NoError(t, err)

	// the first request to the host did not share the cookie path
	cleaner.TrackOrigin(health)
	cleaner.TrackOrigin(login)
	cleaner.TrackOrigin(profile)

	n, err := cleaner.ClearAuthArtifacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, jar.Cookies(login))
	assert.Empty(t, jar.Cookies(profile))
}

func TestCleaner_CancelledContext(t *testing.T) {
	t.Parallel()

	cleaner, err := session.NewCleaner(session.DefaultConfig(), session.WithSecurityLog(securitylog.New()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = cleaner.ClearAuthArtifacts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleaner_ExpireResponseCookies(t *testing.T) {
	t.Parallel()

	events := securitylog.New()
	cleaner, err := session.NewCleaner(session.DefaultConfig(), session.WithSecurityLog(events))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "https://app.example.com/account/logout", nil)
	r.AddCookie(&http.Cookie{Name: "session", Value: "s1"})
	r.AddCookie(&http.Cookie{Name: "__Secure-auth_token", Value: "t1"})
	r.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	w := httptest.NewRecorder()

	n := cleaner.ExpireResponseCookies(w, r)
	assert.Equal(t, 2, n)

	headers := w.Header().Values("Set-Cookie")
	// 3 distinct domain serializations x 3 paths, per cookie
	assert.Len(t, headers, 2*3*3)
	for _, h := range headers {
		assert.True(t, strings.HasPrefix(h, "session=;") || strings.HasPrefix(h, "__Secure-auth_token=;"), h)
		assert.Contains(t, h, "Max-Age=0")
		assert.NotContains(t, h, "s1")
		assert.NotContains(t, h, "t1")
	}

	require.Equal(t, 1, events.Len())
	assert.Equal(t, 2, events.Entries()[0].Details["count"])

	t.Run("no auth cookies", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/logout", nil)
		r.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
		w := httptest.NewRecorder()

		assert.Zero(t, cleaner.ExpireResponseCookies(w, r))
		assert.Empty(t, w.Header().Values("Set-Cookie"))
	})
}

func TestCleaner_ConcurrentTracking(t *testing.T) {
	t.Parallel()

	cleaner, err := session.NewCleaner(session.DefaultConfig(), session.WithSecurityLog(securitylog.New()))
	require.NoError(t, err)

	const workers = 20
	secrets := make([]*session.Secret, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := session.NewSecretString("pw")
			secrets[i] = s
			cleaner.TrackSecret(s)
		}()
	}
	wg.Wait()

	cleaner.Release(secrets[0])

	n, err := cleaner.ClearAuthArtifacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workers-1, n)
	for _, s := range secrets {
		assert.False(t, s.Alive())
	}
}
