// Package session removes authentication artifacts when a user signs out.
//
// A Cleaner knows which cookie names carry authentication state (session,
// access_token, csrf_token and so on) and expires only those, never the rest
// of the jar. Each cookie is expired under every domain and path scope it
// could have been set with, see cookie.Scopes.
//
// # Client side
//
//	jar, _ := cookiejar.New(nil)
//	cleaner, err := session.NewCleaner(session.DefaultConfig(),
//		session.WithJar(jar, apiURL),
//	)
//
//	// on logout
//	n, err := cleaner.ClearAuthArtifacts(ctx)
//
// ClearAuthArtifacts also destroys every Secret registered with TrackSecret
// and records a session_cleared event with the number of artifacts removed.
// It is idempotent.
//
// # Server side
//
//	func logout(w http.ResponseWriter, r *http.Request) {
//		cleaner.ExpireResponseCookies(w, r)
//	}
//
// # Secrets
//
// Secret keeps password input in memguard locked memory:
//
//	pw := session.NewSecret(passwordBytes) // passwordBytes is wiped
//	cleaner.TrackSecret(pw)
//	defer cleaner.Release(pw)
//
//	err := pw.Use(func(b []byte) error {
//		return verify(b)
//	})
//
// Formatting a Secret with fmt or slog prints a fixed mask.
package session
