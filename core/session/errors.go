package session

import "errors"

var (
	// ErrSecretDestroyed is returned when reading a Secret after Destroy.
	ErrSecretDestroyed = errors.New("secret has been destroyed")
	// ErrNoAuthCookies is returned by NewCleaner when the auth cookie list is empty.
	ErrNoAuthCookies = errors.New("no auth cookie names configured")
)
