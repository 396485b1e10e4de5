package cookie

import "errors"

var (
	// ErrCookieNotFound indicates the requested cookie doesn't exist in the request.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrInvalidName indicates an empty cookie name.
	ErrInvalidName = errors.New("cookie name must not be empty")

	// ErrInvalidSameSite indicates a SameSite value that is neither a known
	// name nor an http.SameSite number.
	ErrInvalidSameSite = errors.New("invalid SameSite value")
)
