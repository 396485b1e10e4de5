package signature

import "errors"

var (
	// ErrEmptySecret is returned by New when the HMAC secret is empty.
	ErrEmptySecret = errors.New("signature: secret cannot be empty")

	// ErrSignatureInvalid marks a payload whose signature does not match its
	// metadata. Verify itself returns a bool; callers wrap this when they need
	// an error value.
	ErrSignatureInvalid = errors.New("signature: invalid signature")

	// ErrNilPayload is returned when signing a nil payload.
	ErrNilPayload = errors.New("signature: payload is nil")
)
