// Package codec provides the byte, string and Base64 conversions shared by the
// envelope, signer and limiter packages.
package codec

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidBase64 is returned when a string cannot be decoded by any of the
// supported Base64 alphabets.
var ErrInvalidBase64 = errors.New("codec: invalid base64 input")

// ToBase64 encodes bytes to standard Base64 with padding.
// This is the encoding used on the envelope wire format.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// FromBase64 decodes standard padded Base64.
func FromBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidBase64, err)
	}
	return data, nil
}

// ToBase64URL encodes bytes to URL-safe Base64 without padding.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeBase64 is the lenient decoder: it accepts standard and URL-safe
// alphabets, with or without padding. Surrounding whitespace is ignored.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	for _, enc := range encodings {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, ErrInvalidBase64
}

// StringToBytes returns the UTF-8 bytes of s as a new slice.
func StringToBytes(s string) []byte {
	return []byte(s)
}

// BytesToString returns b as a string. The bytes are copied, so later
// mutation (or zeroing) of b does not affect the result.
func BytesToString(b []byte) string {
	return string(b)
}

// Clone returns a copy of b. A nil input stays nil.
func Clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Zero overwrites b with zeros in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
