package cookie

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// SameSite is an http.SameSite read from configuration. It accepts the
// attribute names (Lax, Strict, None, Default, case-insensitive) as well as
// the numeric http.SameSite values.
type SameSite http.SameSite

// Mode returns the http.SameSite value.
func (s SameSite) Mode() http.SameSite {
	return http.SameSite(s)
}

func (s SameSite) String() string {
	switch http.SameSite(s) {
	case http.SameSiteDefaultMode:
		return "Default"
	case http.SameSiteLaxMode:
		return "Lax"
	case http.SameSiteStrictMode:
		return "Strict"
	case http.SameSiteNoneMode:
		return "None"
	}
	return strconv.Itoa(int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SameSite) UnmarshalText(text []byte) error {
	v, err := ParseSameSite(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s SameSite) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSameSite parses a SameSite name or number. An empty string is 0,
// which leaves the Manager default in place.
func ParseSameSite(value string) (SameSite, error) {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "":
		return 0, nil
	case "default":
		return SameSite(http.SameSiteDefaultMode), nil
	case "lax":
		return SameSite(http.SameSiteLaxMode), nil
	case "strict":
		return SameSite(http.SameSiteStrictMode), nil
	case "none":
		return SameSite(http.SameSiteNoneMode), nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < int(http.SameSiteDefaultMode) || n > int(http.SameSiteNoneMode) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSameSite, value)
	}
	return SameSite(n), nil
}
