package logger

import (
	"log/slog"
	"net/url"
	"time"
)

// Attribute helpers return an empty Attr for zero inputs, so call sites can
// pass them unconditionally: log.Warn("msg", logger.Error(err)).

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// CorrelationID creates an attribute for per-request correlation IDs.
func CorrelationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("correlation_id", id)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// URL creates an attribute holding a sanitized URL: scheme, host and path only.
// Query strings, fragments and user info are dropped since they routinely carry
// tokens.
func URL(u *url.URL) slog.Attr {
	if u == nil {
		return slog.Attr{}
	}
	return slog.String("url", SanitizeURL(u))
}

// SanitizeURL renders u without user info, query or fragment.
func SanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return clean.String()
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status_code", code)
}

// Identifier creates an attribute for a hashed identifier. Never pass raw
// emails or usernames here.
func Identifier(hash string) slog.Attr {
	if hash == "" {
		return slog.Attr{}
	}
	return slog.String("identifier", hash)
}

// Kind creates an attribute for a security event kind.
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Action creates an attribute for action names.
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Result creates an attribute for operation results (success/failure/blocked).
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
