package sanitizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Whole script/style elements, content included. (?s) lets . span lines.
	scriptBlockRegex = regexp.MustCompile(`(?is)<\s*(script|style)\b[^>]*>.*?<\s*/\s*(script|style)\s*>`)
	// Unterminated or stray opening/closing script tags.
	scriptTagRegex = regexp.MustCompile(`(?i)<\s*/?\s*script\b[^>]*>?`)
	// Any tag carrying an inline event handler (onclick=, onerror=, ...).
	eventHandlerTagRegex = regexp.MustCompile(`(?i)<[^>]*\son[a-z]+\s*=[^>]*>`)
	// javascript:, vbscript: and data:text/html URIs.
	dangerousSchemeRegex = regexp.MustCompile(`(?i)(javascript|vbscript)\s*:|data\s*:\s*text/html`)
)

// RemoveNullBytes strips NUL characters.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// StripScripts removes script and style elements with their content, tags
// with inline event handlers and script URI schemes. Visible text around them
// is kept.
func StripScripts(s string) string {
	s = scriptBlockRegex.ReplaceAllString(s, "")
	s = scriptTagRegex.ReplaceAllString(s, "")
	s = eventHandlerTagRegex.ReplaceAllString(s, "")
	return dangerousSchemeRegex.ReplaceAllString(s, "")
}

// SanitizeInput prepares free-form user input: NFC normalization, then null
// bytes, control characters and script patterns removed, then trimmed.
//
//	SanitizeInput("<script>alert(1)</script>John") // "John"
func SanitizeInput(s string) string {
	s = norm.NFC.String(s)
	s = RemoveNullBytes(s)
	s = RemoveControlChars(s)
	s = StripScripts(s)
	return strings.TrimSpace(s)
}

// NormalizeEmail returns the canonical form of an email address for lookups
// and rate-limit keys: NFC normalized, control characters removed, trimmed
// and lower-cased. It does not validate.
func NormalizeEmail(s string) string {
	s = norm.NFC.String(s)
	s = RemoveAllControlChars(s)
	return strings.ToLower(strings.TrimSpace(s))
}

// SanitizePassword removes only what can never be part of a password typed
// into a form: null bytes and control characters. Whitespace and symbols are
// significant and kept as-is.
func SanitizePassword(s string) string {
	return RemoveAllControlChars(RemoveNullBytes(s))
}
