// Package sanitizer normalizes untrusted input before validation.
//
// SanitizeInput is the general-purpose gate for free-form fields: it applies
// Unicode NFC normalization, removes null bytes and control characters, strips
// script elements, inline event handler tags and script URI schemes, and trims
// the result. NormalizeEmail produces the canonical lower-case form used as a
// lookup and rate-limit key. SanitizePassword removes only characters that can
// never be typed into a password field.
//
//	name := sanitizer.SanitizeInput("<script>alert(1)</script>John") // "John"
//	email := sanitizer.NormalizeEmail("  Alice@Example.COM ")        // "alice@example.com"
//
// # Struct Tags
//
// SanitizeStruct applies comma-separated sanitizers named in `sanitize` tags:
//
//	type LoginForm struct {
//		Email    string `sanitize:"email"`
//		Password string `sanitize:"password"`
//		Note     string `sanitize:"user_input,single_line,max:200"`
//	}
//
//	if err := sanitizer.SanitizeStruct(&form); err != nil {
//		return err
//	}
//
// Custom sanitizers can be added with RegisterSanitizer. Sanitization is not
// escaping: output that is rendered as HTML still needs context-aware escaping.
package sanitizer
