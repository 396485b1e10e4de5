package securitylog

import "strings"

// MaskedValue replaces the value of every sensitive detail key.
const MaskedValue = "********"

// sensitiveFragments are matched against keys lower-cased with separators removed.
var sensitiveFragments = []string{
	"password",
	"passwd",
	"passphrase",
	"secret",
	"token",
	"apikey",
	"privatekey",
	"authorization",
	"cookie",
	"signature",
	"credential",
	"session",
	"plaintext",
	"body",
}

// IsSensitiveKey reports whether values stored under key must be masked.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	k = strings.NewReplacer("_", "", "-", "", ".", "", " ", "").Replace(k)
	if k == "" {
		return false
	}
	for _, fragment := range sensitiveFragments {
		if strings.Contains(k, fragment) {
			return true
		}
	}
	return false
}

// Mask returns a deep copy of details with sensitive values replaced by
// MaskedValue. A nil map yields nil.
func Mask(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		if IsSensitiveKey(k) {
			out[k] = MaskedValue
			continue
		}
		out[k] = maskValue(v)
	}
	return out
}

func maskValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Mask(val)
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, s := range val {
			if IsSensitiveKey(k) {
				out[k] = MaskedValue
			} else {
				out[k] = s
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = maskValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Mask(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case []byte:
		// Raw bytes are never useful in a diagnostic and may be key material.
		return MaskedValue
	default:
		return v
	}
}
