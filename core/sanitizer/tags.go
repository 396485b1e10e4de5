package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":          Trim,
		"lower":         ToLower,
		"trim_lower":    TrimToLower,
		"single_line":   SingleLine,
		"no_spaces":     RemoveExtraWhitespace,
		"strip_html":    StripHTML,
		"strip_scripts": StripScripts,
		"no_null":       RemoveNullBytes,
		"no_control":    RemoveControlChars,
		"user_input":    SanitizeInput,
		"email":         NormalizeEmail,
		"password":      SanitizePassword,
	}
)

// ErrNotStructPointer is returned by SanitizeStruct for anything other than a
// pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: must pass a pointer to struct")

// RegisterSanitizer adds a custom sanitizer function to the registry.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct rewrites string fields according to their `sanitize` tags,
// e.g. `sanitize:"user_input,max:100"`. Sanitizers run left to right; unknown
// names are skipped. Nested structs are always visited.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	sanitizeStruct(rv.Elem())
	return nil
}

func sanitizeStruct(rv reflect.Value) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				continue
			}
			field = field.Elem()
		}

		switch field.Kind() {
		case reflect.String:
			if tag != "" {
				field.SetString(apply(field.String(), tag))
			}
		case reflect.Struct:
			sanitizeStruct(field)
		case reflect.Slice:
			if tag != "" && field.Type().Elem().Kind() == reflect.String {
				for j := range field.Len() {
					elem := field.Index(j)
					elem.SetString(apply(elem.String(), tag))
				}
			}
		}
	}
}

func apply(value, tag string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)

		if limit, ok := strings.CutPrefix(name, "max:"); ok {
			if n, err := strconv.Atoi(limit); err == nil && n > 0 {
				value = MaxLength(value, n)
			}
			continue
		}

		if fn, ok := registry[name]; ok {
			value = fn(value)
		}
	}

	return value
}
