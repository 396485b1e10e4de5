package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString fails for empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenString fails when value has fewer than minLen characters.
func MinLenString(field, value string, minLen int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= minLen },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d characters long", minLen),
			TranslationKey:    "validation.min_length",
			TranslationValues: map[string]any{"field": field, "min": minLen},
		},
	}
}

// MaxLenString fails when value has more than maxLen characters.
func MaxLenString(field, value string, maxLen int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= maxLen },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d characters long", maxLen),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": maxLen},
		},
	}
}
