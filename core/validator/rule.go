package validator

import (
	"errors"
	"strings"
)

// ErrValidation is matched by every ValidationError and ValidationErrors.
var ErrValidation = errors.New("validation failed")

// Rule pairs a deferred check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// ValidationError describes one failed rule. TranslationKey and
// TranslationValues let a UI render a localized message.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is reports whether target is ErrValidation.
func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors collects failures from several rules.
type ValidationErrors []ValidationError

// Add appends err.
func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

// IsEmpty reports whether no errors were collected.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Has reports whether any error concerns field.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether target is ErrValidation.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Apply runs rules in order and returns ValidationErrors for every failure,
// or nil.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			errs.Add(r.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// ValidationResult is the outcome of a standalone check such as
// ValidateEmail. It is a value, not an error, so hot paths can branch on
// Valid without allocation.
type ValidationResult struct {
	Valid bool
	Error string
}

// Err converts an invalid result into a ValidationError for field.
func (r ValidationResult) Err(field string) error {
	if r.Valid {
		return nil
	}
	return ValidationError{Field: field, Message: r.Error}
}

func valid() ValidationResult { return ValidationResult{Valid: true} }

func invalid(msg string) ValidationResult { return ValidationResult{Error: msg} }

// resultRule turns an evaluated result into a Rule for field.
func resultRule(field, key string, res ValidationResult) Rule {
	return Rule{
		Check: func() bool { return res.Valid },
		Error: ValidationError{
			Field:          field,
			Message:        res.Error,
			TranslationKey: key,
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
