package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PasswordPolicy describes the password requirements. The application config
// nests it under PASSWORD_.
type PasswordPolicy struct {
	MinLength      int  `env:"MIN_LENGTH" envDefault:"8"`
	MaxLength      int  `env:"MAX_LENGTH" envDefault:"128"`
	RequireUpper   bool `env:"REQUIRE_UPPER" envDefault:"true"`
	RequireLower   bool `env:"REQUIRE_LOWER" envDefault:"true"`
	RequireDigit   bool `env:"REQUIRE_DIGIT" envDefault:"true"`
	RequireSpecial bool `env:"REQUIRE_SPECIAL" envDefault:"true"`
}

// DefaultPasswordPolicy requires 8 to 128 characters with upper and lower
// case letters, a digit and a special character.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:      8,
		MaxLength:      128,
		RequireUpper:   true,
		RequireLower:   true,
		RequireDigit:   true,
		RequireSpecial: true,
	}
}

// Validate checks password against the policy. Lengths are counted in
// characters, not bytes.
func (p PasswordPolicy) Validate(password string) ValidationResult {
	if password == "" {
		return invalid("password is required")
	}

	n := utf8.RuneCountInString(password)
	if p.MinLength > 0 && n < p.MinLength {
		return invalid(fmt.Sprintf("password must be at least %d characters", p.MinLength))
	}
	if p.MaxLength > 0 && n > p.MaxLength {
		return invalid(fmt.Sprintf("password must be at most %d characters", p.MaxLength))
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || r == ' ':
			special = true
		}
	}

	var missing []string
	if p.RequireUpper && !upper {
		missing = append(missing, "an uppercase letter")
	}
	if p.RequireLower && !lower {
		missing = append(missing, "a lowercase letter")
	}
	if p.RequireDigit && !digit {
		missing = append(missing, "a digit")
	}
	if p.RequireSpecial && !special {
		missing = append(missing, "a special character")
	}
	if len(missing) > 0 {
		return invalid("password must contain " + strings.Join(missing, ", "))
	}

	return valid()
}

// ValidatePassword checks password against DefaultPasswordPolicy.
func ValidatePassword(password string) ValidationResult {
	return DefaultPasswordPolicy().Validate(password)
}

// ValidPassword returns a Rule checking value against policy.
func ValidPassword(field, value string, policy PasswordPolicy) Rule {
	return resultRule(field, "validation.password", policy.Validate(value))
}
