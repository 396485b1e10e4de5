package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length bounds from RFC 5321.
const (
	MaxEmailLength     = 254
	MaxLocalPartLength = 64
	MaxDomainLength    = 253
)

var (
	localPartRegex = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(\.[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*$`)
	domainRegex    = regexp.MustCompile(`^([A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,63}$`)
)

// ValidateEmail checks length bounds and structure. It is total: every input
// yields a result and nothing panics.
func ValidateEmail(email string) ValidationResult {
	if email == "" {
		return invalid("email is required")
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return invalid("email is too long")
	}

	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return invalid("email format is invalid")
	}

	local, domain := email[:at], email[at+1:]
	if len(local) > MaxLocalPartLength {
		return invalid("email local part is too long")
	}
	if len(domain) > MaxDomainLength {
		return invalid("email domain is too long")
	}
	if !localPartRegex.MatchString(local) || !domainRegex.MatchString(domain) {
		return invalid("email format is invalid")
	}

	return valid()
}

// ValidEmail returns a Rule checking value with ValidateEmail.
func ValidEmail(field, value string) Rule {
	return resultRule(field, "validation.email", ValidateEmail(value))
}
