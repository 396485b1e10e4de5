// Package validator checks login input before it reaches authentication.
//
// ValidateEmail and ValidatePassword are pure, total functions returning a
// ValidationResult value; they never panic and are cheap enough for the login
// hot path. Email validation enforces the RFC 5321 length bounds (254 overall,
// 64 local part, 253 domain) and a structural pattern. Password validation
// follows a PasswordPolicy: length bounds in characters plus required
// character classes.
//
//	if res := validator.ValidateEmail(email); !res.Valid {
//		return res.Err("email")
//	}
//
//	policy := validator.DefaultPasswordPolicy()
//	if res := policy.Validate(password); !res.Valid {
//		return res.Err("password")
//	}
//
// # Rules
//
// Rule pairs a check with a ValidationError carrying a field name, message and
// translation key. Apply runs several rules and collects failures:
//
//	err := validator.Apply(
//		validator.RequiredString("email", email),
//		validator.ValidEmail("email", email),
//		validator.ValidPassword("password", password, policy),
//	)
//
// # Struct Tags
//
// ValidateStruct reads `validate` tags with ";" separated rules:
//
//	type LoginForm struct {
//		Email    string `validate:"required;email"`
//		Password string `validate:"required;password"`
//		Name     string `validate:"min:2;max:50"`
//	}
//
// Every error returned by this package matches ErrValidation with errors.Is.
package validator
