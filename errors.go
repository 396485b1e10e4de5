package apiguard

import (
	"errors"

	"github.com/dmitrymomot/apiguard/core/validator"
)

var (
	// ErrValidation is matched by credential validation failures returned from
	// Login. It is the same value as validator.ErrValidation.
	ErrValidation = validator.ErrValidation

	ErrNilAuthenticator = errors.New("authenticator is nil")
)
