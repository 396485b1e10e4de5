package validator_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apiguard/core/validator"
)

func TestValidateStruct_BasicFields(t *testing.T) {
	t.Parallel()

	type LoginForm struct {
		Email    string `validate:"required;email"`
		Password string `validate:"required;password"`
		Name     string `validate:"min:2;max:10"`
		NoTag    string
		Skip     string `validate:"-"`
	}

	tests := []struct {
		name      string
		input     LoginForm
		errFields []string
	}{
		{
			name:  "valid data",
			input: LoginForm{Email: "user@example.com", Password: "Sup3rSecret!", Name: "John"},
		},
		{
			name:      "missing required fields",
			input:     LoginForm{Name: "Jo", Skip: "skip this"},
			errFields: []string{"Email", "Password"},
		},
		{
			name:      "invalid email",
			input:     LoginForm{Email: "not-an-email", Password: "Sup3rSecret!", Name: "John"},
			errFields: []string{"Email"},
		},
		{
			name:      "weak password and long name",
			input:     LoginForm{Email: "a@b.co", Password: "password", Name: "Bartholomew"},
			errFields: []string{"Password", "Name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := tt.input
			err := validator.ValidateStruct(&input)
			if len(tt.errFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			for _, field := range tt.errFields {
				assert.True(t, errs.Has(field), "expected error for %s, got %v", field, errs)
			}
		})
	}
}

func TestValidateStruct_NestedAndPointers(t *testing.T) {
	t.Parallel()

	type Credentials struct {
		Email string `validate:"required;email"`
	}

	type Request struct {
		Credentials Credentials
		Backup      *Credentials
		Token       *string `validate:"required"`
	}

	req := Request{
		Credentials: Credentials{Email: "bad"},
		Backup:      &Credentials{Email: ""},
	}

	err := validator.ValidateStruct(&req)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("Credentials.Email"))
	assert.True(t, errs.Has("Backup.Email"))
	assert.True(t, errs.Has("Token"))
}

func TestValidateStruct_InvalidInput(t *testing.T) {
	t.Parallel()

	type S struct{ A string }

	assert.ErrorIs(t, validator.ValidateStruct(S{}), validator.ErrNotStructPointer)
	assert.ErrorIs(t, validator.ValidateStruct((*S)(nil)), validator.ErrNotStructPointer)
}

func TestRegisterValidator(t *testing.T) {
	t.Parallel()

	validator.RegisterValidator("not_admin_test", func(field string, value reflect.Value, _ []string) validator.Rule {
		return validator.Rule{
			Check: func() bool { return value.String() != "admin" },
			Error: validator.ValidationError{Field: field, Message: "reserved"},
		}
	})

	type S struct {
		User string `validate:"not_admin_test;unknown_rule"`
	}

	err := validator.ValidateStruct(&S{User: "admin"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "reserved", errs[0].Message)

	assert.NoError(t, validator.ValidateStruct(&S{User: "alice"}))
}

func TestValidateStruct_JSONNames(t *testing.T) {
	t.Parallel()

	type login struct {
		Email    string `json:"email,omitempty" validate:"email"`
		Password string `json:"-" validate:"required"`
	}

	err := validator.ValidateStruct(&login{Email: "nope"})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("email"))
	assert.True(t, errs.Has("Password"))
	assert.False(t, errs.Has("Email"))
}
