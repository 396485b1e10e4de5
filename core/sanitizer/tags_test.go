package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apiguard/core/sanitizer"
)

func TestSanitizeStruct_BasicFields(t *testing.T) {
	t.Parallel()

	type LoginForm struct {
		Email    string `sanitize:"email"`
		Password string `sanitize:"password"`
		Name     string `sanitize:"user_input,max:5"`
		NoTag    string
		Skip     string `sanitize:"-"`
	}

	form := LoginForm{
		Email:    "  USER@EXAMPLE.COM  ",
		Password: " p@ss\x00 ",
		Name:     "<script>x</script>Johnathan",
		NoTag:    "  not sanitized  ",
		Skip:     "  skip this  ",
	}

	require.NoError(t, sanitizer.SanitizeStruct(&form))
	assert.Equal(t, "user@example.com", form.Email)
	assert.Equal(t, " p@ss ", form.Password)
	assert.Equal(t, "Johna", form.Name)
	assert.Equal(t, "  not sanitized  ", form.NoTag)
	assert.Equal(t, "  skip this  ", form.Skip)
}

func TestSanitizeStruct_NestedAndPointers(t *testing.T) {
	t.Parallel()

	type Profile struct {
		Bio string `sanitize:"user_input,single_line"`
	}

	type Account struct {
		Email   *string `sanitize:"email"`
		Profile Profile
		Extra   *Profile
		Tags    []string `sanitize:"trim_lower"`
		Missing *string  `sanitize:"trim"`
	}

	email := " Bob@Example.com "
	acc := Account{
		Email:   &email,
		Profile: Profile{Bio: "hello\n<script>bad()</script>world"},
		Extra:   &Profile{Bio: "  a\n b  "},
		Tags:    []string{" Go ", "RUST"},
	}

	require.NoError(t, sanitizer.SanitizeStruct(&acc))
	assert.Equal(t, "bob@example.com", email)
	assert.Equal(t, "hello world", acc.Profile.Bio)
	assert.Equal(t, "a b", acc.Extra.Bio)
	assert.Equal(t, []string{"go", "rust"}, acc.Tags)
	assert.Nil(t, acc.Missing)
}

func TestSanitizeStruct_InvalidInput(t *testing.T) {
	t.Parallel()

	type S struct{ A string }

	assert.ErrorIs(t, sanitizer.SanitizeStruct(S{}), sanitizer.ErrNotStructPointer)
	assert.ErrorIs(t, sanitizer.SanitizeStruct(new(string)), sanitizer.ErrNotStructPointer)
	assert.ErrorIs(t, sanitizer.SanitizeStruct((*S)(nil)), sanitizer.ErrNotStructPointer)
}

func TestRegisterSanitizer(t *testing.T) {
	t.Parallel()

	sanitizer.RegisterSanitizer("shout_test", strings.ToUpper)

	type S struct {
		A string `sanitize:"trim,shout_test,unknown"`
	}
	s := S{A: " hey "}
	require.NoError(t, sanitizer.SanitizeStruct(&s))
	assert.Equal(t, "HEY", s.A)
}
