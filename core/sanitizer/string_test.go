package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/apiguard/core/sanitizer"
)

func TestStringHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", sanitizer.Trim("  x \t"))
	assert.Equal(t, "abc", sanitizer.ToLower("ABC"))
	assert.Equal(t, "abc", sanitizer.TrimToLower("  ABC "))
	assert.Equal(t, "a b c", sanitizer.RemoveExtraWhitespace("  a \t b\n\nc  "))
	assert.Equal(t, "a b", sanitizer.SingleLine("a\r\nb"))
	assert.Equal(t, "a\tb\nc", sanitizer.RemoveControlChars("a\tb\nc\x01"))
	assert.Equal(t, "abc", sanitizer.RemoveAllControlChars("a\tb\nc"))
	assert.Equal(t, "Tom & Jerry", sanitizer.StripHTML("<p>Tom &amp; Jerry</p>"))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "hi", sanitizer.MaxLength("hi", 10))
	assert.Empty(t, sanitizer.MaxLength("hi", 0))
}
