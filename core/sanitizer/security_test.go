package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/apiguard/core/sanitizer"
)

func TestSanitizeInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "script element", input: "<script>alert(1)</script>John", want: "John"},
		{name: "script with attributes", input: `<script type="text/javascript">steal()</script> Jane `, want: "Jane"},
		{name: "multiline script", input: "Hi<SCRIPT>\nalert(1)\n</SCRIPT>there", want: "Hithere"},
		{name: "style element", input: "<style>body{display:none}</style>ok", want: "ok"},
		{name: "unterminated script", input: "Bob<script src=x", want: "Bob"},
		{name: "event handler tag", input: `<img src=x onerror="alert(1)">Eve`, want: "Eve"},
		{name: "javascript uri", input: "javascript:alert(1)", want: "alert(1)"},
		{name: "null bytes", input: "ad\x00min", want: "admin"},
		{name: "control characters", input: "a\x07b\x1bc", want: "abc"},
		{name: "keeps newlines", input: "line1\nline2", want: "line1\nline2"},
		{name: "trims", input: "  padded  ", want: "padded"},
		{name: "keeps harmless markup", input: "<b>bold</b>", want: "<b>bold</b>"},
		{name: "plain text untouched", input: "O'Brien & Sons", want: "O'Brien & Sons"},
		{name: "nfc normalization", input: "Café", want: "Café"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.SanitizeInput(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "alice@example.com", sanitizer.NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "bob@example.com", sanitizer.NormalizeEmail("bob@exa\x00mple.com\r\n"))
	assert.Equal(t, "josé@example.com", sanitizer.NormalizeEmail("José@example.com"))
	assert.Empty(t, sanitizer.NormalizeEmail("   "))
}

func TestSanitizePassword(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " pass word! ", sanitizer.SanitizePassword(" pass word! "))
	assert.Equal(t, "secret", sanitizer.SanitizePassword("sec\x00ret\n"))
	assert.Equal(t, "<script>", sanitizer.SanitizePassword("<script>"))
}

func TestStripScripts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "before after", sanitizer.StripScripts("before <script>x()</script>after"))
	assert.Equal(t, "link", sanitizer.StripScripts(`<a href="#" onclick="x()">link`))
	assert.Equal(t, "plain", sanitizer.StripScripts("plain"))
}

func TestRemoveNullBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", sanitizer.RemoveNullBytes("\x00a\x00b\x00c\x00"))
}
