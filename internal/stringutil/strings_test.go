package stringutil

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"first letter", "hello", "Hello"},
		{"empty string", "", ""},
		{"rest lowercased", "hELLO", "Hello"},
		{"single rune", "a", "A"},
		{"leading digit", "1ST PLACE", "1st place"},
		{"multibyte first rune", "élan", "Élan"},
		{"sharp s expands", "ßtraße", "SStraße"},
		{"sentence", "hello WORLD", "Hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Capitalize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{"long string", "Hello World", 5, "Hello..."},
		{"short string", "Hi", 5, "Hi"},
		{"exact length", "Hello", 5, "Hello"},
		{"zero length", "Hello", 0, "..."},
		{"empty input", "", 0, ""},
		{"counts runes not bytes", "héllo wörld", 5, "héllo..."},
		{"multibyte exact length", "日本語", 3, "日本語"},
		{"multibyte truncated", "日本語です", 2, "日本..."},
		{"negative counts from end", "Hello", -2, "Hel..."},
		{"negative past start", "Hello", -10, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLength))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase slug", "Hello World", "hello-world"},
		{"special characters", "Hello @ World!", "hello-world"},
		{"multiple spaces", "Hello   World", "hello-world"},
		{"surrounding spaces", "  Hello   World  ", "hello-world"},
		{"underscores collapse", "snake_case_name", "snake-case-name"},
		{"mixed separators", "a - _ b", "a-b"},
		{"leading and trailing hyphens", "--Hello--", "hello"},
		{"punctuation at edges", "!Hello World?", "hello-world"},
		{"digits kept", "Release 2.0", "release-20"},
		{"non ascii letters dropped", "Café Olé", "caf-ol"},
		{"tabs and newlines", "Hello\t\nWorld", "hello-world"},
		{"no break space", "Hello\u00a0World", "hello-world"},
		{"only symbols", "@#$%", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestReverseString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"word", "hello", "olleh"},
		{"empty", "", ""},
		{"single rune", "a", "a"},
		{"multibyte", "añb", "bña"},
		{"astral rune kept whole", "a😀b", "b😀a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReverseString(tt.input))
		})
	}
}

func TestReverseString_Involution(t *testing.T) {
	inputs := []string{
		"", "a", "ab", "hello world", "日本語", "a😀b", "é", "  padded  ",
		"The quick brown fox jumps over the lazy dog",
	}
	for _, s := range inputs {
		assert.True(t, utf8.ValidString(s))
		assert.Equal(t, s, ReverseString(ReverseString(s)), "input %q", s)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{"Hello @ World!", "  a  b  ", "x_y-z", "Ünïcödé Tëxt"}
	for _, s := range inputs {
		once := Slugify(s)
		assert.Equal(t, once, Slugify(once), "input %q", s)
	}
}
