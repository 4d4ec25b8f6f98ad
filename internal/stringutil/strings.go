// Package stringutil provides small text transformations used by the demo.
//
// Functions operate on Unicode code points (runes). Case mapping uses
// golang.org/x/text/cases, which applies full special casing: "ß" upper-cases
// to "SS" and a trailing capital sigma lower-cases to "ς".
package stringutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TruncationSuffix is appended by Truncate when it shortens a string.
const TruncationSuffix = "..."

// whitespace is the class treated as space by Slugify: ASCII controls
// \t \n \v \f \r, space, every Unicode separator (Z) and the BOM.
const whitespace = `\t\n\x0B\f\r \p{Z}\x{FEFF}`

var (
	// \w is ASCII-only in RE2, so accented letters are dropped.
	nonSlugChars = regexp.MustCompile(`[^\w` + whitespace + `-]`)
	separatorRun = regexp.MustCompile(`[` + whitespace + `_-]+`)
)

// Capitalize upper-cases the first rune of s and lower-cases the rest.
//
//	Capitalize("hELLO") // "Hello"
//	Capitalize("")      // ""
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	// Casers are not safe for concurrent use.
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// Truncate returns s unchanged when it has at most maxLength runes.
// Otherwise it returns the first maxLength runes followed by TruncationSuffix.
//
// A negative maxLength counts back from the end of s, so
// Truncate("Hello", -2) returns "Hel...".
func Truncate(s string, maxLength int) string {
	n := utf8.RuneCountInString(s)
	if n <= maxLength {
		return s
	}

	keep := maxLength
	if keep < 0 {
		keep = max(n+keep, 0)
	}
	return s[:byteOffset(s, keep)] + TruncationSuffix
}

// byteOffset returns the byte index at which the rune with index runes starts.
func byteOffset(s string, runes int) int {
	i := 0
	for offset := range s {
		if i == runes {
			return offset
		}
		i++
	}
	return len(s)
}

// Slugify converts s into a lower-case, hyphen-delimited, URL-safe token.
//
// The steps are applied in order:
//   - lower-case the input
//   - trim surrounding whitespace
//   - drop every rune that is not an ASCII word character, whitespace or hyphen
//   - collapse each run of whitespace, underscores and hyphens into one hyphen
//   - strip leading and trailing hyphens
//
// Example:
//
//	Slugify("Hello @ World!")     // "hello-world"
//	Slugify("  Hello   World  ")  // "hello-world"
func Slugify(s string) string {
	slug := cases.Lower(language.Und).String(s)
	slug = strings.TrimFunc(slug, IsSpace)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = separatorRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// IsSpace reports whether r is whitespace for Slugify: ASCII tab, LF, VT,
// FF, CR and space, any Unicode separator, or the byte order mark.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// ReverseString returns s with its runes in reverse order.
// Combining marks and other multi-rune graphemes are not kept together.
// Invalid UTF-8 bytes come back as U+FFFD.
func ReverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
