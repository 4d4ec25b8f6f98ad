package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/cidemo/internal/stringutil"
)

// ParseNumber reads the longest numeric prefix of s, after skipping leading
// whitespace. Trailing text is ignored, so "5px" parses as 5. Accepted
// forms are an optional sign followed by "Infinity" or a decimal literal
// with optional fraction and exponent ("-1.5e3", ".5", "7.").
//
// Returns false when s has no numeric prefix. Hexadecimal, underscores and
// "NaN" are not numbers here.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, stringutil.IsSpace)

	prefix := numericPrefix(s)
	if prefix == "" {
		return 0, false
	}

	switch prefix {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		// Out-of-range literals saturate to ±Inf or 0.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// numericPrefix returns the longest prefix of s that is a decimal literal,
// or "" if there is none.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return s[:i+len("Infinity")]
	}

	intDigits := countDigits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := countDigits(s[j:]); n > 0 {
			i = j + n
		}
	}
	return s[:i]
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
