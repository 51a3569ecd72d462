package util

import (
	"regexp"
	"strings"
	"unicode"
)

var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// splitWords breaks s into lower-cased words on separators (space, '-',
// '_', '.') and lower-to-upper case transitions.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	var prev rune

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '.':
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()
	return words
}

// CamelCase converts s to camelCase.
func CamelCase(s string) string {
	words := splitWords(s)
	for i := 1; i < len(words); i++ {
		words[i] = Capitalize(words[i])
	}
	return strings.Join(words, "")
}

// PascalCase converts s to PascalCase.
func PascalCase(s string) string {
	words := splitWords(s)
	for i := range words {
		words[i] = Capitalize(words[i])
	}
	return strings.Join(words, "")
}

// SnakeCase converts s to snake_case.
func SnakeCase(s string) string {
	return strings.Join(splitWords(s), "_")
}

// KebabCase converts s to kebab-case.
func KebabCase(s string) string {
	return strings.Join(splitWords(s), "-")
}

// Truncate shortens s to at most max runes, appending "..." when
// truncation occurred. For max <= 3 the suffix is omitted.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// PadLeft left-pads s with pad runes until it is at least width runes.
func PadLeft(s string, width int, pad rune) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(pad), n) + s
}

// Indent prefixes every non-empty line of s with prefix.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes ANSI color escape sequences from s.
func StripANSI(s string) string {
	return ansiEscapeRegex.ReplaceAllString(s, "")
}

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
