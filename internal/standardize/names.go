package standardize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName uppercases a person name, strips diacritics, and collapses
// runs of whitespace into single spaces. Returns the empty string for
// unusable input.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if stripped, _, err := transform.String(deaccent, name); err == nil {
		name = stripped
	}
	name = strings.ToUpper(name)
	return strings.Join(strings.Fields(name), " ")
}

// FirstName returns the leading token of a normalized name.
func FirstName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// RestOfName returns everything after the leading token, or the empty string
// for single-token names.
func RestOfName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return ""
	}
	return strings.Join(tokens[1:], " ")
}

// BlockKey concatenates the first and last tokens of a normalized name. This
// is the standard blocking key: cheap, stable under middle-name noise.
func BlockKey(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0] + tokens[len(tokens)-1]
}
