package glue

import (
	"strings"
	"unicode"
)

// Tokenize lowercases s and splits it on runs of Unicode whitespace.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace)
}
