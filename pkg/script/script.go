// Package script implements the alphabetic-word gate used to decide
// fuzzy/prefix eligibility: Latin, Greek, or Cyrillic letters only, no
// digits, length >= 2.
package script

import (
	"unicode"

	"github.com/bastiangx/geophrase/internal/utils"
)

// IsAlphabetic reports whether every rune in word belongs to the Latin,
// Greek, or Cyrillic scripts, none is a decimal digit, and the word has at
// least two runes. Only alphabetic words are eligible for fuzzy or prefix
// treatment (SPEC_FULL.md §3).
func IsAlphabetic(word string) bool {
	if len([]rune(word)) < 2 {
		return false
	}
	if utils.ContainsDigit(word) {
		return false
	}
	for _, r := range word {
		if !isLatinGreekOrCyrillic(r) {
			return false
		}
	}
	return true
}

func isLatinGreekOrCyrillic(r rune) bool {
	return unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Greek, r) || unicode.Is(unicode.Cyrillic, r)
}
