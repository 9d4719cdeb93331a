package utils

import "unicode"

// ContainsDigit reports whether s contains any decimal digit. Used by the
// alphabetic-word gate: a word carrying a digit is never fuzzy-eligible.
func ContainsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
