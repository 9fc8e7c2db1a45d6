package util

import "unicode"

// ContainsLetter reports whether s contains at least one letter. Required
// text fields must name something, not just punctuation or digits.
func ContainsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
