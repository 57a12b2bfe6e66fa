package post

import (
	"strings"
	"unicode/utf8"
)

// Limits bounds the size of a post body. Lengths are counted in characters
// (code points), not bytes.
type Limits struct {
	MaxTextLength int
	MaxWordLength int
}

// DefaultLimits allows 2048 characters per post and 128 per word.
func DefaultLimits() Limits {
	return Limits{
		MaxTextLength: 2048,
		MaxWordLength: 128,
	}
}

// ValidateText returns text unchanged if it fits the limits. The overall
// length is checked first; then words are checked in order and the first
// word over the limit fails the text.
func ValidateText(text string, limits Limits) (string, error) {
	if utf8.RuneCountInString(text) > limits.MaxTextLength {
		return "", newErrTextTooLong()
	}
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) > limits.MaxWordLength {
			return "", newErrWordTooLong()
		}
	}
	return text, nil
}
