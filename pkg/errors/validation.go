package errors

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Limits bounds the size of a word list accepted from untrusted callers.
// A zero field disables that check.
type Limits struct {
	MaxWords   int // maximum number of words
	MaxWordLen int // maximum length of a single word, in runes
}

// ValidateWords checks a word list before inference: every word must be
// valid UTF-8 and the list must respect limits. Sortedness is not checked.
func ValidateWords(words []string, limits Limits) error {
	if limits.MaxWords > 0 && len(words) > limits.MaxWords {
		return New(ErrCodeInvalidInput, "too many words: %d (max %d)", len(words), limits.MaxWords)
	}
	for i, w := range words {
		if !utf8.ValidString(w) {
			return New(ErrCodeInvalidInput, "word %d is not valid UTF-8", i)
		}
		if limits.MaxWordLen > 0 && utf8.RuneCountInString(w) > limits.MaxWordLen {
			return New(ErrCodeInvalidInput, "word %d too long (max %d characters)", i, limits.MaxWordLen)
		}
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
