package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName capitalizes the first letter of every whitespace separated
// word and lowercases the rest, collapsing runs of whitespace:
// "UNITED   states" -> "United States". Letters after a hyphen or an
// apostrophe stay lowercase ("Bosnia-herzegovina"). Uniqueness constraints
// on names key on this form.
func NormalizeName(name string) string {
	words := strings.Fields(name)
	title, lower := cases.Title(language.Und), cases.Lower(language.Und)
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = title.String(w[:size]) + lower.String(w[size:])
	}
	return strings.Join(words, " ")
}

func validateName(entity, name string) error {
	if name == "" {
		return NewValidationError(entity, "name", "name must not be empty")
	}
	if len([]rune(name)) > 255 {
		return NewValidationError(entity, "name", "name must be at most 255 characters")
	}
	return nil
}
