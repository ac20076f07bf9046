package service

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize reproduces the text preprocessing the vectorizer was fitted
// with: lower-case, keep ASCII letters only, single spaces between words.
// The casing step runs first, so runes whose lower-case form is an ASCII
// letter (the Kelvin sign, for one) survive as that letter.
func Normalize(text string) string {
	// cases.Caser is stateful, so one per call
	lowered := cases.Lower(language.Und).String(text)

	mapped := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		return ' '
	}, lowered)

	return strings.Join(strings.Fields(mapped), " ")
}
