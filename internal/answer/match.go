// Package answer compares free-text guesses against canonical answers.
package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'", "`", "'")

// Normalize case-folds s, strips combining marks, collapses whitespace runs
// and maps typographic apostrophes to '. Other punctuation is kept.
func Normalize(s string) string {
	s = strings.Join(strings.Fields(apostrophes.Replace(s)), " ")
	s = cases.Fold().String(s)

	// Transformers carry state, so the chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Match reports whether guess equals canonical after normalization.
// An empty guess never matches a non-empty answer.
func Match(guess, canonical string) bool {
	return Normalize(guess) == Normalize(canonical)
}
