package catching

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds text for matching: accents removed, case folded,
// every run of non letter/digit runes collapsed into a single space.
func Normalize(s string) string {
	// Transformers keep state, so each call builds its own chain
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(Tokens(folded), " ")
}

// FoldSymbols case-folds s under NFKC and collapses whitespace, keeping
// symbol and punctuation runes that Normalize drops.
func FoldSymbols(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKC, cases.Fold()), s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Tokens splits s on every rune that is not a letter or digit
func Tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
