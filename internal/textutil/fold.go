// Package textutil contains small text normalization helpers shared by the
// router and the mock embedder. It lives in internal to avoid committing to
// public API stability prematurely.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var markRemover = runes.Remove(runes.In(unicode.Mn))

// Fold lowercases s and removes diacritics so that "Giải phương trình" and
// "giai phuong trinh" compare equal. On transform failure the lowercased
// input is returned unchanged. The transform chain is built per call; chained
// transformers carry state and must not be shared across goroutines.
func Fold(s string) string {
	lowered := strings.ToLower(s)
	folded, _, err := transform.String(transform.Chain(norm.NFD, markRemover, norm.NFC), lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Tokens splits s into folded word tokens, dropping punctuation.
func Tokens(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '^'
	})
}
