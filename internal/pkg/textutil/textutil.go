package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics, lowercases and collapses internal whitespace to
// single spaces (e.g. "  Dátum  pôvodného kontaktu " -> "datum povodneho kontaktu").
func Fold(s string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// Slug folds s and replaces the remaining spaces with underscores
func Slug(s string) string {
	return strings.ReplaceAll(Fold(s), " ", "_")
}
