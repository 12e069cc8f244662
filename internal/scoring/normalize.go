package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	bioPrefixRe = regexp.MustCompile(`^(B-|I-)`)
	spacesRe    = regexp.MustCompile(`\s+`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

// UnifyLabel strips the BIO prefix from a predicted label, leaving the
// canonical type name ("B-RUT" and "I-RUT" both become "RUT").
func UnifyLabel(label string) string {
	return strings.TrimSpace(bioPrefixRe.ReplaceAllString(label, ""))
}

// NormalizeSpaces trims and collapses runs of whitespace to single spaces.
func NormalizeSpaces(s string) string {
	return spacesRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// OnlyDigits drops every non-digit rune.
func OnlyDigits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

var asciiFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// FoldASCII lowercases and removes diacritics for comparison purposes only;
// stored values keep their original casing and accents.
func FoldASCII(s string) string {
	folded, _, err := transform.String(asciiFolder, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// StripTrailingPunct trims surrounding punctuation and brackets.
func StripTrailingPunct(s string) string {
	return strings.Trim(strings.TrimSpace(s), " ,.;:()[]{}")
}
