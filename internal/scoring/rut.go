package scoring

import (
	"regexp"
	"strings"
)

var (
	rutShapeRe  = regexp.MustCompile(`^(\d+)-([\dK])$`)
	rutFormatRe = regexp.MustCompile(`\d{1,3}(\.\d{3})*-(\d|K)$`)
	upperRunRe  = regexp.MustCompile(`[A-Z]{2,}`)
	nonRutRe    = regexp.MustCompile(`[^0-9K]`)
)

// RUTCheckDigit computes the modulo-11 check character for a digit body.
// Weights cycle 2..7 over the reversed digits; 11 maps to "0", 10 to "K".
func RUTCheckDigit(body string) string {
	sum := 0
	mult := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mult
		mult++
		if mult > 7 {
			mult = 2
		}
	}
	switch res := 11 - (sum % 11); res {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return string(rune('0' + res))
	}
}

// RUTIsValid reports whether a digits-hyphen-check identifier passes its
// checksum. Thousands dots and spaces are tolerated.
func RUTIsValid(rut string) bool {
	r := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(rut, ".", ""), " ", ""))
	m := rutShapeRe.FindStringSubmatch(r)
	if m == nil {
		return false
	}
	return RUTCheckDigit(m[1]) == m[2]
}

// ScoreRUT rates the plausibility of a RUT candidate: format evidence and a
// passing checksum stack, residual uppercase letters penalize.
func ScoreRUT(text string) float64 {
	t := NormalizeSpaces(text)
	score := 0.0
	if rutFormatRe.MatchString(t) {
		score += 0.5
	}
	if RUTIsValid(t) {
		score += 1.0
	}
	if upperRunRe.MatchString(strings.ReplaceAll(t, "K", "")) {
		score -= 0.2
	}
	return score
}

// CleanRUT canonicalizes a winning RUT to digits-hyphen-check form. Values too
// short to split are returned trimmed but otherwise untouched.
func CleanRUT(text string) string {
	if text == "" {
		return text
	}
	t := strings.ToUpper(StripTrailingPunct(text))
	t = strings.ReplaceAll(strings.ReplaceAll(t, ".", ""), " ", "")
	t = nonRutRe.ReplaceAllString(t, "")
	if len(t) < 2 {
		return strings.TrimSpace(text)
	}
	return t[:len(t)-1] + "-" + t[len(t)-1:]
}
