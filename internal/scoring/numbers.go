package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

var magnitudeRe = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ParseNumber extracts a numeric magnitude tolerating both thousands
// conventions: when both "." and "," appear, "." is thousands and "," decimal;
// otherwise "," is dropped as a thousands separator.
func ParseNumber(text string) float64 {
	t := strings.ReplaceAll(text, " ", "")
	if strings.Contains(t, ".") && strings.Contains(t, ",") {
		t = strings.ReplaceAll(t, ".", "")
		t = strings.ReplaceAll(t, ",", ".")
	} else {
		t = strings.ReplaceAll(t, ",", "")
	}
	m := magnitudeRe.FindString(t)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

var currencyMarks = []string{"$", "CLP", "UF", "USD", "US$", "EUR"}

// ScoreCurrencyHint rewards the presence of a currency symbol or code.
func ScoreCurrencyHint(text string) float64 {
	t := strings.ToUpper(text)
	for _, sym := range currencyMarks {
		if strings.Contains(t, sym) {
			return 0.6
		}
	}
	return 0
}

// ScoreMonto rates a monetary amount by magnitude tiers plus a fraction of
// the currency hint.
func ScoreMonto(text string) float64 {
	n := ParseNumber(text)
	score := 0.0
	if n > 0 {
		score += 0.5
		if n >= 1_000 {
			score += 0.2
		}
		if n >= 1_000_000 {
			score += 0.1
		}
	}
	score += ScoreCurrencyHint(text) * 0.6
	return score
}

var (
	rateValueRe = regexp.MustCompile(`(\d+([.,]\d+)?)%?`)
	ratePeriodRe = regexp.MustCompile(`(?i)(anual|anuales|mensual|mensuales|EA|NAM|TNA|TEM)`)
)

// ScoreTasa rates an interest-rate candidate.
func ScoreTasa(text string) float64 {
	t := strings.ReplaceAll(text, " ", "")
	score := 0.0
	if strings.Contains(t, "%") {
		score += 0.5
	}
	if m := rateValueRe.FindStringSubmatch(t); m != nil {
		if val, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
			if val >= 0 && val <= 100 {
				score += 0.5
			}
			if ratePeriodRe.MatchString(text) {
				score += 0.1
			}
		}
	}
	return score
}

var (
	termUnitRe  = regexp.MustCompile(`(?i)\b(d[ií]as|mes(es)?|a[nñ]o(s)?)\b`)
	anyDigitRe  = regexp.MustCompile(`\d+`)
)

// ScorePlazo rates a term candidate ("36 meses", "90 días").
func ScorePlazo(text string) float64 {
	t := strings.ToLower(NormalizeSpaces(text))
	score := 0.0
	if termUnitRe.MatchString(t) {
		score += 0.5
	}
	if anyDigitRe.MatchString(t) {
		score += 0.3
	}
	return score
}

var currencyCodes = map[string]struct{}{"CLP": {}, "UF": {}, "USD": {}, "EUR": {}}

// ScoreMoneda rates a currency-label candidate (exact code beats symbol).
func ScoreMoneda(text string) float64 {
	t := strings.ToUpper(NormalizeSpaces(text))
	score := 0.0
	if _, ok := currencyCodes[t]; ok {
		score += 0.8
	}
	for _, sym := range []string{"$", "US$", "€"} {
		if strings.Contains(t, sym) {
			score += 0.4
			break
		}
	}
	if hint := ScoreCurrencyHint(text); hint > score {
		score = hint
	}
	return score
}
