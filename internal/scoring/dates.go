package scoring

import (
	"regexp"
	"strconv"
	"time"
)

var dateFormats = []string{"02/01/2006", "02-01-2006", "2006-01-02", "02.01.2006"}

var looseDateRe = regexp.MustCompile(`(\d{1,2})\D(\d{1,2})\D(\d{4})`)

// ParseDate parses a candidate against the known literal formats, then falls
// back to a loose day-month-year triple. Returns the zero time when nothing
// parses.
func ParseDate(s string) (time.Time, bool) {
	s = NormalizeSpaces(s)
	for _, f := range dateFormats {
		if d, err := time.Parse(f, s); err == nil {
			return d, true
		}
	}
	m := looseDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	dd, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	yyyy, _ := strconv.Atoi(m[3])
	d := time.Date(yyyy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow, so 32/13/2020 would silently roll over
	if d.Day() != dd || int(d.Month()) != mm || d.Year() != yyyy {
		return time.Time{}, false
	}
	return d, true
}

var (
	minDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC)
)

// ScoreDate rates a date candidate with a bonus depending on the field kind:
// birth dates must imply a plausible adult age, issue dates must not be in the
// future, expiry dates are rewarded for being future-dated.
func ScoreDate(text, kind string) float64 {
	d, ok := ParseDate(text)
	if !ok {
		return 0
	}
	score := 0.5
	today := time.Now().UTC().Truncate(24 * time.Hour)
	switch kind {
	case "FECHA_NACIMIENTO":
		if !d.Before(minDate) && !d.After(today) {
			score += 0.4
		}
		if age := yearsBetween(d, today); age >= 18 && age <= 100 {
			score += 0.3
		}
	case "FECHA_ESCRITURA", "FECHA_EMISION":
		if !d.Before(minDate) && !d.After(today) {
			score += 0.4
		}
	case "FECHA_VENCIMIENTO":
		if !d.Before(minDate) && !d.After(maxDate) {
			score += 0.4
		}
		if !d.Before(today) {
			score += 0.1
		}
	default:
		if !d.Before(minDate) && !d.After(maxDate) {
			score += 0.2
		}
	}
	return score
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}
