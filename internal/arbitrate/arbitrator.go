// Package arbitrate selects one winning value per field from the competing
// candidates observed across a document's pages.
package arbitrate

import (
	"math"

	"github.com/Tomaxido/validocu/internal/layout"
	"github.com/Tomaxido/validocu/internal/scoring"
)

// Candidate is one observed value for a label, with the page it came from.
type Candidate struct {
	Text string
	Page int
}

// PageBonus is a small monotonically decreasing bonus for candidates found on
// earlier pages. It is a tie-break signal only, never a dominant factor.
func PageBonus(page int) float64 {
	return math.Max(0, 0.1-0.01*float64(page))
}

// ChooseBest picks the winner for one label: arg-max of type score plus page
// bonus, ties broken by first-encountered order. ok is false when the
// candidate list is empty.
func ChooseBest(label string, candidates []Candidate) (best Candidate, bestScore float64, ok bool) {
	bestScore = math.Inf(-1)
	for _, c := range candidates {
		s := scoring.Score(label, c.Text) + PageBonus(c.Page)
		if s > bestScore {
			best, bestScore, ok = c, s, true
		}
	}
	return best, bestScore, ok
}

// Collect groups spans into per-label candidate lists, normalizing labels and
// whitespace. Spans with an empty label or empty text contribute nothing.
func Collect(spans []layout.EntitySpan) map[string][]Candidate {
	candidates := make(map[string][]Candidate)
	for _, span := range spans {
		label := scoring.UnifyLabel(span.Label)
		text := scoring.NormalizeSpaces(span.Text)
		if label == "" || text == "" {
			continue
		}
		candidates[label] = append(candidates[label], Candidate{Text: text, Page: span.Page})
	}
	return candidates
}

// BuildGlobal arbitrates every label across the given spans and returns the
// canonical field map. Labels whose winner is itself a placeholder (possible
// only when every candidate was one) are dropped rather than stored; winners
// are canonicalized per label.
func BuildGlobal(spans []layout.EntitySpan) map[string]string {
	global := make(map[string]string)
	for label, cands := range Collect(spans) {
		winner, _, ok := ChooseBest(label, cands)
		if !ok {
			continue
		}
		if scoring.IsPlaceholder(label, winner.Text) {
			continue
		}
		global[label] = scoring.CleanValue(label, winner.Text)
	}
	return global
}
