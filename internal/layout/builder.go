package layout

import "strings"

// DefaultLineTolerance is the vertical tolerance, in normalized units, under
// which two consecutive I- boxes are merged into one visual line.
const DefaultLineTolerance = 5

// Builder groups a page's token predictions into entity spans. The zero
// value is not usable; construct with NewBuilder.
type Builder struct {
	width         int
	height        int
	lineTolerance int
	minConfidence float32
}

// NewBuilder returns a span builder for a page of the given pixel size.
// minConfidence of zero disables confidence gating (predictions without a
// confidence attached always pass).
func NewBuilder(width, height int, minConfidence float32) *Builder {
	return &Builder{
		width:         width,
		height:        height,
		lineTolerance: DefaultLineTolerance,
		minConfidence: minConfidence,
	}
}

// Build runs the single-pass BIO grouping over an ordered token sequence.
// Every non-O word above the confidence gate contributes to exactly one
// span; the sequence may span multiple model chunks, no length is assumed.
func (b *Builder) Build(tokens []TokenPrediction) []EntitySpan {
	var (
		spans        []EntitySpan
		currentLabel string
		currentWords []string
		currentBoxes []Box
	)

	flush := func() {
		if currentLabel == "" {
			return
		}
		boxes := make([]Box, len(currentBoxes))
		for i, box := range currentBoxes {
			boxes[i] = box.Denormalize(b.width, b.height)
		}
		spans = append(spans, EntitySpan{
			Label: currentLabel,
			Text:  strings.Join(currentWords, " "),
			Boxes: boxes,
		})
		currentLabel, currentWords, currentBoxes = "", nil, nil
	}

	reset := func() {
		currentLabel, currentWords, currentBoxes = "", nil, nil
	}

	for _, tok := range tokens {
		label := tok.Label
		if b.minConfidence > 0 && tok.Confidence > 0 && tok.Confidence < b.minConfidence {
			label = "O"
		}

		switch {
		case label == "O":
			flush()

		case strings.HasPrefix(label, "B-"):
			flush()
			currentLabel = label[2:]
			currentWords = []string{tok.Word}
			currentBoxes = []Box{tok.Box}

		case strings.HasPrefix(label, "I-") && currentLabel == label[2:]:
			if len(currentBoxes) > 0 && currentBoxes[len(currentBoxes)-1].SameLine(tok.Box, b.lineTolerance) {
				currentWords = append(currentWords, tok.Word)
				currentBoxes[len(currentBoxes)-1][2] = tok.Box[2]
			} else {
				currentWords = append(currentWords, tok.Word)
				currentBoxes = append(currentBoxes, tok.Box)
			}

		default:
			// mismatched I- type or stray continuation: close whatever is
			// open and treat this word as unlabeled
			flush()
			reset()
		}
	}
	flush()
	return spans
}
