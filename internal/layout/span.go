// Package layout turns per-word token predictions into entity spans and
// loads/validates the per-page span artifacts exchanged with the extractor.
package layout

// Box is a word or line bounding box as [x0, y0, x1, y1].
type Box [4]int

// Denormalize maps a box from the 0-1000 prediction space into page pixels.
func (b Box) Denormalize(width, height int) Box {
	return Box{
		b[0] * width / 1000,
		b[1] * height / 1000,
		b[2] * width / 1000,
		b[3] * height / 1000,
	}
}

// SameLine reports whether two boxes sit on the same visual line: both the
// top and bottom edges within tolerance.
func (b Box) SameLine(other Box, tolerance int) bool {
	return abs(b[1]-other[1]) <= tolerance && abs(b[3]-other[3]) <= tolerance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// TokenPrediction is one word with its normalized box and BIO label, as
// produced by the upstream token-classification model.
type TokenPrediction struct {
	Word       string  `json:"word"`
	Box        Box     `json:"box"`
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence,omitempty"`
}

// EntitySpan is a contiguous run of words sharing one label, with its
// geometry in page pixel space. Immutable once built.
type EntitySpan struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Boxes []Box  `json:"boxes"`
	Page  int    `json:"page,omitempty"`
}
