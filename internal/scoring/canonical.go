package scoring

import "strings"

// rutLabels are the identity-number fields that get checksum-style
// canonicalization.
var rutLabels = map[string]struct{}{
	"RUT":                  {},
	"RUT_DEUDOR":           {},
	"RUT_CORREDOR":         {},
	"EMPRESA_DEUDOR_RUT":   {},
	"EMPRESA_CORREDOR_RUT": {},
}

// CleanValue applies label-specific cleanup to an arbitration winner. Only
// winners are cleaned; candidates keep their raw text for scoring.
func CleanValue(label, text string) string {
	if text == "" {
		return text
	}
	lbl := strings.ToUpper(UnifyLabel(label))
	v := StripTrailingPunct(text)
	if _, ok := rutLabels[lbl]; ok {
		return CleanRUT(v)
	}
	return v
}
