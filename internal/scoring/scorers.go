package scoring

import (
	"regexp"
	"strings"
)

// Scorer rates the plausibility of a candidate text for one field. Scorers
// are pure functions of the text; scores live roughly in [-1, +1] but stack
// upward when independent evidence (format + checksum) accumulates.
type Scorer func(text string) float64

var (
	anyDigitsRe   = regexp.MustCompile(`\d`)
	longDigitsRe  = regexp.MustCompile(`\d{4,}`)
	upperWordRe   = regexp.MustCompile(`[A-Z]{3,}`)
	capTokenRe    = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+$`)
	streetRe      = regexp.MustCompile(`(?i)\b(av\.?|avenida|calle|pasaje|psje\.?)\b`)
	streetNumRe   = regexp.MustCompile(`(?i)(#|n°|num\.?)\s*\d+`)
	looseNumRe    = regexp.MustCompile(`\b\d{1,5}\b`)
	nationalityRe = regexp.MustCompile(`(?i)(chilena|chileno|argentina|argentino|peruana|peruano|boliviana|boliviano|espa[ñn]ola|espa[ñn]ol)`)
)

// ScoreNombre rates a person-name candidate: no digits, 2-4 tokens, mostly
// capitalized words.
func ScoreNombre(text string) float64 {
	t := NormalizeSpaces(text)
	tokens := strings.Fields(t)
	score := 0.0
	if !anyDigitsRe.MatchString(t) {
		score += 0.2
	}
	if len(tokens) >= 2 && len(tokens) <= 4 {
		score += 0.4
	}
	good := 0
	for _, tok := range tokens {
		if capTokenRe.MatchString(tok) {
			good++
		}
	}
	need := len(tokens) - 1
	if need < 1 {
		need = 1
	}
	if good >= need {
		score += 0.3
	}
	return score
}

// ScoreEmpresa rates a company-name candidate by legal suffixes and casing.
func ScoreEmpresa(text string) float64 {
	t := strings.ToUpper(NormalizeSpaces(text))
	score := 0.0
	for _, suf := range []string{" S.A.", " SPA", " LTDA", " EIRL", " SA "} {
		if strings.Contains(t, suf) {
			score += 0.5
			break
		}
	}
	if upperWordRe.MatchString(t) {
		score += 0.2
	}
	if !longDigitsRe.MatchString(t) {
		score += 0.1
	}
	return score
}

// ScoreDireccion rates a street-address candidate.
func ScoreDireccion(text string) float64 {
	t := strings.ToLower(NormalizeSpaces(text))
	score := 0.0
	if streetRe.MatchString(t) {
		score += 0.4
	}
	if streetNumRe.MatchString(t) || looseNumRe.MatchString(t) {
		score += 0.3
	}
	return score
}

// ScoreCiudad rates a city-name candidate.
func ScoreCiudad(text string) float64 {
	t := NormalizeSpaces(text)
	score := 0.0
	if !anyDigitsRe.MatchString(t) {
		score += 0.3
	}
	if n := len(strings.Fields(t)); n >= 1 && n <= 3 {
		score += 0.3
	}
	return score
}

var documentKinds = []string{"PAGARE", "MUTUO", "ESCRITURA", "CONTRATO", "FACTURA", "CESION"}

// ScoreTipoDocumento rates a document-type candidate against the known kinds.
func ScoreTipoDocumento(text string) float64 {
	t := strings.ToUpper(NormalizeSpaces(text))
	score := 0.0
	for _, w := range documentKinds {
		if strings.Contains(t, w) {
			score += 0.6
			break
		}
	}
	if len(t) <= 40 {
		score += 0.2
	}
	return score
}

// ScoreNacionalidad rates a nationality candidate.
func ScoreNacionalidad(text string) float64 {
	t := NormalizeSpaces(text)
	score := 0.0
	if nationalityRe.MatchString(t) {
		score += 0.6
	}
	if !anyDigitsRe.MatchString(t) {
		score += 0.2
	}
	return score
}

// ScoreGenero rates a gender candidate; the bare placeholder word is
// penalized here as well so it loses even under the generic path.
func ScoreGenero(text string) float64 {
	t := FoldASCII(StripTrailingPunct(text))
	if t == "genero" {
		return PlaceholderPenalty
	}
	switch t {
	case "m", "masculino", "hombre", "f", "femenino", "mujer":
		return 0.7
	case "no binario", "no-binario", "nb", "x":
		return 0.6
	}
	return 0
}

// ScoreGeneric is the fallback for labels without a dedicated scorer.
func ScoreGeneric(text string) float64 {
	if strings.TrimSpace(text) != "" {
		return 0.1
	}
	return 0
}

// scorers is the fixed registry from canonical label to scoring function.
var scorers = map[string]Scorer{
	"RUT":                  ScoreRUT,
	"RUT_DEUDOR":           ScoreRUT,
	"RUT_CORREDOR":         ScoreRUT,
	"EMPRESA_DEUDOR_RUT":   ScoreRUT,
	"EMPRESA_CORREDOR_RUT": ScoreRUT,

	"FECHA_NACIMIENTO":  dateScorer("FECHA_NACIMIENTO"),
	"FECHA_ESCRITURA":   dateScorer("FECHA_ESCRITURA"),
	"FECHA_EMISION":     dateScorer("FECHA_EMISION"),
	"FECHA_VENCIMIENTO": dateScorer("FECHA_VENCIMIENTO"),

	"MONTO": ScoreMonto,
	"TASA":  ScoreTasa,
	"PLAZO": ScorePlazo,

	"NOMBRE_COMPLETO":          ScoreNombre,
	"NOMBRE_COMPLETO_DEUDOR":   ScoreNombre,
	"NOMBRE_COMPLETO_CORREDOR": ScoreNombre,
	"EMPRESA":                  ScoreEmpresa,
	"EMPRESA_DEUDOR":           ScoreEmpresa,
	"EMPRESA_CORREDOR":         ScoreEmpresa,

	"DIRECCION":      ScoreDireccion,
	"CIUDAD":         ScoreCiudad,
	"MONEDA":         ScoreMoneda,
	"TIPO_DOCUMENTO": ScoreTipoDocumento,
	"NACIONALIDAD":   ScoreNacionalidad,
	"GENERO":         ScoreGenero,
}

func dateScorer(kind string) Scorer {
	return func(text string) float64 { return ScoreDate(text, kind) }
}

// ForLabel returns the registered scorer for a canonical label, or the
// generic fallback.
func ForLabel(label string) Scorer {
	if fn, ok := scorers[label]; ok {
		return fn
	}
	return ScoreGeneric
}

// Score rates text for a label, short-circuiting known placeholders to the
// fixed penalty regardless of what the type scorer would say.
func Score(label, text string) float64 {
	if IsPlaceholder(label, text) {
		return PlaceholderPenalty
	}
	return ForLabel(label)(text)
}
