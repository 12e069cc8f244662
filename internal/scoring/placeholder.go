package scoring

import "strings"

// PlaceholderPenalty is the score assigned to template boilerplate text that
// leaked through extraction (the literal word "rut" in a RUT field, etc).
// Strongly negative so a placeholder only wins when it is the sole candidate.
const PlaceholderPenalty = -0.5

// placeholders maps each canonical label to the template strings that must
// never be stored as real values. Keys are compared after FoldASCII.
var placeholders = map[string]map[string]struct{}{
	"GENERO":                   set("genero"),
	"NACIONALIDAD":             set("nacionalidad"),
	"MONTO":                    set("monto"),
	"MONEDA":                   set("moneda"),
	"CIUDAD":                   set("ciudad"),
	"DIRECCION":                set("direccion", "dirección"),
	"RUT":                      set("rut"),
	"RUT_DEUDOR":               set("rut"),
	"RUT_CORREDOR":             set("rut"),
	"EMPRESA":                  set("empresa"),
	"EMPRESA_DEUDOR":           set("empresa"),
	"EMPRESA_CORREDOR":         set("empresa"),
	"NOMBRE_COMPLETO":          set("nombre", "nombre completo"),
	"NOMBRE_COMPLETO_DEUDOR":   set("nombre completo"),
	"NOMBRE_COMPLETO_CORREDOR": set("nombre completo"),
	"TIPO_DOCUMENTO":           set("tipo documento", "tipo de documento"),
	"ID_REGISTRO":              set("id", "id registro"),
}

func set(vs ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		m[v] = struct{}{}
	}
	return m
}

// IsPlaceholder reports whether text is a known template placeholder for the
// given label. The label may still carry its BIO prefix.
func IsPlaceholder(label, text string) bool {
	lab := strings.ToUpper(UnifyLabel(label))
	t := FoldASCII(StripTrailingPunct(text))
	_, ok := placeholders[lab][t]
	return ok
}
