package aggregate

import "fmt"

const missing = "N/A"

func pick(global map[string]string, labels ...string) string {
	for _, l := range labels {
		if v := global[l]; v != "" {
			return v
		}
	}
	return missing
}

// BuildResumen renders the fixed document summary from the canonical field
// map, substituting "N/A" for fields no page produced. Role-specific labels
// fall back to their generic counterparts.
func BuildResumen(global map[string]string) string {
	tipo := global["TIPO_DOCUMENTO"]
	if tipo == "" {
		tipo = "desconocido"
	}
	return fmt.Sprintf(
		"Documento tipo %s, firmado entre %s (RUT %s) y %s (RUT %s). "+
			"Empresa Deudor: %s, Empresa Corredor: %s. "+
			"Fechas: escritura=%s, emisión=%s, vencimiento=%s. "+
			"Condiciones: monto=%s, tasa=%s, plazo=%s.",
		tipo,
		pick(global, "NOMBRE_COMPLETO_DEUDOR", "NOMBRE_COMPLETO"),
		pick(global, "RUT_DEUDOR", "RUT"),
		pick(global, "NOMBRE_COMPLETO_CORREDOR"),
		pick(global, "RUT_CORREDOR"),
		pick(global, "EMPRESA_DEUDOR", "EMPRESA"),
		pick(global, "EMPRESA_CORREDOR"),
		pick(global, "FECHA_ESCRITURA"),
		pick(global, "FECHA_EMISION"),
		pick(global, "FECHA_VENCIMIENTO"),
		pick(global, "MONTO"),
		pick(global, "TASA"),
		pick(global, "PLAZO"),
	)
}

// BuildPageResumen renders the short page-scoped description stored with the
// page record.
func BuildPageResumen(page int, masterID, groupID string) string {
	return fmt.Sprintf("Página %d del documento %s (grupo %s).", page, masterID, groupID)
}
