package scoring

import "testing"

func TestUnifyLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B-RUT", "RUT"},
		{"I-RUT", "RUT"},
		{"RUT", "RUT"},
		{" B-MONTO ", "MONTO"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := UnifyLabel(tt.in); got != tt.want {
			t.Errorf("UnifyLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dirección", "direccion"},
		{"  GÉNERO ", "genero"},
		{"año", "ano"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := FoldASCII(tt.in); got != tt.want {
			t.Errorf("FoldASCII(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSpaces(t *testing.T) {
	if got := NormalizeSpaces("  a \t b\n c "); got != "a b c" {
		t.Errorf("NormalizeSpaces = %q", got)
	}
}

func TestStripTrailingPunct(t *testing.T) {
	if got := StripTrailingPunct(" (12.500) ,"); got != "12.500" {
		t.Errorf("StripTrailingPunct = %q", got)
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		label string
		text  string
		want  bool
	}{
		{"RUT", "rut", true},
		{"RUT", "RUT", true},
		{"B-RUT", "Rut.", true},
		{"RUT_DEUDOR", "rut", true},
		{"RUT", "12345678-5", false},
		{"DIRECCION", "Dirección", true},
		{"MONTO", "monto", true},
		{"MONTO", "$1.500.000", false},
		{"DESCONOCIDO", "rut", false},
	}
	for _, tt := range tests {
		if got := IsPlaceholder(tt.label, tt.text); got != tt.want {
			t.Errorf("IsPlaceholder(%q, %q) = %v, want %v", tt.label, tt.text, got, tt.want)
		}
	}
}
