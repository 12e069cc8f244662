package dockey

import (
	"errors"
	"testing"

	"github.com/Tomaxido/validocu/internal/common"
)

func TestParseCurrentScheme(t *testing.T) {
	k, err := Parse("documento_7_1_42_3_p0002.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Key{MasterID: "7", VersionID: "1", PageID: "42", GroupID: "3", Page: 2, Scheme: SchemeCurrent}
	if k != want {
		t.Errorf("key = %+v, want %+v", k, want)
	}
}

func TestParseLooseGroup(t *testing.T) {
	k, err := Parse("documento_7_1_42_loose_p0001.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !k.Loose() {
		t.Error("expected loose group")
	}
	if k.GroupID != LooseGroup {
		t.Errorf("group = %q", k.GroupID)
	}
}

func TestParseLegacyDocScheme(t *testing.T) {
	k, err := Parse("documento_af31c2d4-9b1e-4f7a-8c3d-1e2f3a4b5c6d_19_3_p0001.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k.Scheme != SchemeLegacyDoc {
		t.Errorf("scheme = %v", k.Scheme)
	}
	if k.VersionID != "" {
		t.Errorf("version = %q, want empty", k.VersionID)
	}
	if k.PageID != "19" || k.GroupID != "3" || k.Page != 1 {
		t.Errorf("key = %+v", k)
	}
}

func TestParseLegacyFlatScheme(t *testing.T) {
	k, err := Parse("documento_9_4_p0012.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// two ids parse as the oldest shape: master + group only
	if k.Scheme != SchemeLegacyFlat {
		t.Errorf("scheme = %v", k.Scheme)
	}
	if k.MasterID != "9" || k.GroupID != "4" || k.PageID != "" {
		t.Errorf("key = %+v", k)
	}
	if k.Page != 12 {
		t.Errorf("page = %d", k.Page)
	}
}

func TestParseAcceptsFullPath(t *testing.T) {
	k, err := Parse("/var/outputs/documento_7_1_42_3_p0001.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k.MasterID != "7" {
		t.Errorf("master = %q", k.MasterID)
	}
}

func TestParseMalformed(t *testing.T) {
	bad := []string{
		"resultado_7_1_42_3_p0001.json",
		"documento_7.json",
		"documento_7_1_42_3.json",
		"documento_7_1_42_3_page1.json",
		"documento_XYZ_1_42_3_p0001.json",
		"documento__p0001.json",
	}
	for _, name := range bad {
		_, err := Parse(name)
		if err == nil {
			t.Errorf("Parse(%q): expected error", name)
			continue
		}
		if !errors.Is(err, common.ErrMalformedKey) {
			t.Errorf("Parse(%q): error %v not ErrMalformedKey", name, err)
		}
	}
}

func TestSibling(t *testing.T) {
	base, _ := Parse("documento_7_1_42_3_p0001.json")
	tests := []struct {
		name string
		want bool
	}{
		{"documento_7_1_43_3_p0002.json", true},  // other page, same doc
		{"documento_7_1_42_3_p0001.json", true},  // itself
		{"documento_7_2_42_3_p0001.json", false}, // other version
		{"documento_8_1_42_3_p0001.json", false}, // other master
		{"documento_7_1_42_5_p0001.json", false}, // other group
	}
	for _, tt := range tests {
		other, err := Parse(tt.name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.name, err)
		}
		if got := base.Sibling(other); got != tt.want {
			t.Errorf("Sibling(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSiblingAcrossSchemes(t *testing.T) {
	current, _ := Parse("documento_7_1_42_3_p0001.json")
	legacy, _ := Parse("documento_7_3_p0001.json")
	// legacy keys carry no version, so they never merge with versioned keys
	if current.Sibling(legacy) {
		t.Error("versioned and unversioned keys must not be siblings")
	}
	legacy2, _ := Parse("documento_7_3_p0002.json")
	if !legacy.Sibling(legacy2) {
		t.Error("two flat legacy pages of one master/group must be siblings")
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	names := []string{
		"documento_7_1_42_3_p0002.json",
		"documento_7_1_42_loose_p0001.json",
		"documento_9_4_p0012.json",
	}
	for _, name := range names {
		k, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		back, err := Parse(k.Filename())
		if err != nil {
			t.Fatalf("Parse(Filename(%q)): %v", name, err)
		}
		if back != k {
			t.Errorf("round trip %q: %+v != %+v", name, back, k)
		}
	}
}

func TestDocumentID(t *testing.T) {
	current, _ := Parse("documento_7_1_42_3_p0001.json")
	if current.DocumentID() != "1" {
		t.Errorf("DocumentID = %q, want version id", current.DocumentID())
	}
	legacy, _ := Parse("documento_9_4_p0001.json")
	if legacy.DocumentID() != "9" {
		t.Errorf("DocumentID = %q, want master id", legacy.DocumentID())
	}
}

func TestGlobalFilename(t *testing.T) {
	k, _ := Parse("documento_7_1_42_3_p0001.json")
	if got := k.GlobalFilename(); got != "documento_7_3_global.json" {
		t.Errorf("GlobalFilename = %q", got)
	}
}
