package aggregate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tomaxido/validocu/internal/dockey"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFSIndexSiblings(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "documento_7_1_102_3_p0003.json")
	touch(t, dir, "documento_7_1_100_3_p0001.json")
	touch(t, dir, "documento_7_1_101_3_p0002.json")
	touch(t, dir, "documento_7_2_200_3_p0001.json") // other version
	touch(t, dir, "documento_8_1_300_3_p0001.json") // other master
	touch(t, dir, "documento_7_1_103_4_p0004.json") // other group
	touch(t, dir, "documento_7_3_global.json")      // side artifact
	touch(t, dir, "resumen.json")                   // unrelated
	touch(t, dir, "documento_garbage.json")         // malformed, skipped

	key, err := dockey.Parse("documento_7_1_100_3_p0001.json")
	if err != nil {
		t.Fatal(err)
	}
	pages, err := NewFSIndex(dir, nil).Siblings(key)
	if err != nil {
		t.Fatalf("Siblings: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d siblings, want 3", len(pages))
	}
	for i, p := range pages {
		if p.Key.Page != i+1 {
			t.Errorf("pages not ordered: index %d has page %d", i, p.Key.Page)
		}
	}
}

func TestFSIndexMissingFolder(t *testing.T) {
	ix := NewFSIndex(filepath.Join(t.TempDir(), "nope"), nil)
	if _, err := ix.Siblings(dockey.Key{MasterID: "7", GroupID: "3"}); err == nil {
		t.Error("expected error for missing folder")
	}
}

func TestFSIndexLegacySiblings(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "documento_42_loose_p0001.json")
	touch(t, dir, "documento_42_loose_p0002.json")
	touch(t, dir, "documento_42_9_p0001.json") // grouped, different identity

	key, err := dockey.Parse("documento_42_loose_p0001.json")
	if err != nil {
		t.Fatal(err)
	}
	pages, err := NewFSIndex(dir, nil).Siblings(key)
	if err != nil {
		t.Fatalf("Siblings: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d siblings, want 2", len(pages))
	}
}
