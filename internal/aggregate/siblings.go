// Package aggregate merges all sibling pages of a logical document into one
// canonical record and persists both the page- and document-level views.
package aggregate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tomaxido/validocu/internal/common"
	"github.com/Tomaxido/validocu/internal/dockey"
)

// SiblingPage is one discovered page artifact of a document.
type SiblingPage struct {
	Key  dockey.Key
	Path string
}

// SiblingIndex enumerates the page artifacts sharing a key's document
// identity. Implementations decide the discovery mechanism; the aggregator
// only depends on this interface.
type SiblingIndex interface {
	Siblings(key dockey.Key) ([]SiblingPage, error)
}

// FSIndex discovers siblings by scanning an artifact folder for
// documento_*.json files and matching their parsed keys.
type FSIndex struct {
	dir    string
	logger *slog.Logger
}

func NewFSIndex(dir string, logger *slog.Logger) *FSIndex {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIndex{dir: dir, logger: logger}
}

// Siblings returns every artifact in the folder whose key matches the given
// document identity, ordered by page number. Artifacts with malformed names
// are skipped, never fatal.
func (ix *FSIndex) Siblings(key dockey.Key) ([]SiblingPage, error) {
	entries, err := os.ReadDir(ix.dir)
	if err != nil {
		return nil, fmt.Errorf("scan artifact folder: %w", err)
	}

	var pages []SiblingPage
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "documento_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasSuffix(name, "_global.json") {
			continue
		}
		k, err := dockey.Parse(name)
		if err != nil {
			if errors.Is(err, common.ErrMalformedKey) {
				ix.logger.Debug("skipping artifact with unrecognized name", "file", name)
				continue
			}
			return nil, err
		}
		if !key.Sibling(k) {
			continue
		}
		pages = append(pages, SiblingPage{Key: k, Path: filepath.Join(ix.dir, name)})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Key.Page < pages[j].Key.Page })
	return pages, nil
}
