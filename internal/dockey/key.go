// Package dockey parses the artifact naming scheme that encodes document
// identity, and decides which artifacts are sibling pages of one document.
package dockey

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Tomaxido/validocu/internal/common"
)

// Scheme identifies which naming generation an artifact key came from.
type Scheme int

const (
	// SchemeCurrent is documento_{master}_{version}_{page}_{group|loose}_pNNNN,
	// all-numeric ids with a literal "loose" sentinel for ungrouped documents.
	SchemeCurrent Scheme = iota
	// SchemeLegacyDoc is documento_{master}_{doc}_{group}_pN, ids numeric or
	// UUID-shaped, no version.
	SchemeLegacyDoc
	// SchemeLegacyFlat is documento_{master}_{group}_pN, the oldest shape.
	SchemeLegacyFlat
)

func (s Scheme) String() string {
	switch s {
	case SchemeCurrent:
		return "current"
	case SchemeLegacyDoc:
		return "legacy-doc"
	case SchemeLegacyFlat:
		return "legacy-flat"
	default:
		return "unknown"
	}
}

// LooseGroup is the group sentinel for documents not assigned to any group.
const LooseGroup = "loose"

// Key identifies one page artifact and the logical document it belongs to.
// Two keys with equal (MasterID, VersionID, GroupID) are sibling pages; Page
// orders them but never participates in identity.
type Key struct {
	MasterID  string
	VersionID string // empty on legacy schemes
	PageID    string // empty on the flat legacy scheme
	GroupID   string // numeric, UUID-shaped, or LooseGroup
	Page      int
	Scheme    Scheme
}

const prefix = "documento_"

var (
	numericRe = regexp.MustCompile(`^\d+$`)
	hexIDRe   = regexp.MustCompile(`^[a-f0-9\-]+$`)
	pageRe    = regexp.MustCompile(`^p(\d+)$`)
)

// isLegacyID accepts the id shapes the old pipeline produced: plain numbers,
// UUIDs, and bare hex runs.
func isLegacyID(s string) bool {
	if s == "" {
		return false
	}
	if numericRe.MatchString(s) {
		return true
	}
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	return hexIDRe.MatchString(s)
}

func isGroupID(s string) bool {
	return s == LooseGroup || isLegacyID(s)
}

// Parse parses an artifact name or path into a Key. The ".json" extension is
// optional. Returns common.ErrMalformedKey when no scheme matches.
func Parse(name string) (Key, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, ".json")
	if !strings.HasPrefix(base, prefix) {
		return Key{}, fmt.Errorf("%q: %w", name, common.ErrMalformedKey)
	}

	parts := strings.Split(strings.TrimPrefix(base, prefix), "_")
	if len(parts) < 3 {
		return Key{}, fmt.Errorf("%q: %w", name, common.ErrMalformedKey)
	}
	pm := pageRe.FindStringSubmatch(parts[len(parts)-1])
	if pm == nil {
		return Key{}, fmt.Errorf("%q: missing page suffix: %w", name, common.ErrMalformedKey)
	}
	page, _ := strconv.Atoi(pm[1])
	ids := parts[:len(parts)-1]

	switch len(ids) {
	case 4: // current: master, version, page, group
		if numericRe.MatchString(ids[0]) && numericRe.MatchString(ids[1]) &&
			numericRe.MatchString(ids[2]) && isGroupID(ids[3]) {
			return Key{
				MasterID:  ids[0],
				VersionID: ids[1],
				PageID:    ids[2],
				GroupID:   ids[3],
				Page:      page,
				Scheme:    SchemeCurrent,
			}, nil
		}
	case 3: // legacy with doc id: master, doc, group
		if isLegacyID(ids[0]) && isLegacyID(ids[1]) && isGroupID(ids[2]) {
			return Key{
				MasterID: ids[0],
				PageID:   ids[1],
				GroupID:  ids[2],
				Page:     page,
				Scheme:   SchemeLegacyDoc,
			}, nil
		}
	case 2: // oldest: master, group
		if isLegacyID(ids[0]) && isGroupID(ids[1]) {
			return Key{
				MasterID: ids[0],
				GroupID:  ids[1],
				Page:     page,
				Scheme:   SchemeLegacyFlat,
			}, nil
		}
	}
	return Key{}, fmt.Errorf("%q: %w", name, common.ErrMalformedKey)
}

// Sibling reports whether other belongs to the same logical document: equal
// master, version and group. Page and page-artifact ids never participate.
func (k Key) Sibling(other Key) bool {
	return k.MasterID == other.MasterID &&
		k.VersionID == other.VersionID &&
		k.GroupID == other.GroupID
}

// Loose reports whether the key's document is ungrouped.
func (k Key) Loose() bool {
	return k.GroupID == LooseGroup
}

// Filename reconstructs the canonical artifact name for this key.
func (k Key) Filename() string {
	switch k.Scheme {
	case SchemeLegacyDoc:
		return fmt.Sprintf("%s%s_%s_%s_p%04d.json", prefix, k.MasterID, k.PageID, k.GroupID, k.Page)
	case SchemeLegacyFlat:
		return fmt.Sprintf("%s%s_%s_p%04d.json", prefix, k.MasterID, k.GroupID, k.Page)
	default:
		return fmt.Sprintf("%s%s_%s_%s_%s_p%04d.json", prefix, k.MasterID, k.VersionID, k.PageID, k.GroupID, k.Page)
	}
}

// GlobalFilename names the optional standalone canonical-map side artifact
// for the key's document.
func (k Key) GlobalFilename() string {
	return fmt.Sprintf("%s%s_%s_global.json", prefix, k.MasterID, k.GroupID)
}

// DocumentID is the document-level persistence key: the version id on the
// current scheme, falling back to the master id on legacy keys.
func (k Key) DocumentID() string {
	if k.VersionID != "" {
		return k.VersionID
	}
	return k.MasterID
}
