package entity

import (
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// PageRecord is the canonical representation of a single page's spans,
// persisted to the page-level index. Keyed by PageID; overwritten whole
// every time the page is (re)processed.
type PageRecord struct {
	VersionID string          `json:"document_version_id"`
	PageID    string          `json:"document_page_id"`
	GroupID   string          `json:"document_group_id"`
	Resumen   string          `json:"resumen"`
	Layout    json.RawMessage `json:"json_layout"`
	Embedding pgvector.Vector `json:"-"`
	Archivo   string          `json:"archivo"`
}

// DocumentRecord is the materialized consolidation of all sibling pages:
// merged spans, the canonical field map and its summary. Keyed by the
// document-level id; fully recomputed whenever any sibling page changes.
type DocumentRecord struct {
	VersionID string          `json:"document_version_id"`
	GroupID   string          `json:"document_group_id"`
	Resumen   string          `json:"resumen"`
	Layout    json.RawMessage `json:"json_layout"`
	Global    json.RawMessage `json:"json_global"`
	Embedding pgvector.Vector `json:"-"`
	Archivo   string          `json:"archivo"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
