package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/Tomaxido/validocu/internal/arbitrate"
	"github.com/Tomaxido/validocu/internal/common"
	"github.com/Tomaxido/validocu/internal/dockey"
	"github.com/Tomaxido/validocu/internal/embedding"
	"github.com/Tomaxido/validocu/internal/entity"
	"github.com/Tomaxido/validocu/internal/layout"
	"github.com/Tomaxido/validocu/internal/repository"
)

// Aggregator consolidates one freshly processed page with its siblings and
// persists both canonical views. The two table writes are independent: one
// failing never rolls back the other.
type Aggregator struct {
	cfg      common.SemanticConfig
	index    SiblingIndex
	store    repository.SemanticRepository
	embedder embedding.Embedder
	logger   *slog.Logger
	now      func() time.Time
}

func NewAggregator(
	cfg common.SemanticConfig,
	index SiblingIndex,
	store repository.SemanticRepository,
	embedder embedding.Embedder,
	logger *slog.Logger,
) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if embedder == nil {
		embedder = embedding.Noop{}
	}
	return &Aggregator{
		cfg:      cfg,
		index:    index,
		store:    store,
		embedder: embedder,
		logger:   logger,
		now:      time.Now,
	}
}

// Result reports the independent per-table outcomes of one invocation.
type Result struct {
	Key         dockey.Key
	PageWritten bool
	DocWritten  bool
	PageErr     error
	DocErr      error
	Siblings    int
	Labels      int
}

// Failed reports whether any required write failed.
func (r Result) Failed() bool {
	return r.PageErr != nil || r.DocErr != nil
}

// ProcessArtifact runs the full consolidation for one page artifact: persist
// the page's own record, discover and merge siblings, arbitrate per label,
// and persist the document record. A returned error means this page could
// not be processed at all; write failures are carried in the Result instead.
func (a *Aggregator) ProcessArtifact(ctx context.Context, path string) (Result, error) {
	key, err := dockey.Parse(path)
	if err != nil {
		return Result{}, err
	}
	res := Result{Key: key}

	log := a.logger.With("archivo", filepath.Base(path), "master_id", key.MasterID,
		"group_id", key.GroupID, "page", key.Page)
	log.Info("aggregate.start", "scheme", key.Scheme.String())

	pageSpans, err := layout.Load(path, a.cfg.MinConfidence)
	if err != nil {
		return res, fmt.Errorf("load page artifact: %w", err)
	}
	for i := range pageSpans {
		if pageSpans[i].Page == 0 {
			pageSpans[i].Page = key.Page
		}
	}

	// page-level record, independent of aggregation success; legacy flat keys
	// carry no page id, so there is nothing to key the page row by
	if key.PageID == "" {
		log.Info("aggregate.page.skipped", "reason", "key has no page id")
	} else {
		res.PageErr = a.writePageRecord(ctx, key, path, pageSpans)
		res.PageWritten = res.PageErr == nil
	}

	// sibling discovery degrades to the current page alone
	merged := a.mergeSiblings(key, path, pageSpans, &res, log)

	global := arbitrate.BuildGlobal(merged)
	res.Labels = len(global)
	resumen := BuildResumen(global)
	log.Info("aggregate.global.built", "labels", res.Labels)

	if a.cfg.WriteGlobalFile {
		a.writeGlobalFile(key, global, log)
	}

	res.DocErr = a.writeDocumentRecord(ctx, key, path, merged, global, resumen)
	res.DocWritten = res.DocErr == nil

	log.Info("aggregate.done",
		"page_written", res.PageWritten,
		"doc_written", res.DocWritten,
		"siblings", res.Siblings,
		"labels", res.Labels,
	)
	return res, nil
}

func (a *Aggregator) writePageRecord(ctx context.Context, key dockey.Key, path string, spans []layout.EntitySpan) error {
	layoutJSON, err := json.Marshal(spans)
	if err != nil {
		return fmt.Errorf("marshal page layout: %w", err)
	}
	resumen := BuildPageResumen(key.Page, key.MasterID, key.GroupID)
	rec := &entity.PageRecord{
		VersionID: key.VersionID,
		PageID:    key.PageID,
		GroupID:   key.GroupID,
		Resumen:   resumen,
		Layout:    layoutJSON,
		Embedding: a.embed(ctx, resumen),
		Archivo:   filepath.Base(path),
	}
	return a.store.UpsertPageRecord(ctx, rec)
}

// mergeSiblings loads every sibling's spans, tagging each with its page
// number. Unreadable siblings simply do not contribute; a failed discovery
// falls back to the current page's own spans.
func (a *Aggregator) mergeSiblings(key dockey.Key, path string, pageSpans []layout.EntitySpan, res *Result, log *slog.Logger) []layout.EntitySpan {
	siblings, err := a.index.Siblings(key)
	if err != nil {
		log.Warn("aggregate.siblings.discovery_failed", "error", err)
		res.Siblings = 1
		return pageSpans
	}
	res.Siblings = len(siblings)
	log.Info("aggregate.siblings.found", "count", len(siblings))

	var merged []layout.EntitySpan
	currentMerged := false
	for _, sib := range siblings {
		if filepath.Clean(sib.Path) == filepath.Clean(path) {
			merged = append(merged, pageSpans...)
			currentMerged = true
			continue
		}
		spans, err := layout.Load(sib.Path, a.cfg.MinConfidence)
		if err != nil {
			log.Warn("aggregate.siblings.unreadable", "sibling", filepath.Base(sib.Path), "error", err)
			continue
		}
		for i := range spans {
			if spans[i].Page == 0 {
				spans[i].Page = sib.Key.Page
			}
		}
		merged = append(merged, spans...)
	}
	// the processed artifact may live outside the scanned folder; its spans
	// still belong to the document
	if !currentMerged {
		merged = append(merged, pageSpans...)
		res.Siblings = len(siblings) + 1
	}
	return merged
}

func (a *Aggregator) writeDocumentRecord(ctx context.Context, key dockey.Key, path string, merged []layout.EntitySpan, global map[string]string, resumen string) error {
	layoutJSON, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshal merged layout: %w", err)
	}
	globalJSON, err := json.Marshal(global)
	if err != nil {
		return fmt.Errorf("marshal global map: %w", err)
	}
	now := a.now().UTC()
	rec := &entity.DocumentRecord{
		VersionID: key.DocumentID(),
		GroupID:   key.GroupID,
		Resumen:   resumen,
		Layout:    layoutJSON,
		Global:    globalJSON,
		Embedding: a.embed(ctx, resumen),
		Archivo:   filepath.Base(path),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return a.store.UpsertDocumentRecord(ctx, rec)
}

// embed is best-effort: failures degrade to an empty vector.
func (a *Aggregator) embed(ctx context.Context, text string) pgvector.Vector {
	vec, err := a.embedder.Embed(ctx, text)
	if err != nil {
		a.logger.Warn("aggregate.embedding.failed", "error", err)
		return pgvector.NewVector(nil)
	}
	return pgvector.NewVector(vec)
}

func (a *Aggregator) writeGlobalFile(key dockey.Key, global map[string]string, log *slog.Logger) {
	data, err := json.MarshalIndent(global, "", "  ")
	if err != nil {
		log.Warn("aggregate.global_file.encode_failed", "error", err)
		return
	}
	out := filepath.Join(a.cfg.ArtifactDir, key.GlobalFilename())
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Warn("aggregate.global_file.write_failed", "path", out, "error", err)
		return
	}
	log.Info("aggregate.global_file.written", "path", out)
}
