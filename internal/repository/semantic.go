package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/Tomaxido/validocu/internal/common"
	"github.com/Tomaxido/validocu/internal/entity"
)

// SemanticRepository persists page-level and document-level canonical
// records. Each write is delete-then-insert by key: at most one row per key
// after a successful write, intentionally not atomic against concurrent
// writers of the same key.
type SemanticRepository interface {
	UpsertPageRecord(ctx context.Context, rec *entity.PageRecord) error
	UpsertDocumentRecord(ctx context.Context, rec *entity.DocumentRecord) error
}

type semanticRepository struct {
	pool      *pgxpool.Pool
	schema    *SchemaCache
	pageTable string
	docTable  string
	logger    *slog.Logger
}

func NewSemanticRepository(pool *pgxpool.Pool, schema *SchemaCache, pageTable, docTable string, logger *slog.Logger) SemanticRepository {
	return &semanticRepository{
		pool:      pool,
		schema:    schema,
		pageTable: pageTable,
		docTable:  docTable,
		logger:    logger,
	}
}

func (r *semanticRepository) UpsertPageRecord(ctx context.Context, rec *entity.PageRecord) error {
	// a NULL key would make the delete match nothing and pile up rows
	if rec.PageID == "" {
		return fmt.Errorf("page record without page id: %w", common.ErrInvalidInput)
	}
	fields := []Field{
		{Name: "document_version_id", Value: idValue(rec.VersionID)},
		{Name: "document_page_id", Value: idValue(rec.PageID)},
		{Name: "document_group_id", Value: idValue(rec.GroupID)},
		{Name: "resumen", Value: rec.Resumen},
		{Name: "json_layout", Value: string(rec.Layout)},
		{Name: "embedding", Value: embeddingValue(rec.Embedding)},
		{Name: "archivo", Value: rec.Archivo},
	}
	return r.deleteThenInsert(ctx, r.pageTable, "document_page_id", idValue(rec.PageID), fields)
}

func (r *semanticRepository) UpsertDocumentRecord(ctx context.Context, rec *entity.DocumentRecord) error {
	if rec.VersionID == "" {
		return fmt.Errorf("document record without document id: %w", common.ErrInvalidInput)
	}
	fields := []Field{
		{Name: "document_version_id", Value: idValue(rec.VersionID)},
		{Name: "document_group_id", Value: idValue(rec.GroupID)},
		{Name: "resumen", Value: rec.Resumen},
		{Name: "json_layout", Value: string(rec.Layout)},
		{Name: "json_global", Value: string(rec.Global)},
		{Name: "embedding", Value: embeddingValue(rec.Embedding)},
		{Name: "archivo", Value: rec.Archivo},
		{Name: "created_at", Value: rec.CreatedAt},
		{Name: "updated_at", Value: rec.UpdatedAt},
	}
	return r.deleteThenInsert(ctx, r.docTable, "document_version_id", idValue(rec.VersionID), fields)
}

// deleteThenInsert removes any existing row for the key, then inserts only
// the fields present in the table's introspected column set.
func (r *semanticRepository) deleteThenInsert(ctx context.Context, table, keyCol string, keyVal any, fields []Field) error {
	cols, err := r.schema.Columns(ctx, table)
	if err != nil {
		return err
	}
	kept, err := FilterFields(fields, cols)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	delSQL := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, quoteIdent(table), quoteIdent(keyCol))
	if _, err := r.pool.Exec(ctx, delSQL, keyVal); err != nil {
		r.logger.Error("delete failed", "table", table, "key", keyVal, "error", err)
		return fmt.Errorf("delete from %s: %w", table, err)
	}

	names := make([]string, len(kept))
	marks := make([]string, len(kept))
	args := make([]any, len(kept))
	for i, f := range kept {
		names[i] = quoteIdent(f.Name)
		marks[i] = "$" + strconv.Itoa(i+1)
		args[i] = f.Value
	}
	insSQL := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "))
	if _, err := r.pool.Exec(ctx, insSQL, args...); err != nil {
		r.logger.Error("insert failed", "table", table, "key", keyVal, "error", err)
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	r.logger.Info("record upserted", "table", table, "key", keyVal, "columns", len(kept))
	return nil
}

// idValue turns numeric id strings into int64 so integer key columns accept
// them; UUID-shaped legacy ids pass through as text.
func idValue(id string) any {
	if id == "" {
		return nil
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

// embeddingValue maps an empty best-effort embedding to NULL; a pgvector
// column rejects a zero-dimension literal.
func embeddingValue(v pgvector.Vector) any {
	if len(v.Slice()) == 0 {
		return nil
	}
	return v
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
