package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Tomaxido/validocu/internal/common"
)

// TableColumns is the schema-capability set for one table: the column names
// the store actually has, introspected at run time.
type TableColumns map[string]struct{}

// Has reports whether the table has a column with the given name.
func (c TableColumns) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Names returns the column names sorted, for logging.
func (c TableColumns) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Field is one payload column candidate. Payloads are ordered slices rather
// than maps so the generated SQL is deterministic.
type Field struct {
	Name  string
	Value any
}

// FilterFields keeps only the fields whose names exist as columns. Fields
// absent from the schema are dropped silently; a zero intersection is a hard
// failure for the write.
func FilterFields(fields []Field, cols TableColumns) ([]Field, error) {
	kept := make([]Field, 0, len(fields))
	for _, f := range fields {
		if cols.Has(f.Name) {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil, common.ErrNoColumns
	}
	return kept, nil
}

// SchemaCache introspects each table's columns once per run and caches the
// result, so column drift is absorbed without per-write catalog queries.
type SchemaCache struct {
	pool   *pgxpool.Pool
	logger *slog.Logger

	mu     sync.Mutex
	tables map[string]TableColumns
}

func NewSchemaCache(pool *pgxpool.Pool, logger *slog.Logger) *SchemaCache {
	return &SchemaCache{
		pool:   pool,
		logger: logger,
		tables: make(map[string]TableColumns),
	}
}

// Columns returns the column set for a table, querying information_schema on
// first use.
func (s *SchemaCache) Columns(ctx context.Context, table string) (TableColumns, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cols, ok := s.tables[table]; ok {
		return cols, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_name = $1`, table)
	if err != nil {
		return nil, fmt.Errorf("introspect columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(TableColumns)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		cols[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect columns of %s: %w", table, err)
	}

	s.logger.Info("introspected table columns", "table", table, "columns", cols.Names())
	s.tables[table] = cols
	return cols, nil
}
