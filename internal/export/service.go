// Package export renders the consolidated field maps of an artifact folder
// into an XLSX workbook, one row per logical document.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Tomaxido/validocu/internal/aggregate"
	"github.com/Tomaxido/validocu/internal/arbitrate"
	"github.com/Tomaxido/validocu/internal/dockey"
	"github.com/Tomaxido/validocu/internal/layout"
)

// Service walks an artifact folder, re-runs the per-document arbitration and
// produces XLSX bytes summarizing every document found.
type Service struct {
	minConfidence float32
	logger        *slog.Logger
}

func NewService(minConfidence float32, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{minConfidence: minConfidence, logger: logger}
}

type docGroup struct {
	key   dockey.Key
	pages []aggregate.SiblingPage
}

// identity keys the grouping; page and page-artifact ids never participate.
func identity(k dockey.Key) string {
	return k.MasterID + "\x00" + k.VersionID + "\x00" + k.GroupID
}

// ExportGlobalsXLSX scans dir for page artifacts, groups them into logical
// documents and writes one summary row per document.
func (s *Service) ExportGlobalsXLSX(ctx context.Context, dir string) ([]byte, error) {
	start := time.Now()

	groups, err := s.collect(dir)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Documentos"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{
		"Documento",
		"Versión",
		"Grupo",
		"Páginas",
		"Tipo",
		"RUT Deudor",
		"Nombre Deudor",
		"Monto",
		"Fecha Escritura",
		"Tasa",
		"Plazo",
		"Resumen",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		global, pages := s.consolidate(g)

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, g.key.MasterID)
		write(2, g.key.VersionID)
		write(3, g.key.GroupID)
		write(4, pages)
		write(5, global["TIPO_DOCUMENTO"])
		write(6, firstOf(global, "RUT_DEUDOR", "RUT"))
		write(7, firstOf(global, "NOMBRE_COMPLETO_DEUDOR", "NOMBRE_COMPLETO"))
		write(8, global["MONTO"])
		write(9, global["FECHA_ESCRITURA"])
		write(10, global["TASA"])
		write(11, global["PLAZO"])
		write(12, truncate(aggregate.BuildResumen(global), 200))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 8)
	_ = f.SetColWidth(sheet, "E", "G", 24)
	_ = f.SetColWidth(sheet, "H", "K", 16)
	_ = f.SetColWidth(sheet, "L", "L", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"documents", len(groups),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// collect groups every parseable page artifact in dir by document identity,
// skipping side artifacts and files with unrecognized names.
func (s *Service) collect(dir string) ([]docGroup, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan artifact folder: %w", err)
	}

	byID := map[string]*docGroup{}
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
			s.logger.Debug("skipping artifact with unrecognized name", "file", name)
			continue
		}
		id := identity(k)
		g, ok := byID[id]
		if !ok {
			g = &docGroup{key: k}
			byID[id] = g
		}
		g.pages = append(g.pages, aggregate.SiblingPage{Key: k, Path: filepath.Join(dir, name)})
	}

	groups := make([]docGroup, 0, len(byID))
	for _, g := range byID {
		sort.Slice(g.pages, func(i, j int) bool { return g.pages[i].Key.Page < g.pages[j].Key.Page })
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return identity(groups[i].key) < identity(groups[j].key) })
	return groups, nil
}

// consolidate merges a document's page spans and arbitrates its field map,
// returning the map and the count of readable pages.
func (s *Service) consolidate(g docGroup) (map[string]string, int) {
	var merged []layout.EntitySpan
	readable := 0
	for _, p := range g.pages {
		spans, err := layout.Load(p.Path, s.minConfidence)
		if err != nil {
			s.logger.Warn("export.page.unreadable", "file", filepath.Base(p.Path), "error", err)
			continue
		}
		for i := range spans {
			if spans[i].Page == 0 {
				spans[i].Page = p.Key.Page
			}
		}
		merged = append(merged, spans...)
		readable++
	}
	return arbitrate.BuildGlobal(merged), readable
}

func firstOf(global map[string]string, labels ...string) string {
	for _, l := range labels {
		if v := global[l]; v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
