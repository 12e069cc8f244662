// Command summary-export writes an XLSX workbook summarizing every document
// found in an artifact folder, one row per document.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Tomaxido/validocu/internal/common"
	"github.com/Tomaxido/validocu/internal/export"
)

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir = flag.String("dir", "", "artifact folder to summarize (defaults to JSON_FOLDER)")
		out = flag.String("out", "", "output XLSX path (defaults to documentos.xlsx next to the folder)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *dir == "" {
		*dir = cfg.Semantic.ArtifactDir
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "documentos.xlsx")
	}

	data, err := export.NewService(cfg.Semantic.MinConfidence, logger).ExportGlobalsXLSX(context.Background(), *dir)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		printError("Error: writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", *out, "bytes", len(data))
}
