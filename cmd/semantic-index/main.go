// Command semantic-index consolidates page extraction artifacts into the
// semantic index tables. It processes one artifact, or every artifact in a
// folder, and exits 2 when the store is unreachable or any write fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Tomaxido/validocu/internal/aggregate"
	"github.com/Tomaxido/validocu/internal/async"
	"github.com/Tomaxido/validocu/internal/common"
	"github.com/Tomaxido/validocu/internal/embedding"
	repo "github.com/Tomaxido/validocu/internal/repository"
)

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file    = flag.String("file", "", "single page artifact to process")
		dir     = flag.String("dir", "", "process every page artifact in this folder (defaults to JSON_FOLDER)")
		workers = flag.Int("workers", 4, "concurrent consolidation workers in folder mode")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if *file == "" && *dir == "" {
		*dir = cfg.Semantic.ArtifactDir
	}
	if *file != "" && *dir != "" {
		printError("Error: --file and --dir are mutually exclusive\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := repo.Open(ctx, repo.Config(cfg.Database), logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(2)
	}
	defer repo.Close(pool, logger)

	if err := repo.HealthCheck(ctx, pool, time.Second, logger); err != nil {
		logger.Error("store unreachable", "error", err)
		os.Exit(2)
	}

	schema := repo.NewSchemaCache(pool, logger)
	store := repo.NewSemanticRepository(pool, schema, cfg.Semantic.PageTable, cfg.Semantic.DocTable, logger)

	var embedder embedding.Embedder = embedding.Noop{}
	if cfg.Embedding.Endpoint != "" {
		embedder = embedding.NewClient(embedding.Config{
			Endpoint: cfg.Embedding.Endpoint,
			Model:    cfg.Embedding.Model,
			Timeout:  cfg.Embedding.Timeout,
		}, logger)
	} else {
		logger.Warn("SEM_VECTOR_URL not configured, embeddings will be skipped")
	}

	index := aggregate.NewFSIndex(cfg.Semantic.ArtifactDir, logger)
	agg := aggregate.NewAggregator(cfg.Semantic, index, store, embedder, logger)

	paths, err := resolvePaths(*file, *dir)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Warn("no page artifacts found")
		return
	}

	// only store write failures drive the exit code; malformed or unreadable
	// artifacts are skipped and reported in the summary
	failed, skipped := 0, 0
	if *file != "" {
		res, err := agg.ProcessArtifact(ctx, paths[0])
		switch {
		case err != nil:
			logger.Warn("artifact skipped", "archivo", filepath.Base(paths[0]), "error", err)
			skipped++
		case res.Failed():
			logger.Error("write failed",
				"archivo", filepath.Base(paths[0]),
				"page_error", res.PageErr,
				"doc_error", res.DocErr,
			)
			failed++
		}
	} else {
		queue := async.NewAggregatorQueue(agg, logger, async.WithWorkers(*workers))
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				break
			}
			if err := queue.Enqueue(ctx, async.NewJob(path)); err != nil {
				logger.Warn("enqueue failed", "archivo", filepath.Base(path), "error", err)
				skipped++
			}
		}
		queue.Shutdown(context.Background())
		failed += queue.Failures()
		skipped += queue.Skipped()
	}

	logger.Info("run complete", "artifacts", len(paths), "failed", failed, "skipped", skipped)
	if failed > 0 {
		os.Exit(2)
	}
}

// resolvePaths expands the single-file or folder mode into the artifact list,
// skipping the global side files in folder mode.
func resolvePaths(file, dir string) ([]string, error) {
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, err
		}
		return []string{file}, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "documento_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasSuffix(name, "_global.json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}
