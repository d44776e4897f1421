package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/vanshika/filmgraph/internal/app"
	"github.com/vanshika/filmgraph/internal/config"
	"github.com/vanshika/filmgraph/internal/generator"
	"github.com/vanshika/filmgraph/internal/logging"
	"github.com/vanshika/filmgraph/internal/service"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "./seed-data", "Directory containing persons.json and movies.json")
		personsArg = flag.String("persons", "", "Path to persons.json (overrides dataset-dir)")
		moviesArg  = flag.String("movies", "", "Path to movies.json (overrides dataset-dir)")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With(zap.String("component", "ingest"))
	defer func() { _ = logger.Sync() }()

	personsFile, moviesFile, err := resolveDatasetPaths(*datasetDir, *personsArg, *moviesArg)
	if err != nil {
		logger.Error("dataset resolution failed", zap.Error(err))
		os.Exit(1)
	}

	var movies []service.MovieInput
	if err := loadJSON(moviesFile, &movies); err != nil {
		logger.Error("failed to load movies", zap.Error(err), zap.String("path", moviesFile))
		os.Exit(1)
	}
	var persons []service.PersonInput
	if err := loadJSON(personsFile, &persons); err != nil {
		logger.Error("failed to load persons", zap.Error(err), zap.String("path", personsFile))
		os.Exit(1)
	}
	if len(persons) == 0 && len(movies) == 0 {
		logger.Error("dataset empty", zap.String("persons", personsFile), zap.String("movies", moviesFile))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	catalog, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open catalog", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := catalog.Close(context.Background()); err != nil {
			logger.Warn("closing graph driver failed", zap.Error(err))
		}
	}()

	ingestor := service.NewBulkIngestor(catalog.Service, *workers)

	start := time.Now()
	logger.Info("ingesting movies", zap.Int("count", len(movies)), zap.Int("workers", *workers))
	if err := ingestor.IngestMovies(ctx, movies); err != nil {
		logger.Error("movie ingestion failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("ingesting persons", zap.Int("count", len(persons)))
	if err := ingestor.IngestPersons(ctx, persons); err != nil {
		logger.Error("person ingestion failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		zap.Duration("duration", time.Since(start)),
		zap.Int("persons", len(persons)),
		zap.Int("movies", len(movies)),
	)
}

func resolveDatasetPaths(baseDir, personsPath, moviesPath string) (string, string, error) {
	resolve := func(explicitPath, fallbackFile string) (string, error) {
		if explicitPath != "" {
			if _, err := os.Stat(explicitPath); err != nil {
				return "", fmt.Errorf("stat %s: %w", explicitPath, err)
			}
			return explicitPath, nil
		}
		path := filepath.Join(baseDir, fallbackFile)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", errMissingDataset, path)
		}
		return path, nil
	}

	personsFile, err := resolve(personsPath, generator.PersonsFile)
	if err != nil {
		return "", "", err
	}
	moviesFile, err := resolve(moviesPath, generator.MoviesFile)
	if err != nil {
		return "", "", err
	}
	return personsFile, moviesFile, nil
}

func loadJSON(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
