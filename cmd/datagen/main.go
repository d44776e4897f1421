package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/vanshika/filmgraph/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		persons         = flag.Int("persons", cfg.NumPersons, "number of persons to generate")
		movies          = flag.Int("movies", cfg.NumMovies, "number of movies to generate")
		biographyChance = flag.Float64("biography-chance", cfg.BiographyChance, "probability that a person carries a biography")
		influenceChance = flag.Float64("influence-chance", cfg.InfluenceChance, "probability that a person lists influences")
		maxInfluences   = flag.Int("max-influences", cfg.MaxInfluences, "upper bound on influences per list")
		seed            = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir       = flag.String("output-dir", "seed-data", "directory to write persons.json and movies.json")
		writeStdout     = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumPersons:      *persons,
		NumMovies:       *movies,
		BiographyChance: clampProbability(*biographyChance),
		InfluenceChance: clampProbability(*influenceChance),
		MaxInfluences:   *maxInfluences,
		Seed:            *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dataset, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d persons and %d movies into %s\n", len(dataset.Persons), len(dataset.Movies), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
