package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Dataset file names inside an output directory.
const (
	PersonsFile = "persons.json"
	MoviesFile  = "movies.json"
)

// WriteDataset serializes the dataset into persons.json and movies.json under the provided directory.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, PersonsFile), dataset.Persons); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, MoviesFile), dataset.Movies)
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}
