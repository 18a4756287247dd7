package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gauntlet-ai/gauntlet/internal/models"
	"github.com/gauntlet-ai/gauntlet/internal/recommend"
	"github.com/gauntlet-ai/gauntlet/internal/results"
)

// loadRun loads a harness results file, dispatching on extension. CSV files
// carry no model identifier, so one is derived from the file name unless the
// caller supplies one.
func loadRun(path, modelKey string) (models.ModelRun, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		if modelKey == "" {
			modelKey = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return results.LoadCSV(path, modelKey)
	}
	return results.LoadJSON(path)
}

// loadModelResults loads every results file in argument order. Order matters:
// it breaks ranking ties.
func loadModelResults(paths []string) ([]recommend.ModelResults, error) {
	loaded := make([]recommend.ModelResults, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		run, err := loadRun(path, "")
		if err != nil {
			return nil, err
		}
		if seen[run.Model] {
			return nil, fmt.Errorf("duplicate results for model %q (%s)", run.Model, path)
		}
		seen[run.Model] = true
		loaded = append(loaded, recommend.ModelResults{Key: run.Model, Outcomes: run.Outcomes})
	}
	return loaded, nil
}

// openOutput returns the report destination: the given file, or stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
