// Package cli implements the crystalgraph command-line interface.
//
// This package provides commands for building structure graphs from crystal
// and molecule files, rendering them as diagrams, inspecting artifacts, and
// managing the construction cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Construct a graph from a structure file or artifact
//   - render: Generate DOT, SVG, or PNG diagrams from artifacts
//   - inspect: Browse an artifact's edges interactively
//   - cache: Manage the construction cache
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"os"
	"path/filepath"

	"github.com/larsmk/crystalgraph/pkg/cache"
	"github.com/larsmk/crystalgraph/pkg/config"
	"github.com/larsmk/crystalgraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "crystalgraph"

// newBuilder creates a pipeline builder for CLI use.
func newBuilder(cfg config.Config, noCache bool) (*pipeline.Builder, error) {
	c, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewBuilder(c, nil, nil), nil
}

func newCache(cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := cfg.CacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/crystalgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// optionsFromConfig seeds pipeline options from the loaded config file.
// Flags set by the user override these afterwards.
func optionsFromConfig(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Cutoff:       cfg.Cutoff,
		MaxNeighbors: cfg.MaxNeighbors,
		Decay:        cfg.Decay,
		Voronoi:      cfg.Voronoi,
	}
}
