// Package config loads CLI defaults from a TOML file.
//
// The library packages never read configuration implicitly; only the CLI
// resolves a config file and translates it into pipeline options. Zero-value
// fields fall back to the pipeline defaults, so a partial config is fine:
//
//	cutoff = 6.0
//	decay = "exponential"
//	cache_dir = "~/.cache/crystalgraph"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

// Config holds the user-tunable defaults for graph construction.
type Config struct {
	Cutoff       float64 `toml:"cutoff"`
	MaxNeighbors int     `toml:"max_neighbors"`
	Decay        string  `toml:"decay"`
	Voronoi      bool    `toml:"voronoi"`
	CacheDir     string  `toml:"cache_dir"`
}

// DefaultPath returns the conventional config location,
// ~/.config/crystalgraph/config.toml, or "" if the home directory is
// unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "crystalgraph", "config.toml")
}

// Load reads a config file. A missing file is not an error: it returns a
// zero Config, so callers can always Load(DefaultPath()).
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}
