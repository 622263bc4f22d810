// Package pipeline provides the graph-construction facade for crystalgraph.
//
// This package implements the complete read → neighbor-search → build
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Construction paths
//
// A Builder exposes four ways to obtain a StructureGraph:
//
//  1. FromAdjacency: a precomputed weighted adjacency matrix plus elements
//  2. FromFile: a structure file (XYZ, POSCAR) or a serialized artifact
//  3. FromCrystal: an in-memory periodic crystal record
//  4. FromMolecule: a bond list without geometry (unit edge weights)
//
// FromFile is lenient: a missing file or a structure the pipeline cannot
// turn into a valid graph yields (nil, nil) with a warning logged, so batch
// callers can skip bad inputs without wrapping every call. The in-memory
// paths are strict and return every error.
//
// # Usage
//
//	builder := pipeline.NewBuilder(cache, nil, logger)
//	g, err := builder.FromFile(ctx, "NaCl.poscar", pipeline.Options{
//	    Cutoff:     6.0,
//	    OutputPath: "NaCl.cgr",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if g == nil {
//	    // input skipped, reason already logged
//	}
package pipeline

import (
	stdio "io"

	"github.com/charmbracelet/log"

	"github.com/larsmk/crystalgraph/pkg/decay"
	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/neighbors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCutoff is the default neighbor cutoff radius, matching
	// neighbors.DefaultCutoff.
	DefaultCutoff = neighbors.DefaultCutoff

	// DefaultMaxNeighbors is the default soft neighbor limit, matching
	// neighbors.DefaultMaxNeighbors.
	DefaultMaxNeighbors = neighbors.DefaultMaxNeighbors
)

// =============================================================================
// Options - Construction Configuration
// =============================================================================

// Options contains all configuration for graph construction.
// This struct supports JSON serialization for API requests.
type Options struct {
	// ID overrides the graph identifier. Empty means: base filename for
	// file paths, empty string for in-memory paths.
	ID string `json:"id,omitempty"`

	// OutputPath, when set, persists newly built graphs as an artifact.
	OutputPath string `json:"output_path,omitempty"`

	// Overwrite allows OutputPath to replace an existing file.
	Overwrite bool `json:"overwrite,omitempty"`

	// Cutoff is the neighbor cutoff radius. Zero selects the default.
	Cutoff float64 `json:"cutoff,omitempty"`

	// MaxNeighbors is the soft neighbor limit. Zero selects the default.
	MaxNeighbors int `json:"max_neighbors,omitempty"`

	// Decay names the distance-decay function (see pkg/decay). Empty
	// selects inverse-square.
	Decay string `json:"decay,omitempty"`

	// Voronoi selects Voronoi-tessellation adjacency (FromFile only).
	Voronoi bool `json:"voronoi,omitempty"`

	// Refresh bypasses cache reads, forcing reconstruction.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	// decayFn is the resolved decay function.
	decayFn decay.Func `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Cutoff < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "cutoff must be positive, got %g", o.Cutoff)
	}
	if o.Cutoff == 0 {
		o.Cutoff = DefaultCutoff
	}

	if o.MaxNeighbors < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "max neighbors must be positive, got %d", o.MaxNeighbors)
	}
	if o.MaxNeighbors == 0 {
		o.MaxNeighbors = DefaultMaxNeighbors
	}

	if o.Decay == "" {
		o.Decay = decay.DefaultName
	}
	fn, ok := decay.Lookup(o.Decay)
	if !ok {
		return errors.New(errors.ErrCodeInvalidOptions,
			"unknown decay %q (available: %v)", o.Decay, decay.Names())
	}
	o.decayFn = fn

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// neighborOptions translates validated Options into the neighbor-search
// configuration.
func (o *Options) neighborOptions() neighbors.Options {
	return neighbors.Options{
		Cutoff:       o.Cutoff,
		MaxNeighbors: o.MaxNeighbors,
		Decay:        o.decayFn,
		Voronoi:      o.Voronoi,
	}
}
