package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"

	"github.com/larsmk/crystalgraph/pkg/cache"
	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/graph"
	"github.com/larsmk/crystalgraph/pkg/io"
	"github.com/larsmk/crystalgraph/pkg/neighbors"
	"github.com/larsmk/crystalgraph/pkg/structure"
)

// Builder encapsulates graph construction with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Builder is stateless except for the cache and logger - it doesn't
// store construction results. Multiple goroutines can safely use the same
// Builder with different options.
type Builder struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewBuilder creates a builder with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewBuilder(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Builder {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// FromAdjacency builds a graph from a precomputed weighted adjacency matrix.
// The graph stands in as its own provenance. All errors are returned.
func (b *Builder) FromAdjacency(adj *mat.SymDense, elements []string, opts Options) (*graph.StructureGraph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return graph.New(adj, elements, graph.WithID(opts.ID))
}

// FromFile builds a graph from a structure file or a serialized artifact.
//
// A missing path, an unparsable structure, and a structure the neighbor
// pipeline cannot turn into a valid graph are all logged and reported as
// (nil, nil) so batch callers can skip them; every other error is returned.
// When OutputPath is set, newly built graphs are persisted as artifacts.
func (b *Builder) FromFile(ctx context.Context, path string, opts Options) (*graph.StructureGraph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := b.logger(opts)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("structure file missing, skipping", "path", path)
		return nil, nil
	}

	id := opts.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// Artifacts bypass construction entirely: deserialize and relabel.
	if io.IsArtifact(path) {
		g, err := io.ReadFile(path)
		if err != nil {
			if errors.IsConstruction(err) {
				logger.Warn("skipping unreadable artifact", "path", path, "err", err)
				return nil, nil
			}
			return nil, err
		}
		g.SetID(id)
		return g, nil
	}

	s, err := structure.ReadFile(path)
	if err != nil {
		if errors.IsConstruction(err) {
			logger.Warn("skipping unparsable structure", "path", path, "err", err)
			return nil, nil
		}
		return nil, err
	}

	g, err := b.construct(ctx, s, graph.FileSource(path), id, opts)
	if err != nil {
		if errors.IsConstruction(err) {
			logger.Warn("skipping structure", "path", path, "err", err)
			return nil, nil
		}
		return nil, err
	}

	if opts.OutputPath != "" {
		if err := b.persist(g, opts, logger); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FromCrystal builds a graph from an in-memory crystal record using cutoff
// adjacency. All errors are returned.
func (b *Builder) FromCrystal(ctx context.Context, cry *structure.Crystal, opts Options) (*graph.StructureGraph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Voronoi {
		return nil, errors.New(errors.ErrCodeInvalidOptions,
			"voronoi adjacency is not available for crystal records")
	}

	s, err := cry.Structure()
	if err != nil {
		return nil, err
	}
	return b.construct(ctx, s, graph.CrystalSource(cry), opts.ID, opts)
}

// FromMolecule builds an unweighted graph from a bond list. Every bond gets
// edge weight 1; there is no geometry and no neighbor search. A single-atom
// input has no edges to build, so it is logged and reported as (nil, nil).
func (b *Builder) FromMolecule(ctx context.Context, mol *structure.MolecularGraph, opts Options) (*graph.StructureGraph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := mol.Validate(); err != nil {
		return nil, err
	}
	if mol.NumAtoms() == 1 {
		b.logger(opts).Info("single-atom molecule has no edges, skipping", "species", mol.Species[0])
		return nil, nil
	}

	adj := mat.NewSymDense(mol.NumAtoms(), nil)
	for _, bond := range mol.Bonds {
		adj.SetSym(bond.A, bond.B, 1)
	}
	return graph.New(adj, mol.Species,
		graph.WithID(opts.ID), graph.WithSource(graph.MoleculeSource(mol)))
}

// Close releases the cache backend.
func (b *Builder) Close() error {
	if b.Cache != nil {
		return b.Cache.Close()
	}
	return nil
}

// construct runs the neighbor pipeline over a structure, memoized through
// the cache. Cached graphs are artifacts keyed by structure content plus
// construction options, so a changed option never serves a stale graph.
func (b *Builder) construct(ctx context.Context, s *structure.Structure, src graph.Source, id string, opts Options) (*graph.StructureGraph, error) {
	logger := b.logger(opts)
	key := b.Keyer.GraphKey(structureHash(src, s), cache.GraphKeyOpts{
		Cutoff:       opts.Cutoff,
		MaxNeighbors: opts.MaxNeighbors,
		Decay:        opts.Decay,
		Voronoi:      opts.Voronoi,
	})

	if !opts.Refresh {
		if data, hit, err := b.Cache.Get(ctx, key); err == nil && hit {
			if g, err := io.Unmarshal(data); err == nil {
				g.SetID(id)
				logger.Debug("graph cache hit", "key", key)
				return g, nil
			}
		}
	}

	start := time.Now()
	adj, elements, err := neighbors.Find(s, opts.neighborOptions())
	if err != nil {
		return nil, err
	}
	g, err := graph.New(adj, elements, graph.WithID(id), graph.WithSource(src))
	if err != nil {
		return nil, err
	}

	logger.Info("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))

	// Cache the result
	if data, err := io.Marshal(g); err == nil {
		_ = b.Cache.Set(ctx, key, data, cache.TTLGraph)
	}
	return g, nil
}

// persist writes g to opts.OutputPath. An existing file is left alone
// unless Overwrite is set.
func (b *Builder) persist(g *graph.StructureGraph, opts Options, logger *log.Logger) error {
	if _, err := os.Stat(opts.OutputPath); err == nil && !opts.Overwrite {
		logger.Info("output exists, skipping write", "path", opts.OutputPath)
		return nil
	}
	if err := io.WriteFile(g, opts.OutputPath); err != nil {
		return err
	}
	logger.Info("wrote artifact", "path", opts.OutputPath)
	return nil
}

func (b *Builder) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return b.Logger
}

// structureHash produces a content hash covering provenance and geometry.
func structureHash(src graph.Source, s *structure.Structure) string {
	data, _ := json.Marshal(struct {
		Kind      string             `json:"kind"`
		Path      string             `json:"path,omitempty"`
		Positions []structure.Vec    `json:"positions"`
		Species   []string           `json:"species"`
		Lattice   *structure.Lattice `json:"lattice,omitempty"`
	}{src.Kind.String(), src.Path, s.Positions, s.Species, s.Lattice})
	return cache.Hash(data)
}
