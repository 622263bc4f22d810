package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/graph"
	"github.com/larsmk/crystalgraph/pkg/io"
	"github.com/larsmk/crystalgraph/pkg/pipeline"
	"github.com/larsmk/crystalgraph/pkg/structure"
)

// buildRequest is the POST /graphs body. Exactly one of crystal or
// molecule must be set.
type buildRequest struct {
	Crystal  *crystalRequest  `json:"crystal,omitempty"`
	Molecule *moleculeRequest `json:"molecule,omitempty"`
	Options  buildOptions     `json:"options"`
}

// buildOptions is the subset of pipeline options the API accepts. File
// persistence stays CLI-only.
type buildOptions struct {
	Cutoff       float64 `json:"cutoff,omitempty"`
	MaxNeighbors int     `json:"max_neighbors,omitempty"`
	Decay        string  `json:"decay,omitempty"`
}

type crystalRequest struct {
	Lattice    [3][3]float64 `json:"lattice"`
	Fractional [][3]float64  `json:"fractional"`
	Species    []string      `json:"species"`
}

type moleculeRequest struct {
	Species []string `json:"species"`
	Bonds   [][2]int `json:"bonds"`
}

// buildResponse wraps a stored graph with its assigned ID and size stats.
type buildResponse struct {
	ID    string          `json:"id"`
	Nodes int             `json:"nodes"`
	Edges int             `json:"edges"`
	Graph json.RawMessage `json:"graph"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}
	if (req.Crystal == nil) == (req.Molecule == nil) {
		s.respondError(w, http.StatusBadRequest, "exactly one of crystal or molecule is required", "")
		return
	}

	opts := req.Options.pipelineOptions()
	opts.Logger = s.logger

	var (
		g   *graph.StructureGraph
		err error
	)
	if req.Crystal != nil {
		g, err = s.builder.FromCrystal(r.Context(), req.Crystal.toCrystal(), opts)
	} else {
		g, err = s.builder.FromMolecule(r.Context(), req.Molecule.toMolecule(), opts)
	}
	if err != nil {
		s.logger.Error("build failed", "err", err)
		s.respondError(w, statusFor(err), errors.UserMessage(err), string(errors.GetCode(err)))
		return
	}
	if g == nil {
		s.respondError(w, http.StatusUnprocessableEntity, "input produces no graph", "")
		return
	}

	id := s.store.put(g)
	s.logger.Info("stored graph", "id", id, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	var buf bytes.Buffer
	if err := io.WriteJSON(g, &buf); err != nil {
		s.respondError(w, http.StatusInternalServerError, "encode graph", "")
		return
	}
	s.respondJSON(w, http.StatusCreated, buildResponse{
		ID:    id,
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
		Graph: buf.Bytes(),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "graphID")
	g, ok := s.store.get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "graph not found", string(errors.ErrCodeNotFound))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := io.WriteJSON(g, w); err != nil {
		s.logger.Error("encode graph", "id", id, "err", err)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg, code string) {
	s.respondJSON(w, status, errorResponse{Error: msg, Code: code})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidElements,
		errors.ErrCodeInvalidStructure, errors.ErrCodeInvalidOptions:
		return http.StatusBadRequest
	case errors.ErrCodeNeighborSearch, errors.ErrCodeNonFiniteLaplacian:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (o buildOptions) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Cutoff:       o.Cutoff,
		MaxNeighbors: o.MaxNeighbors,
		Decay:        o.Decay,
	}
}

func (c *crystalRequest) toCrystal() *structure.Crystal {
	cry := &structure.Crystal{
		Lattice: structure.Lattice{
			A: structure.Vec(c.Lattice[0]),
			B: structure.Vec(c.Lattice[1]),
			C: structure.Vec(c.Lattice[2]),
		},
		Species: c.Species,
	}
	for _, f := range c.Fractional {
		cry.Fractional = append(cry.Fractional, structure.Vec(f))
	}
	return cry
}

func (m *moleculeRequest) toMolecule() *structure.MolecularGraph {
	mol := &structure.MolecularGraph{Species: m.Species}
	for _, b := range m.Bonds {
		mol.Bonds = append(mol.Bonds, structure.Bond{A: b[0], B: b[1]})
	}
	return mol
}
