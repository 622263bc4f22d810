package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/larsmk/crystalgraph/pkg/graph"
)

// store holds built graphs in memory, keyed by server-assigned UUID.
// Graphs are immutable after construction so no copy is needed on read.
type store struct {
	mu     sync.RWMutex
	graphs map[string]*graph.StructureGraph
}

func newStore() *store {
	return &store{graphs: make(map[string]*graph.StructureGraph)}
}

// put assigns a fresh UUID, relabels the graph with it and stores it.
func (s *store) put(g *graph.StructureGraph) string {
	id := uuid.NewString()
	g.SetID(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[id] = g
	return id
}

func (s *store) get(id string) (*graph.StructureGraph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[id]
	return g, ok
}
