package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/graph"
)

// jsonGraph is the node-link JSON export format: one node per atom (with its
// element symbol) and weighted undirected edges in deterministic order.
type jsonGraph struct {
	ID    string     `json:"id,omitempty"`
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	Index   int    `json:"index"`
	Element string `json:"element"`
}

type jsonEdge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

// WriteJSON encodes a StructureGraph as indented node-link JSON to w.
// The export is one-way: use the artifact format for round-trips.
func WriteJSON(g *graph.StructureGraph, w io.Writer) error {
	out := jsonGraph{
		ID:    g.ID(),
		Nodes: make([]jsonNode, g.NodeCount()),
	}
	for i, el := range g.Elements() {
		out.Nodes[i] = jsonNode{Index: i, Element: el}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, jsonEdge{From: e.From, To: e.To, Weight: e.Weight})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// ExportJSON writes node-link JSON to a file at path.
func ExportJSON(g *graph.StructureGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
