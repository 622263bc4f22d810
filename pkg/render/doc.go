// Package render presents structure graphs as Graphviz diagrams.
//
// # Overview
//
// This package produces undirected graph visualizations using Graphviz,
// where atoms appear as labeled circles connected by weighted edges. The
// graph model itself stays presentation-free; everything visual lives here.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG or PNG:
//
//	dot := render.ToDOT(g, render.Options{ShowWeights: true})
//	svg, err := render.SVG(dot)
//	png, err := render.PNG(dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - ShowWeights: label every edge with its weight
//   - ShowIndices: prefix node labels with the atom index
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering; no external graphviz installation is needed.
package render
