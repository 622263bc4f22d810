// Package io serializes StructureGraph artifacts.
//
// # Artifact Format
//
// The native artifact is a MessagePack document (extension ".cgr") carrying
// the full entity: adjacency matrix, element labels, the cached Laplacian,
// the provenance reference, and the identifier. Floating-point values
// round-trip bit-identically, so deserializing an artifact reproduces exactly
// the matrices that were serialized — the Laplacian is never recomputed on
// load.
//
// Common operations:
//
//	io.WriteFile(g, "nacl.cgr")          // entity → file
//	g, err := io.ReadFile("nacl.cgr")    // file → entity
//	data, err := io.Marshal(g)           // entity → []byte
//	g, err := io.Unmarshal(data)         // []byte → entity
//
// [IsArtifact] reports whether a path looks like a serialized artifact; the
// construction facade uses it to bypass structure parsing entirely.
//
// # JSON Export
//
// [WriteJSON] emits a human-readable node-link document (elements plus
// weighted edges) for interchange with plotting and analysis tools. JSON
// export is one-way; the artifact format is the round-trip format.
package io
