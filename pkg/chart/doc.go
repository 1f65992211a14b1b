// Package chart defines the serialization format for family graphs and
// computed layouts.
//
// A [Chart] is the JSON wire form of the layout engine's input: a flat list
// of persons and a flat list of relationships. The package converts between
// the wire form and the in-memory types in pkg/family, validates structural
// constraints (unique person IDs, well-formed dates), and reads/writes both
// charts and layout results to files or streams.
//
// # Determinism
//
// Marshalled output is deterministic: persons and relationships are sorted
// by ID, dates use a fixed format, and layout results keep the ID ordering
// their strategies produced. Byte-identical files for identical graphs make
// the format usable as a cache key source.
//
// # Example
//
//	c, err := chart.ReadFile("family.json")
//	if err != nil { ... }
//	persons, relationships, err := c.ToFamily()
package chart
