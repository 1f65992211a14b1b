// Package pkg provides the core libraries for kinchart genealogical chart layout.
//
// # Overview
//
// Kinchart transforms family data into positioned chart layouts and visual
// outputs. The pkg directory is organized into the following areas:
//
//  1. [family] - Domain model (persons, relationships, indexes, generations)
//  2. [layout] - Layout strategies (pedigree, orthogonal, vertical, horizontal, fan, timeline)
//  3. [chart] - Wire format (JSON serialization of charts and layout results)
//  4. [cache] - Content-addressed caching (file, Redis, null backends)
//  5. [render] - Visual outputs (SVG, Graphviz DOT, PDF/PNG conversion)
//  6. [pipeline] - Orchestration (load, layout, render with caching)
//  7. [config] - TOML configuration
//  8. [observability] - Stage and cache hooks
//  9. [errors] - Error codes shared across the module
//
// # Architecture
//
// The typical data flow through kinchart:
//
//	Chart JSON (persons + relationships)
//	         |
//	    [chart] package (decode + validate)
//	         |
//	    [layout] package (strategy positions nodes and routes edges)
//	         |
//	    [render] package (SVG, DOT, PDF, PNG)
//	         |
//	    output files
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//		ChartPath: "family.json",
//		RootID:    "p1",
//		Strategy:  layout.StrategyVertical,
//		Formats:   []string{"svg"},
//	})
package pkg
