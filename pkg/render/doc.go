// Package render turns computed layouts into visual outputs.
//
// # Overview
//
// The package contains two renderers and a format converter:
//
//   - [RenderSVG] draws a layout result directly as SVG, honoring the edge
//     routing types the strategies emit (straight, orthogonal, bezier,
//     dashed spouse lines) plus generation row bands and junction points.
//   - [ToDOT] and [RenderDOT] produce a Graphviz view of the raw family
//     graph, useful for debugging relationship data independently of any
//     layout strategy.
//   - [ToPDF] and [ToPNG] convert any SVG to other formats using the
//     external rsvg-convert tool (from librsvg).
//
// # Format Conversion
//
//	svg := render.RenderSVG(result, render.WithPersons(persons))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// Rendering is deterministic: strategies emit nodes and edges sorted by ID
// and the renderers preserve that order, so identical layouts produce
// byte-identical SVG.
package render
