package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kinlab/kinchart/pkg/family"
	"github.com/kinlab/kinchart/pkg/layout"
)

const svgMargin = 40.0

const edgeAnimationCSS = `
    .spouse { stroke-dasharray: 6 4; }
    .animated { stroke-dasharray: 6 4; animation: dash 1s linear infinite; }
    @keyframes dash { to { stroke-dashoffset: -10; } }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	persons    map[string]family.Person
	nodeWidth  float64
	nodeHeight float64
	rowBands   bool
}

// WithPersons supplies person records so nodes are labeled with display
// names instead of raw IDs.
func WithPersons(persons []family.Person) SVGOption {
	return func(r *svgRenderer) {
		r.persons = make(map[string]family.Person, len(persons))
		for _, p := range persons {
			r.persons[p.ID] = p
		}
	}
}

// WithNodeSize sets the drawn node box size (default 160x60).
func WithNodeSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.nodeWidth, r.nodeHeight = w, h }
}

// WithRowBands draws the generation rows as alternating background bands
// with their labels.
func WithRowBands() SVGOption {
	return func(r *svgRenderer) { r.rowBands = true }
}

// RenderSVG draws a layout result as a standalone SVG document. Edge
// routing follows the type tags the strategies emit; spouse edges are
// dashed and animated edges carry a CSS marching-ants animation.
func RenderSVG(res *layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{nodeWidth: 160, nodeHeight: 60}
	for _, opt := range opts {
		opt(&r)
	}

	// Shift everything so the top-left node lands inside the margin.
	dx := -res.Bounds.MinX + r.nodeWidth/2 + svgMargin
	dy := -res.Bounds.MinY + r.nodeHeight/2 + svgMargin
	width := res.Bounds.Width + r.nodeWidth + 2*svgMargin
	height := res.Bounds.Height + r.nodeHeight + 2*svgMargin

	at := func(p layout.Point) (float64, float64) { return p.X + dx, p.Y + dy }

	positions := make(map[string]layout.Point, len(res.Nodes)+len(res.Junctions))
	for _, n := range res.Nodes {
		positions[n.ID] = n.Position
	}
	for _, j := range res.Junctions {
		positions[j.ID] = j.Position
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", edgeAnimationCSS)

	if r.rowBands {
		renderRowBands(&buf, res.Rows, width, dy)
	}

	for _, e := range res.Edges {
		src, ok := positions[e.Source]
		if !ok {
			continue
		}
		dst, ok := positions[e.Target]
		if !ok {
			continue
		}
		sx, sy := at(src)
		tx, ty := at(dst)
		renderEdge(&buf, e, sx, sy, tx, ty)
	}

	for _, j := range res.Junctions {
		x, y := at(j.Position)
		fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="4" fill="#666"/>`+"\n", x, y)
	}

	for _, n := range res.Nodes {
		x, y := at(n.Position)
		r.renderNode(&buf, n, x, y)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRowBands(buf *bytes.Buffer, rows []layout.Row, width, dy float64) {
	for i, row := range rows {
		fill := "#fafafa"
		if i%2 == 1 {
			fill = "#f0f0f0"
		}
		// Row.Y is the band top in layout coordinates.
		fmt.Fprintf(buf, `  <rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			row.Y+dy, width, row.Height, fill)
		if row.LabelVisible {
			fmt.Fprintf(buf, `  <text x="8" y="%.1f" font-size="12" fill="#999">%s</text>`+"\n",
				row.Y+dy+14, escape(row.Label))
		}
	}
}

func renderEdge(buf *bytes.Buffer, e layout.Edge, sx, sy, tx, ty float64) {
	switch e.Type {
	case layout.EdgeOrthogonal:
		// Right angle: drop to the target's level, then across.
		fmt.Fprintf(buf, `  <path d="M %.1f,%.1f L %.1f,%.1f L %.1f,%.1f" fill="none" stroke="#888" stroke-width="1.5"/>`+"\n",
			sx, sy, sx, ty, tx, ty)
	case layout.EdgeBezier:
		my := (sy + ty) / 2
		fmt.Fprintf(buf, `  <path d="M %.1f,%.1f C %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="none" stroke="#888" stroke-width="1.5"/>`+"\n",
			sx, sy, sx, my, tx, my, tx, ty)
	case layout.EdgeSpouse:
		class := "spouse"
		if e.Animated {
			class = "animated"
		}
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="%s" stroke="#b66" stroke-width="1.5"/>`+"\n",
			sx, sy, tx, ty, class)
	default:
		class := ""
		if e.Animated {
			class = ` class="animated"`
		}
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s stroke="#888" stroke-width="1.5"/>`+"\n",
			sx, sy, tx, ty, class)
	}
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n layout.Node, x, y float64) {
	stroke := "#555"
	strokeWidth := 1.5
	if n.IsRoot {
		stroke = "#c33"
		strokeWidth = 3
	}
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="white" stroke="%s" stroke-width="%.1f"/>`+"\n",
		x-r.nodeWidth/2, y-r.nodeHeight/2, r.nodeWidth, r.nodeHeight, stroke, strokeWidth)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-size="13">%s</text>`+"\n",
		x, y, escape(r.label(n)))
}

func (r *svgRenderer) label(n layout.Node) string {
	if p, ok := r.persons[n.ID]; ok {
		label := p.DisplayName()
		if year, ok := p.BirthYear(); ok {
			label = fmt.Sprintf("%s (%d)", label, year)
		}
		return label
	}
	return n.ID
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return xmlEscaper.Replace(s) }
