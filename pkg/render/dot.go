package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/kinlab/kinchart/pkg/family"
)

// DOTOptions configures family graph DOT output.
type DOTOptions struct {
	// Detailed includes birth and death years in node labels.
	Detailed bool
}

// ToDOT converts a family graph to Graphviz DOT format. This view is
// strategy-independent: parent/child links become directed edges, spouse
// links become dashed undirected-looking edges constrained to one rank.
// The resulting DOT string can be rendered with [RenderDOT].
func ToDOT(persons []family.Person, relationships []family.Relationship, opts DOTOptions) string {
	idx := family.NewIndex(persons, relationships)

	var buf bytes.Buffer
	buf.WriteString("digraph family {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, id := range idx.PersonIDs() {
		p, _ := idx.Person(id)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, dotLabel(p, opts.Detailed))
	}

	buf.WriteString("\n")
	seenSpouse := make(map[string]struct{})
	for _, id := range idx.PersonIDs() {
		for _, child := range idx.Children(id) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, child)
		}
		for _, spouse := range idx.Spouses(id) {
			a, b := id, spouse
			if a > b {
				a, b = b, a
			}
			if _, dup := seenSpouse[a+"+"+b]; dup {
				continue
			}
			seenSpouse[a+"+"+b] = struct{}{}
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, dir=none, constraint=false];\n", a, b)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(p family.Person, detailed bool) string {
	label := p.DisplayName()
	if !detailed {
		return label
	}
	born, hasBorn := p.BirthYear()
	died, hasDied := p.DeathYear()
	switch {
	case hasBorn && hasDied:
		return fmt.Sprintf("%s\n%d-%d", label, born, died)
	case hasBorn:
		return fmt.Sprintf("%s\n*%d", label, born)
	default:
		return label
	}
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg element so the viewBox starts at
// the origin and explicit pixel dimensions are present.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
