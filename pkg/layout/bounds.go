package layout

import (
	"slices"
	"strings"
)

// finalize computes the bounding box and center point of the result in
// place. Junctions participate in the bounds so orthogonal connectors are
// never clipped by the initial view framing.
func finalize(r *Result) {
	if len(r.Nodes) == 0 && len(r.Junctions) == 0 {
		r.Bounds = Bounds{}
		r.Center = Point{}
		return
	}

	first := true
	var b Bounds
	extend := func(p Point) {
		if first {
			b = Bounds{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
			first = false
			return
		}
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}

	for _, n := range r.Nodes {
		extend(n.Position)
	}
	for _, j := range r.Junctions {
		extend(j.Position)
	}

	b.Width = b.MaxX - b.MinX
	b.Height = b.MaxY - b.MinY
	r.Bounds = b
	r.Center = Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// spreadRows removes residual overlap in row-based layouts: nodes are
// re-bucketed by generation, each bucket is sorted by its current main-axis
// coordinate (ID as tie-break), and coordinates are re-assigned evenly
// spaced and centered on the given baseline. After the pass, any bucket of
// N nodes has N pairwise distinct, evenly spaced coordinates regardless of
// how traversal order placed them.
//
// axis selects the coordinate to spread: spreadX for horizontal rows,
// spreadY for vertical columns.
func spreadRows(nodes []Node, spacing, baseline float64, axis spreadAxis) {
	buckets := make(map[int][]int) // generation -> indices into nodes
	for i, n := range nodes {
		buckets[n.Generation] = append(buckets[n.Generation], i)
	}

	for _, idxs := range buckets {
		slices.SortFunc(idxs, func(a, b int) int {
			av, bv := axis.get(nodes[a]), axis.get(nodes[b])
			if av != bv {
				if av < bv {
					return -1
				}
				return 1
			}
			return strings.Compare(nodes[a].ID, nodes[b].ID)
		})
		span := float64(len(idxs)-1) * spacing
		for i, idx := range idxs {
			axis.set(&nodes[idx], baseline-span/2+float64(i)*spacing)
		}
	}
}

type spreadAxis struct {
	get func(Node) float64
	set func(*Node, float64)
}

var (
	spreadX = spreadAxis{
		get: func(n Node) float64 { return n.Position.X },
		set: func(n *Node, v float64) { n.Position.X = v },
	}
	spreadY = spreadAxis{
		get: func(n Node) float64 { return n.Position.Y },
		set: func(n *Node, v float64) { n.Position.Y = v },
	}
)

// sortNodes orders nodes by ID for deterministic serialization.
func sortNodes(nodes []Node) {
	slices.SortFunc(nodes, func(a, b Node) int { return strings.Compare(a.ID, b.ID) })
}

// sortEdges orders edges by ID for deterministic serialization.
func sortEdges(edges []Edge) {
	slices.SortFunc(edges, func(a, b Edge) int { return strings.Compare(a.ID, b.ID) })
}
