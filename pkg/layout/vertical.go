package layout

import (
	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/family"
)

// Vertical strategy defaults.
const (
	verticalDefaultHSpacing = 200.0
	verticalDefaultVSpacing = 120.0
	verticalDefaultMaxGen   = 10
)

// VerticalStrategy lays out the descendant tree of the root with
// subtree-width balancing: each subtree reserves a horizontal span equal to
// the sum of its children's spans (a leaf reserves one spacing unit), every
// node is positioned at the arithmetic mean of its children's positions,
// and children are distributed across the parent span proportional to their
// own widths.
//
// The Direction option rotates the growth axis: "down" (default) grows
// toward positive y, "up" toward negative y, "right" toward positive x and
// "left" toward negative x. MaxGenerations stops recursion; persons beyond
// the bound are omitted from the result, not from the input.
type VerticalStrategy struct{}

// Name implements Strategy.
func (s *VerticalStrategy) Name() string { return StrategyVertical }

// Calculate implements Strategy. It fails with a ROOT_NOT_FOUND error when
// rootID is absent from the supplied persons.
func (s *VerticalStrategy) Calculate(persons []family.Person, relationships []family.Relationship, rootID string, opts Options) (*Result, error) {
	hs := defaultFloat(opts.HorizontalSpacing, verticalDefaultHSpacing)
	vs := defaultFloat(opts.VerticalSpacing, verticalDefaultVSpacing)
	maxGen := defaultInt(opts.MaxGenerations, verticalDefaultMaxGen)

	idx := family.NewIndex(persons, relationships)
	if !idx.Has(rootID) {
		return nil, kcerrors.New(kcerrors.ErrCodeRootNotFound, "root person %q not found", rootID)
	}

	t := &verticalTree{
		idx:     idx,
		spacing: hs,
		maxGen:  maxGen,
		widths:  make(map[string]float64),
	}
	t.measure(rootID, 0, map[string]struct{}{})

	res := &Result{}
	t.place(res, rootID, 0, 0, map[string]struct{}{})

	orient(res.Nodes, opts.Direction, vs)
	sortNodes(res.Nodes)
	sortEdges(res.Edges)
	finalize(res)
	return res, nil
}

type verticalTree struct {
	idx     *family.Index
	spacing float64
	maxGen  int
	widths  map[string]float64
}

// descend returns the children to recurse into: birth-ordered, minus
// already-visited persons (the cycle guard), and nothing at all once the
// generation bound is reached. Both passes call it with visited sets that
// evolve identically, so they walk the same tree.
func (t *verticalTree) descend(id string, gen int, visited map[string]struct{}) []string {
	if gen+1 >= t.maxGen {
		return nil
	}
	var out []string
	for _, child := range t.idx.ChildrenByBirth(id) {
		if _, seen := visited[child]; !seen {
			out = append(out, child)
		}
	}
	return out
}

// measure computes the horizontal span required by each subtree.
func (t *verticalTree) measure(id string, gen int, visited map[string]struct{}) float64 {
	visited[id] = struct{}{}
	children := t.descend(id, gen, visited)
	if len(children) == 0 {
		t.widths[id] = t.spacing
		return t.spacing
	}
	var sum float64
	for _, child := range children {
		sum += t.measure(child, gen+1, visited)
	}
	t.widths[id] = sum
	return sum
}

// place positions the subtree rooted at id over [left, left+width) and
// returns the node's resulting x coordinate. Children are placed first;
// the parent is centered at the mean of their positions. The y coordinate
// is stored as the raw generation depth and rotated by orient afterwards.
func (t *verticalTree) place(res *Result, id string, gen int, left float64, visited map[string]struct{}) float64 {
	visited[id] = struct{}{}
	children := t.descend(id, gen, visited)

	var x float64
	if len(children) == 0 {
		x = left + t.widths[id]/2
	} else {
		cursor := left
		var sum float64
		for _, child := range children {
			w := t.widths[child]
			sum += t.place(res, child, gen+1, cursor, visited)
			res.Edges = append(res.Edges, Edge{
				ID:     edgeID(id, child),
				Source: id,
				Target: child,
				Type:   EdgeStraight,
			})
			cursor += w
		}
		x = sum / float64(len(children))
	}

	res.Nodes = append(res.Nodes, Node{
		ID:         id,
		Position:   Point{X: x, Y: float64(gen)},
		Generation: gen,
		IsRoot:     gen == 0,
	})
	return x
}

// orient maps the raw (across, depth) coordinates produced by place onto
// the requested direction. place stores depth as the bare generation
// number in Y; orient scales it by the vertical spacing and rotates.
func orient(nodes []Node, direction string, depthSpacing float64) {
	for i := range nodes {
		across := nodes[i].Position.X
		depth := nodes[i].Position.Y * depthSpacing
		switch direction {
		case "up":
			nodes[i].Position = Point{X: across, Y: -depth}
		case "left":
			nodes[i].Position = Point{X: -depth, Y: across}
		case "right":
			nodes[i].Position = Point{X: depth, Y: across}
		default: // "down"
			nodes[i].Position = Point{X: across, Y: depth}
		}
	}
}
