package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kinlab/kinchart/pkg/family"
)

// Orthogonal strategy defaults.
const (
	orthogonalDefaultHSpacing   = 280.0
	orthogonalDefaultNodeHeight = 100.0

	// orthogonalRowMargin is added to the node height to form a row band.
	orthogonalRowMargin = 80.0

	// orthogonalJunctionDrop is how far below a parent's center the
	// junction point sits.
	orthogonalJunctionDrop = 60.0
)

// OrthogonalStrategy produces a generation-row layout with right-angle
// connectors. Each distinct generation level becomes a labeled horizontal
// row; within a row, family units are placed left to right in deterministic
// order. A spouse pair (or single parent) with at least one child gets a
// synthetic [Junction] directly beneath it; the parents' trunks merge at
// the junction before branching to the children, which are centered under
// it and sorted by birth date then name. Parent-to-child connections
// always route through the junction when one exists.
//
// Like the pedigree strategy it tolerates a missing root: generation 0 is
// then assigned to everyone and the chart collapses to a single row.
type OrthogonalStrategy struct{}

// Name implements Strategy.
func (s *OrthogonalStrategy) Name() string { return StrategyOrthogonal }

// Calculate implements Strategy.
func (s *OrthogonalStrategy) Calculate(persons []family.Person, relationships []family.Relationship, rootID string, opts Options) (*Result, error) {
	g := &orthogonalGrid{
		idx:        family.NewIndex(persons, relationships),
		slotWidth:  defaultFloat(opts.HorizontalSpacing, orthogonalDefaultHSpacing),
		nodeHeight: defaultFloat(opts.NodeHeight, orthogonalDefaultNodeHeight),
		positioned: make(map[string]int),
		cursor:     make(map[int]float64),
		covered:    make(map[string]struct{}),
	}
	g.levels = family.AssignGenerations(g.idx, rootID)
	g.rowHeight = g.nodeHeight + orthogonalRowMargin

	res := &Result{}
	g.res = res

	g.buildRows(opts.ShowGenerationLabels)
	g.placeUnits()
	g.placeRemainder(rootID)
	g.normalizeRowSpacing()
	g.emitEdges(relationships)

	sortNodes(res.Nodes)
	sortEdges(res.Edges)
	slices.SortFunc(res.Junctions, func(a, b Junction) int { return strings.Compare(a.ID, b.ID) })
	finalize(res)
	return res, nil
}

type orthogonalGrid struct {
	idx        *family.Index
	res        *Result
	levels     map[string]int
	slotWidth  float64
	nodeHeight float64
	rowHeight  float64
	minLevel   int
	positioned map[string]int      // personID -> index into res.Nodes
	cursor     map[int]float64     // level -> next free x
	covered    map[string]struct{} // parent-child pairs routed via a junction
}

// buildRows emits one labeled row per distinct generation level, stacked in
// ascending level order.
func (g *orthogonalGrid) buildRows(labelsVisible bool) {
	lvls := family.GenerationLevels(g.levels)
	if len(lvls) == 0 {
		return
	}
	g.minLevel = lvls[0]
	for _, level := range lvls {
		g.res.Rows = append(g.res.Rows, Row{
			Level:        level,
			Y:            g.rowTop(level),
			Height:       g.rowHeight,
			Label:        rowLabel(level),
			LabelVisible: labelsVisible,
		})
	}
}

func (g *orthogonalGrid) rowTop(level int) float64 {
	return float64(level-g.minLevel) * g.rowHeight
}

// nodeY is the vertical center of a person box within its row band.
func (g *orthogonalGrid) nodeY(level int) float64 {
	return g.rowTop(level) + g.nodeHeight/2
}

// rowLabel words the band caption as a function of the signed level.
func rowLabel(level int) string {
	switch {
	case level < 0:
		return fmt.Sprintf("Ancestor generation %d", -level)
	case level > 0:
		return fmt.Sprintf("Descendant generation %d", level)
	default:
		return "Root generation"
	}
}

// placeUnits walks family units in their deterministic order, grouped by
// the first spouse's generation, placing spouses side by side and children
// centered beneath the unit's junction.
func (g *orthogonalGrid) placeUnits() {
	units := family.Units(g.idx)
	byLevel := make(map[int][]family.Unit)
	for _, u := range units {
		byLevel[g.levels[u.SpouseIDs[0]]] = append(byLevel[g.levels[u.SpouseIDs[0]]], u)
	}

	for _, level := range family.GenerationLevels(g.levels) {
		for _, u := range byLevel[level] {
			g.placeUnit(u, level)
		}
	}
}

func (g *orthogonalGrid) placeUnit(u family.Unit, level int) {
	for _, spouse := range u.SpouseIDs {
		g.place(spouse, level)
	}
	if len(u.ChildIDs) == 0 {
		return
	}

	// Junction point beneath the pair (or lone parent).
	jx := g.meanX(u.SpouseIDs)
	jy := g.nodeY(level) + orthogonalJunctionDrop
	junction := Junction{
		ID:        "j-" + u.Key(),
		Position:  Point{X: jx, Y: jy},
		ParentIDs: slices.Clone(u.SpouseIDs),
		ChildIDs:  slices.Clone(u.ChildIDs),
	}
	g.res.Junctions = append(g.res.Junctions, junction)

	span := float64(len(u.ChildIDs)-1) * g.slotWidth
	for i, child := range u.ChildIDs {
		g.placeAt(child, g.levels[child], jx-span/2+float64(i)*g.slotWidth)
	}

	for _, parent := range u.SpouseIDs {
		for _, child := range u.ChildIDs {
			g.covered[parent+"\x00"+child] = struct{}{}
		}
	}
}

// placeRemainder positions everyone not covered by a family unit in
// left-to-right generation order, without a junction.
func (g *orthogonalGrid) placeRemainder(rootID string) {
	for _, id := range g.idx.PersonIDs() {
		g.place(id, g.levels[id])
	}
	if i, ok := g.positioned[rootID]; ok {
		g.res.Nodes[i].IsRoot = true
	}
}

// place assigns the next free slot in the level's row; it is a no-op for
// persons that already have a position, which is how each person ends up
// positioned exactly once.
func (g *orthogonalGrid) place(id string, level int) {
	if _, done := g.positioned[id]; done {
		return
	}
	g.placeAt(id, level, g.cursor[level])
}

// placeAt positions the person at an explicit x and advances the level
// cursor past it.
func (g *orthogonalGrid) placeAt(id string, level int, x float64) {
	if _, done := g.positioned[id]; done {
		return
	}
	g.positioned[id] = len(g.res.Nodes)
	g.res.Nodes = append(g.res.Nodes, Node{
		ID:         id,
		Position:   Point{X: x, Y: g.nodeY(level)},
		Generation: level,
	})
	if next := x + g.slotWidth; next > g.cursor[level] {
		g.cursor[level] = next
	}
}

func (g *orthogonalGrid) meanX(ids []string) float64 {
	var sum float64
	for _, id := range ids {
		sum += g.res.Nodes[g.positioned[id]].Position.X
	}
	return sum / float64(len(ids))
}

// normalizeRowSpacing removes residual overlap introduced by centering
// children under junctions: within each generation, nodes are swept left to
// right enforcing the slot width as a minimum gap, then the whole row is
// shifted back so its midpoint is preserved. Junctions are recomputed from
// the final parent positions afterwards.
func (g *orthogonalGrid) normalizeRowSpacing() {
	buckets := make(map[int][]int)
	for i, n := range g.res.Nodes {
		buckets[n.Generation] = append(buckets[n.Generation], i)
	}

	for _, idxs := range buckets {
		slices.SortFunc(idxs, func(a, b int) int {
			ax, bx := g.res.Nodes[a].Position.X, g.res.Nodes[b].Position.X
			if ax != bx {
				if ax < bx {
					return -1
				}
				return 1
			}
			return strings.Compare(g.res.Nodes[a].ID, g.res.Nodes[b].ID)
		})

		before := g.rowMid(idxs)
		for k := 1; k < len(idxs); k++ {
			prev := g.res.Nodes[idxs[k-1]].Position.X
			cur := &g.res.Nodes[idxs[k]].Position.X
			if *cur < prev+g.slotWidth {
				*cur = prev + g.slotWidth
			}
		}
		shift := before - g.rowMid(idxs)
		for _, i := range idxs {
			g.res.Nodes[i].Position.X += shift
		}
	}

	for i := range g.res.Junctions {
		g.res.Junctions[i].Position.X = g.meanX(g.res.Junctions[i].ParentIDs)
	}
}

func (g *orthogonalGrid) rowMid(idxs []int) float64 {
	lo := g.res.Nodes[idxs[0]].Position.X
	hi := g.res.Nodes[idxs[len(idxs)-1]].Position.X
	return (lo + hi) / 2
}

// emitEdges produces one dashed spouse edge per pair, orthogonal edges
// from each parent into its junction and from the junction to each child,
// and a direct orthogonal edge only for parent/child links no junction
// covers.
func (g *orthogonalGrid) emitEdges(relationships []family.Relationship) {
	seen := make(map[string]struct{})
	add := func(e Edge) {
		if _, dup := seen[e.ID]; dup {
			return
		}
		seen[e.ID] = struct{}{}
		g.res.Edges = append(g.res.Edges, e)
	}

	for _, j := range g.res.Junctions {
		for _, parent := range j.ParentIDs {
			add(Edge{ID: edgeID(parent, j.ID), Source: parent, Target: j.ID, Type: EdgeOrthogonal})
		}
		for _, child := range j.ChildIDs {
			add(Edge{ID: edgeID(j.ID, child), Source: j.ID, Target: child, Type: EdgeOrthogonal})
		}
	}

	for _, r := range relationships {
		if r.Type == family.RelSpouse {
			if g.placed(r.From) && g.placed(r.To) {
				add(spouseEdge(r.From, r.To, false))
			}
			continue
		}
		parent, child, ok := r.ParentChild()
		if !ok || !g.placed(parent) || !g.placed(child) {
			continue
		}
		if _, viaJunction := g.covered[parent+"\x00"+child]; viaJunction {
			continue
		}
		add(Edge{ID: edgeID(parent, child), Source: parent, Target: child, Type: EdgeOrthogonal})
	}
}

func (g *orthogonalGrid) placed(id string) bool {
	_, ok := g.positioned[id]
	return ok
}
