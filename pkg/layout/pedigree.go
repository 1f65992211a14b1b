package layout

import (
	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/family"
)

// Pedigree strategy defaults.
const (
	pedigreeDefaultHSpacing = 250.0
	pedigreeDefaultVSpacing = 150.0
)

// PedigreeStrategy traverses ancestors and descendants from the root
// simultaneously and arranges generations as vertical columns: ancestors
// carry increasing generation numbers and grow toward positive x,
// descendants carry decreasing numbers and grow toward negative x, and
// nodes within a generation spread along y.
//
// A final overlap-removal pass re-buckets all nodes by generation, sorts
// each bucket by its current y, and re-assigns evenly spaced y values
// centered on the baseline, so no two same-generation nodes can share a
// coordinate regardless of traversal order. Persons never reached by the
// traversal are appended below the lowest positioned row and then pass
// through the same spreading, so a missing or absent root degrades to a
// flat column instead of an error.
type PedigreeStrategy struct{}

// Name implements Strategy.
func (s *PedigreeStrategy) Name() string { return StrategyPedigree }

// Calculate implements Strategy. Unlike the tree strategies it tolerates a
// rootID absent from the persons list: every person is then laid out as
// unconnected at generation 0.
func (s *PedigreeStrategy) Calculate(persons []family.Person, relationships []family.Relationship, rootID string, opts Options) (*Result, error) {
	hs := defaultFloat(opts.HorizontalSpacing, pedigreeDefaultHSpacing)
	vs := defaultFloat(opts.VerticalSpacing, pedigreeDefaultVSpacing)

	idx := family.NewIndex(persons, relationships)
	res := &Result{}

	c := &pedigreeChart{
		idx:     idx,
		res:     res,
		hs:      hs,
		vs:      vs,
		levels:  make(map[string]int),
		slots:   make(map[int]int),
		visited: map[string]struct{}{},
	}
	if idx.Has(rootID) {
		c.traverse(rootID, 0)
	}
	c.appendUnconnected()

	res.Edges = pedigreeEdges(relationships, c.levels)
	spreadRows(res.Nodes, vs, 0, spreadY)
	sortNodes(res.Nodes)
	finalize(res)

	if err := validateUnique(res.Nodes); err != nil {
		return nil, err
	}
	return res, nil
}

type pedigreeChart struct {
	idx     *family.Index
	res     *Result
	hs, vs  float64
	levels  map[string]int // personID -> signed generation (ancestors > 0)
	slots   map[int]int    // generation -> next free slot index
	visited map[string]struct{}
}

// traverse walks outward from the root in both directions at once:
// ancestors at gen+1, descendants at gen-1, spouses sharing the level. The
// visited set breaks remarriage and consanguinity loops.
func (c *pedigreeChart) traverse(id string, gen int) {
	if _, seen := c.visited[id]; seen {
		return
	}
	c.visited[id] = struct{}{}
	c.levels[id] = gen
	c.placeAt(id, gen, gen == 0)

	for _, spouse := range c.idx.Spouses(id) {
		c.traverse(spouse, gen)
	}
	for _, parent := range c.idx.Parents(id) {
		c.traverse(parent, gen+1)
	}
	for _, child := range c.idx.Children(id) {
		c.traverse(child, gen-1)
	}
}

// placeAt assigns the next free slot in the generation's column. The raw y
// is provisional; the overlap-removal pass re-spaces every column.
func (c *pedigreeChart) placeAt(id string, gen int, isRoot bool) {
	slot := c.slots[gen]
	c.slots[gen]++
	c.res.Nodes = append(c.res.Nodes, Node{
		ID:         id,
		Position:   Point{X: float64(gen) * c.hs, Y: float64(slot) * c.vs},
		Generation: gen,
		IsRoot:     isRoot,
	})
}

// appendUnconnected places every person the traversal never reached below
// the lowest positioned row, offset stepwise so the initial coordinates do
// not collide with the root's row.
func (c *pedigreeChart) appendUnconnected() {
	var lowest float64
	for _, n := range c.res.Nodes {
		lowest = max(lowest, n.Position.Y)
	}

	i := 0
	for _, id := range c.idx.PersonIDs() {
		if _, seen := c.visited[id]; seen {
			continue
		}
		c.levels[id] = 0
		c.res.Nodes = append(c.res.Nodes, Node{
			ID:         id,
			Position:   Point{X: float64(i) * c.hs, Y: lowest + c.vs*float64(1+i)},
			Generation: 0,
		})
		i++
	}
}

// pedigreeEdges emits a bezier edge per parent/child link and one dashed
// spouse edge per unordered pair, suppressing duplicates. Only edges whose
// endpoints were both positioned are kept.
func pedigreeEdges(relationships []family.Relationship, levels map[string]int) []Edge {
	var edges []Edge
	seen := make(map[string]struct{})
	add := func(e Edge) {
		if _, dup := seen[e.ID]; dup {
			return
		}
		seen[e.ID] = struct{}{}
		edges = append(edges, e)
	}

	for _, r := range relationships {
		if _, ok := levels[r.From]; !ok {
			continue
		}
		if _, ok := levels[r.To]; !ok {
			continue
		}
		if r.Type == family.RelSpouse {
			add(spouseEdge(r.From, r.To, false))
			continue
		}
		if parent, child, ok := r.ParentChild(); ok {
			add(Edge{ID: edgeID(parent, child), Source: parent, Target: child, Type: EdgeBezier})
		}
	}

	sortEdges(edges)
	return edges
}

// validateUnique guards the result invariant that node IDs are unique.
func validateUnique(nodes []Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.ID]; dup {
			return kcerrors.New(kcerrors.ErrCodeInternal, "duplicate node %q in layout result", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}
