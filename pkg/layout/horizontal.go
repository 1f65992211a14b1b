package layout

import (
	"math"

	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/family"
)

// Horizontal strategy defaults.
const (
	horizontalDefaultHSpacing = 250.0
	horizontalDefaultVSpacing = 120.0
	horizontalDefaultMaxGen   = 5
)

// HorizontalStrategy lays out a binary ancestor fan growing to the right.
// The root starts with a vertical half-spacing of
// baseSpacing x 2^(maxGenerations-1); each generation moves one fixed
// horizontal step right, the first parent occupies y - halfSpacing/2, the
// second y + halfSpacing/2, and the half-spacing halves on every recursive
// call. The geometry is overlap-free by construction.
type HorizontalStrategy struct{}

// Name implements Strategy.
func (s *HorizontalStrategy) Name() string { return StrategyHorizontal }

// Calculate implements Strategy. It fails with a ROOT_NOT_FOUND error when
// rootID is absent from the supplied persons.
func (s *HorizontalStrategy) Calculate(persons []family.Person, relationships []family.Relationship, rootID string, opts Options) (*Result, error) {
	hs := defaultFloat(opts.HorizontalSpacing, horizontalDefaultHSpacing)
	vs := defaultFloat(opts.VerticalSpacing, horizontalDefaultVSpacing)
	maxGen := defaultInt(opts.MaxGenerations, horizontalDefaultMaxGen)

	idx := family.NewIndex(persons, relationships)
	if !idx.Has(rootID) {
		return nil, kcerrors.New(kcerrors.ErrCodeRootNotFound, "root person %q not found", rootID)
	}

	res := &Result{}
	f := &ancestorFan{idx: idx, res: res, hStep: hs, maxGen: maxGen, visited: map[string]struct{}{}}

	halfSpacing := vs * math.Pow(2, float64(maxGen-1))
	f.ascend(rootID, 0, 0, halfSpacing)

	sortNodes(res.Nodes)
	sortEdges(res.Edges)
	finalize(res)
	return res, nil
}

type ancestorFan struct {
	idx     *family.Index
	res     *Result
	hStep   float64
	maxGen  int
	visited map[string]struct{}
}

// ascend positions the person at (gen*hStep, y) and recurses into its
// parents with halved spacing. gen counts ancestor generations from the
// root; the Generation field is negative for ancestors to keep numbering
// monotonic along parent/child edges (root = 0).
func (f *ancestorFan) ascend(id string, gen int, y, halfSpacing float64) {
	f.visited[id] = struct{}{}
	f.res.Nodes = append(f.res.Nodes, Node{
		ID:         id,
		Position:   Point{X: float64(gen) * f.hStep, Y: y},
		Generation: -gen,
		IsRoot:     gen == 0,
	})

	if gen+1 >= f.maxGen {
		return
	}
	offsets := []float64{-halfSpacing / 2, halfSpacing / 2}
	for i, parent := range f.idx.Parents(id) {
		if i >= len(offsets) {
			break
		}
		if _, seen := f.visited[parent]; seen {
			continue
		}
		f.res.Edges = append(f.res.Edges, Edge{
			ID:     edgeID(id, parent),
			Source: id,
			Target: parent,
			Type:   EdgeStraight,
		})
		f.ascend(parent, gen+1, y+offsets[i], halfSpacing/2)
	}
}
