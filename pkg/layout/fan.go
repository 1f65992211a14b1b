package layout

import (
	"math"

	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/family"
)

// Fan strategy defaults.
const (
	fanDefaultRadiusStep = 200.0
	fanDefaultMaxGen     = 6

	// fanBottomGap is the arc left open at the bottom of the circle, in
	// radians, so ring labels and the root caption have somewhere to live.
	fanBottomGap = math.Pi / 6
)

// FanStrategy produces a polar/radial ancestor chart. The root sits at the
// origin; ancestors are placed on concentric rings (radius = generation x
// radius increment, taken from HorizontalSpacing) and each ancestor's
// angular span is recursively bisected between its two parents, the first
// parent taking the first half of the arc. The root's span is a full
// circle minus a fixed gap at the bottom.
type FanStrategy struct{}

// Name implements Strategy.
func (s *FanStrategy) Name() string { return StrategyFan }

// Calculate implements Strategy. It fails with a ROOT_NOT_FOUND error when
// rootID is absent from the supplied persons.
func (s *FanStrategy) Calculate(persons []family.Person, relationships []family.Relationship, rootID string, opts Options) (*Result, error) {
	radiusStep := defaultFloat(opts.HorizontalSpacing, fanDefaultRadiusStep)
	maxGen := defaultInt(opts.MaxGenerations, fanDefaultMaxGen)

	idx := family.NewIndex(persons, relationships)
	if !idx.Has(rootID) {
		return nil, kcerrors.New(kcerrors.ErrCodeRootNotFound, "root person %q not found", rootID)
	}

	res := &Result{}
	w := &fanWheel{idx: idx, res: res, radiusStep: radiusStep, maxGen: maxGen, visited: map[string]struct{}{}}

	// Screen coordinates grow downward, so the open gap is centered on
	// the +y axis (angle pi/2).
	start := math.Pi/2 + fanBottomGap/2
	w.ring(rootID, 0, start, 2*math.Pi-fanBottomGap)

	sortNodes(res.Nodes)
	sortEdges(res.Edges)
	finalize(res)
	return res, nil
}

type fanWheel struct {
	idx        *family.Index
	res        *Result
	radiusStep float64
	maxGen     int
	visited    map[string]struct{}
}

// ring places the person at the midpoint of its arc on the ring for gen and
// bisects the arc between its parents. The root (gen 0) is pinned to the
// origin rather than its arc midpoint.
func (w *fanWheel) ring(id string, gen int, startAngle, span float64) {
	w.visited[id] = struct{}{}

	pos := Point{}
	if gen > 0 {
		radius := float64(gen) * w.radiusStep
		mid := startAngle + span/2
		pos = Point{X: radius * math.Cos(mid), Y: radius * math.Sin(mid)}
	}
	w.res.Nodes = append(w.res.Nodes, Node{
		ID:         id,
		Position:   pos,
		Generation: -gen,
		IsRoot:     gen == 0,
	})

	if gen+1 >= w.maxGen {
		return
	}
	half := span / 2
	for i, parent := range w.idx.Parents(id) {
		if i >= 2 {
			break
		}
		if _, seen := w.visited[parent]; seen {
			continue
		}
		w.res.Edges = append(w.res.Edges, Edge{
			ID:     edgeID(id, parent),
			Source: id,
			Target: parent,
			Type:   EdgeStraight,
		})
		w.ring(parent, gen+1, startAngle+float64(i)*half, half)
	}
}
