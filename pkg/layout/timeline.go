package layout

import (
	"slices"
	"strings"

	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/family"
)

// Timeline strategy defaults.
const (
	timelineDefaultHSpacing = 200.0
	timelineDefaultVSpacing = 120.0

	// timelineYearsPerSpacing is how many years one HorizontalSpacing unit
	// covers on the x axis.
	timelineYearsPerSpacing = 10.0

	// timelineRowBuffer is the minimum gap, in years, between the end of
	// one lifespan and the start of the next within a row.
	timelineRowBuffer = 5

	// timelineAssumedLifespan closes open lifespans (no death date) for
	// row-packing purposes.
	timelineAssumedLifespan = 90
)

// TimelineStrategy lays persons out chronologically: x is proportional to
// birth year, and rows are assigned by greedy interval packing so that
// lifespans within a row never overlap. Persons lacking a birth date are
// excluded from the output entirely; this is documented behavior, since a
// timeline position is undefined without a date.
type TimelineStrategy struct{}

// Name implements Strategy.
func (s *TimelineStrategy) Name() string { return StrategyTimeline }

// Calculate implements Strategy. It fails with a ROOT_NOT_FOUND error when
// rootID is absent from the supplied persons.
func (s *TimelineStrategy) Calculate(persons []family.Person, relationships []family.Relationship, rootID string, opts Options) (*Result, error) {
	hs := defaultFloat(opts.HorizontalSpacing, timelineDefaultHSpacing)
	vs := defaultFloat(opts.VerticalSpacing, timelineDefaultVSpacing)
	yearWidth := hs / timelineYearsPerSpacing

	idx := family.NewIndex(persons, relationships)
	if !idx.Has(rootID) {
		return nil, kcerrors.New(kcerrors.ErrCodeRootNotFound, "root person %q not found", rootID)
	}
	levels := family.AssignGenerations(idx, rootID)

	dated := datedPersons(idx)
	res := &Result{}
	if len(dated) == 0 {
		finalize(res)
		return res, nil
	}

	minYear, _ := dated[0].BirthYear()
	var rowEnds []int // last occupied year per row

	included := make(map[string]struct{}, len(dated))
	for _, p := range dated {
		birth, _ := p.BirthYear()
		end := birth + timelineAssumedLifespan
		if death, ok := p.DeathYear(); ok {
			end = death
		}

		row := len(rowEnds)
		for i, rowEnd := range rowEnds {
			if birth > rowEnd+timelineRowBuffer {
				row = i
				break
			}
		}
		if row == len(rowEnds) {
			rowEnds = append(rowEnds, end)
		} else {
			rowEnds[row] = end
		}

		included[p.ID] = struct{}{}
		res.Nodes = append(res.Nodes, Node{
			ID:         p.ID,
			Position:   Point{X: float64(birth-minYear) * yearWidth, Y: float64(row) * vs},
			Generation: levels[p.ID],
			IsRoot:     p.ID == rootID,
		})
	}

	res.Edges = timelineEdges(relationships, included)
	sortNodes(res.Nodes)
	finalize(res)
	return res, nil
}

// datedPersons returns every person with a birth date, sorted by birth year
// then name so row packing is deterministic.
func datedPersons(idx *family.Index) []family.Person {
	var out []family.Person
	for _, id := range idx.PersonIDs() {
		p, _ := idx.Person(id)
		if _, ok := p.BirthYear(); ok {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b family.Person) int {
		ay, _ := a.BirthYear()
		by, _ := b.BirthYear()
		if ay != by {
			return ay - by
		}
		return strings.Compare(a.SortKey(), b.SortKey())
	})
	return out
}

// timelineEdges emits one animated spouse edge per unordered pair and a
// straight edge per parent/child link, restricted to included persons.
func timelineEdges(relationships []family.Relationship, included map[string]struct{}) []Edge {
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
		if _, ok := included[r.From]; !ok {
			continue
		}
		if _, ok := included[r.To]; !ok {
			continue
		}
		if r.Type == family.RelSpouse {
			add(spouseEdge(r.From, r.To, true))
			continue
		}
		if parent, child, ok := r.ParentChild(); ok {
			add(Edge{ID: edgeID(parent, child), Source: parent, Target: child, Type: EdgeStraight})
		}
	}

	sortEdges(edges)
	return edges
}
