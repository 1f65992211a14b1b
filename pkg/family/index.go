package family

import (
	"slices"
	"strings"
)

// Index provides O(1) adjacency lookups over a flat person and relationship
// list. It is built once per layout call and never mutated afterwards.
//
// Relationships referencing unknown person IDs are silently skipped, since
// partial graphs (mid-edit state) are expected input.
type Index struct {
	persons  map[string]Person
	parents  map[string][]string // childID -> parent IDs
	children map[string][]string // parentID -> child IDs
	spouses  map[string][]string // personID -> spouse IDs
	order    []string            // person IDs in deterministic sort order
}

// NewIndex builds all lookup maps in one pass over the relationship list.
// Adjacency lists are deduplicated and sorted by person sort key so that
// every later traversal is deterministic regardless of input order.
func NewIndex(persons []Person, relationships []Relationship) *Index {
	idx := &Index{
		persons:  make(map[string]Person, len(persons)),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		spouses:  make(map[string][]string),
	}

	for _, p := range persons {
		if p.ID == "" {
			continue
		}
		idx.persons[p.ID] = p
		idx.order = append(idx.order, p.ID)
	}

	for _, r := range relationships {
		if parent, child, ok := r.ParentChild(); ok {
			if idx.has(parent) && idx.has(child) {
				idx.parents[child] = appendUnique(idx.parents[child], parent)
				idx.children[parent] = appendUnique(idx.children[parent], child)
			}
			continue
		}
		if r.Type == RelSpouse && idx.has(r.From) && idx.has(r.To) && r.From != r.To {
			idx.spouses[r.From] = appendUnique(idx.spouses[r.From], r.To)
			idx.spouses[r.To] = appendUnique(idx.spouses[r.To], r.From)
		}
	}

	idx.sortAdjacency(idx.parents)
	idx.sortAdjacency(idx.children)
	idx.sortAdjacency(idx.spouses)
	slices.SortFunc(idx.order, func(a, b string) int {
		return strings.Compare(idx.persons[a].SortKey(), idx.persons[b].SortKey())
	})

	return idx
}

// Person returns the person with the given ID and true, or the zero Person
// and false if unknown.
func (idx *Index) Person(id string) (Person, bool) {
	p, ok := idx.persons[id]
	return p, ok
}

// Has reports whether the person ID exists in the index.
func (idx *Index) Has(id string) bool { return idx.has(id) }

// PersonCount returns the number of indexed persons.
func (idx *Index) PersonCount() int { return len(idx.persons) }

// PersonIDs returns all person IDs ordered by sort key.
// The returned slice is shared; treat it as read-only.
func (idx *Index) PersonIDs() []string { return idx.order }

// Parents returns the parent IDs of the person, sorted by person sort key.
func (idx *Index) Parents(id string) []string { return idx.parents[id] }

// Children returns the child IDs of the person, sorted by person sort key.
func (idx *Index) Children(id string) []string { return idx.children[id] }

// Spouses returns the spouse IDs of the person, sorted by person sort key.
func (idx *Index) Spouses(id string) []string { return idx.spouses[id] }

// ChildrenByBirth returns the child IDs of the person sorted by birth date,
// then name. This is the order children are placed left to right.
func (idx *Index) ChildrenByBirth(id string) []string {
	out := slices.Clone(idx.children[id])
	idx.sortByBirth(out)
	return out
}

// SortByBirth sorts the given person IDs in place by birth date then name.
// Unknown IDs sort last.
func (idx *Index) SortByBirth(ids []string) { idx.sortByBirth(ids) }

func (idx *Index) sortByBirth(ids []string) {
	slices.SortFunc(ids, func(a, b string) int {
		return strings.Compare(idx.birthKey(a), idx.birthKey(b))
	})
}

func (idx *Index) birthKey(id string) string {
	p, ok := idx.persons[id]
	if !ok {
		return "~" + id
	}
	return birthSortKey(p)
}

func (idx *Index) has(id string) bool {
	_, ok := idx.persons[id]
	return ok
}

func (idx *Index) sortAdjacency(m map[string][]string) {
	for _, ids := range m {
		slices.SortFunc(ids, func(a, b string) int {
			return strings.Compare(idx.persons[a].SortKey(), idx.persons[b].SortKey())
		})
	}
}

func appendUnique(list []string, id string) []string {
	if slices.Contains(list, id) {
		return list
	}
	return append(list, id)
}
