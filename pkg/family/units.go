package family

import (
	"slices"
	"strings"
)

// Unit groups a spouse pair, or a single parent without a spouse
// relationship, together with their shared children. Units drive the
// left-to-right placement of the orthogonal pedigree layout.
type Unit struct {
	// SpouseIDs holds one or two person IDs. For pairs the order is
	// canonical (sorted), so an unordered spouse pair always produces the
	// same unit.
	SpouseIDs []string

	// ChildIDs holds the shared children sorted by birth date then name.
	// For pairs, a child is shared when its parent set contains both
	// spouses; for single parents, when it contains that one parent.
	ChildIDs []string
}

// Key returns the canonical identity of the unit, "a+b" for pairs or the
// lone parent ID.
func (u Unit) Key() string { return strings.Join(u.SpouseIDs, "+") }

// IsPair reports whether the unit has two spouses.
func (u Unit) IsPair() bool { return len(u.SpouseIDs) == 2 }

// Units identifies every family unit in the graph. Spouse pairs are found
// via the spouse adjacency with a canonical sorted pair key so each pair is
// emitted once; persons with children but no spouse relationship become
// single-parent units. The result is sorted by the first spouse's
// lastName+firstName key to guarantee stable left-to-right ordering.
func Units(idx *Index) []Unit {
	var units []Unit
	seen := make(map[string]struct{})

	for _, id := range idx.PersonIDs() {
		for _, spouse := range idx.Spouses(id) {
			a, b := id, spouse
			if a > b {
				a, b = b, a
			}
			key := a + "+" + b
			if _, done := seen[key]; done {
				continue
			}
			seen[key] = struct{}{}
			units = append(units, Unit{
				SpouseIDs: []string{a, b},
				ChildIDs:  sharedChildren(idx, a, b),
			})
		}
	}

	for _, id := range idx.PersonIDs() {
		if len(idx.Spouses(id)) > 0 || len(idx.Children(id)) == 0 {
			continue
		}
		units = append(units, Unit{
			SpouseIDs: []string{id},
			ChildIDs:  idx.ChildrenByBirth(id),
		})
	}

	slices.SortFunc(units, func(a, b Unit) int {
		if c := strings.Compare(unitSortKey(idx, a), unitSortKey(idx, b)); c != 0 {
			return c
		}
		return strings.Compare(a.Key(), b.Key())
	})
	return units
}

// sharedChildren returns children whose parent set contains both a and b,
// sorted by birth date then name.
func sharedChildren(idx *Index, a, b string) []string {
	var out []string
	for _, child := range idx.Children(a) {
		if slices.Contains(idx.Parents(child), b) {
			out = append(out, child)
		}
	}
	idx.SortByBirth(out)
	return out
}

func unitSortKey(idx *Index, u Unit) string {
	p, ok := idx.Person(u.SpouseIDs[0])
	if !ok {
		return "~"
	}
	return p.LastName + p.FirstName
}
