package family

import (
	"slices"
	"testing"
)

func TestUnitsSpousePair(t *testing.T) {
	persons, relationships := testFamily()
	idx := NewIndex(persons, relationships)

	units := Units(idx)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1: %+v", len(units), units)
	}

	u := units[0]
	if !u.IsPair() {
		t.Error("unit should be a spouse pair")
	}
	if got := u.Key(); got != "p1+p2" {
		t.Errorf("Key = %q, want p1+p2", got)
	}
	// Shared children in birth order.
	if want := []string{"p4", "p3"}; !slices.Equal(u.ChildIDs, want) {
		t.Errorf("ChildIDs = %v, want %v", u.ChildIDs, want)
	}
}

func TestUnitsCanonicalPairKey(t *testing.T) {
	persons := []Person{{ID: "x"}, {ID: "y"}}
	for _, rel := range []Relationship{
		{ID: "r", From: "x", To: "y", Type: RelSpouse},
		{ID: "r", From: "y", To: "x", Type: RelSpouse},
	} {
		idx := NewIndex(persons, []Relationship{rel})
		units := Units(idx)
		if len(units) != 1 {
			t.Fatalf("got %d units, want 1", len(units))
		}
		if got := units[0].Key(); got != "x+y" {
			t.Errorf("Key = %q, want canonical x+y", got)
		}
	}
}

func TestUnitsSingleParent(t *testing.T) {
	persons := []Person{
		{ID: "p", FirstName: "Sole", LastName: "Parent"},
		{ID: "c1", DateOfBirth: date("2001-05-01")},
		{ID: "c2", DateOfBirth: date("1999-02-01")},
	}
	relationships := []Relationship{
		{ID: "r1", From: "p", To: "c1", Type: RelParent},
		{ID: "r2", From: "p", To: "c2", Type: RelParent},
	}
	idx := NewIndex(persons, relationships)

	units := Units(idx)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	u := units[0]
	if u.IsPair() {
		t.Error("single parent should not be a pair")
	}
	if got := u.Key(); got != "p" {
		t.Errorf("Key = %q, want p", got)
	}
	if want := []string{"c2", "c1"}; !slices.Equal(u.ChildIDs, want) {
		t.Errorf("ChildIDs = %v, want birth order %v", u.ChildIDs, want)
	}
}

// A child is shared only when both spouses are among its parents. A child
// from a previous marriage belongs to its own parent's unit, not the pair.
func TestUnitsSharedChildrenOnly(t *testing.T) {
	persons := []Person{
		{ID: "a", LastName: "A"},
		{ID: "b", LastName: "B"},
		{ID: "shared"},
		{ID: "stepkid"},
	}
	relationships := []Relationship{
		{ID: "r1", From: "a", To: "b", Type: RelSpouse},
		{ID: "r2", From: "a", To: "shared", Type: RelParent},
		{ID: "r3", From: "b", To: "shared", Type: RelParent},
		{ID: "r4", From: "a", To: "stepkid", Type: RelParent},
	}
	idx := NewIndex(persons, relationships)

	units := Units(idx)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if want := []string{"shared"}; !slices.Equal(units[0].ChildIDs, want) {
		t.Errorf("ChildIDs = %v, want %v", units[0].ChildIDs, want)
	}
}

func TestUnitsDeterministicOrder(t *testing.T) {
	persons := []Person{
		{ID: "1", FirstName: "Zoe", LastName: "Young"},
		{ID: "2", FirstName: "Yan", LastName: "Young"},
		{ID: "3", FirstName: "Al", LastName: "Abel"},
		{ID: "4", FirstName: "Bo", LastName: "Abel"},
	}
	relationships := []Relationship{
		{ID: "r1", From: "1", To: "2", Type: RelSpouse},
		{ID: "r2", From: "3", To: "4", Type: RelSpouse},
	}

	idx := NewIndex(persons, relationships)
	units := Units(idx)
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2", len(units))
	}
	// Abel before Young regardless of declaration order.
	if got := units[0].Key(); got != "3+4" {
		t.Errorf("first unit = %q, want 3+4", got)
	}
}
