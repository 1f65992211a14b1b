package layout

import (
	"testing"

	"github.com/kinlab/kinchart/pkg/family"
)

func TestVerticalSinglePerson(t *testing.T) {
	persons := []family.Person{{ID: "1"}}

	res, err := (&VerticalStrategy{}).Calculate(persons, nil, "1", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(res.Nodes))
	}
	if len(res.Edges) != 0 {
		t.Errorf("got %d edges, want 0", len(res.Edges))
	}
	n := res.Nodes[0]
	if n.ID != "1" || !n.IsRoot || n.Generation != 0 {
		t.Errorf("unexpected root node %+v", n)
	}
}

// Persons not reachable from the root via child edges are omitted.
func TestVerticalUnreachableOmitted(t *testing.T) {
	persons := []family.Person{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	relationships := []family.Relationship{
		{ID: "r1", From: "1", To: "3", Type: family.RelParent},
		{ID: "r2", From: "2", To: "3", Type: family.RelParent},
	}

	res, err := (&VerticalStrategy{}).Calculate(persons, relationships, "1", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(res.Nodes))
	}
	if hasNode(res, "2") {
		t.Error("person 2 is not a descendant of 1 and should be omitted")
	}
	if len(res.Edges) != 1 || res.Edges[0].ID != "1-3" {
		t.Errorf("edges = %+v, want single 1-3", res.Edges)
	}
}

// A parent's x must be the arithmetic mean of its direct children's x.
func TestVerticalParentCentering(t *testing.T) {
	persons, relationships := testTree()

	res, err := (&VerticalStrategy{}).Calculate(persons, relationships, "gp1", Options{})
	if err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		parent   string
		children []string
	}{
		{"gp1", []string{"aunt", "f"}},
		{"f", []string{"c1", "c2"}},
	}
	for _, c := range checks {
		var sum float64
		for _, child := range c.children {
			sum += findNode(t, res, child).Position.X
		}
		mean := sum / float64(len(c.children))
		if got := findNode(t, res, c.parent).Position.X; got != mean {
			t.Errorf("x(%s) = %v, want mean of children %v", c.parent, got, mean)
		}
	}
}

func TestVerticalDirections(t *testing.T) {
	persons := []family.Person{{ID: "p"}, {ID: "c"}}
	relationships := []family.Relationship{
		{ID: "r", From: "p", To: "c", Type: family.RelParent},
	}

	tests := []struct {
		direction string
		check     func(parent, child Node) bool
	}{
		{"down", func(p, c Node) bool { return c.Position.Y > p.Position.Y }},
		{"up", func(p, c Node) bool { return c.Position.Y < p.Position.Y }},
		{"right", func(p, c Node) bool { return c.Position.X > p.Position.X }},
		{"left", func(p, c Node) bool { return c.Position.X < p.Position.X }},
	}
	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			res, err := (&VerticalStrategy{}).Calculate(persons, relationships, "p", Options{Direction: tt.direction})
			if err != nil {
				t.Fatal(err)
			}
			parent := findNode(t, res, "p")
			child := findNode(t, res, "c")
			if !tt.check(parent, child) {
				t.Errorf("direction %q: parent %+v child %+v", tt.direction, parent.Position, child.Position)
			}
		})
	}
}

// MaxGenerations counts inclusively from the root: 1 keeps the root only.
func TestVerticalMaxGenerations(t *testing.T) {
	persons, relationships := testTree()

	tests := []struct {
		maxGen    int
		wantNodes int
	}{
		{1, 1}, // gp1
		{2, 3}, // + aunt, f
		{3, 5}, // + c1, c2
	}
	for _, tt := range tests {
		res, err := (&VerticalStrategy{}).Calculate(persons, relationships, "gp1", Options{MaxGenerations: tt.maxGen})
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Nodes) != tt.wantNodes {
			t.Errorf("maxGen=%d: got %d nodes, want %d", tt.maxGen, len(res.Nodes), tt.wantNodes)
		}
	}
}

func TestVerticalCycleTerminates(t *testing.T) {
	persons := []family.Person{{ID: "a"}, {ID: "b"}}
	relationships := []family.Relationship{
		{ID: "r1", From: "a", To: "b", Type: family.RelParent},
		{ID: "r2", From: "b", To: "a", Type: family.RelParent},
	}

	res, err := (&VerticalStrategy{}).Calculate(persons, relationships, "a", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(res.Nodes))
	}
}
