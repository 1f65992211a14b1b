package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kinlab/kinchart/pkg/family"
	"github.com/kinlab/kinchart/pkg/layout"
)

func birth(year int) *time.Time {
	t := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func testResult(t *testing.T) (*layout.Result, []family.Person, []family.Relationship) {
	t.Helper()
	persons := []family.Person{
		{ID: "p1", FirstName: "Anna", LastName: "Berg", DateOfBirth: birth(1950)},
		{ID: "p2", FirstName: "Karl", LastName: "Berg", DateOfBirth: birth(1948)},
		{ID: "p3", FirstName: "Lena", LastName: "Berg", DateOfBirth: birth(1975)},
	}
	relationships := []family.Relationship{
		{ID: "r1", Type: family.RelParent, From: "p1", To: "p3"},
		{ID: "r2", Type: family.RelParent, From: "p2", To: "p3"},
		{ID: "r3", Type: family.RelSpouse, From: "p1", To: "p2"},
	}
	res, err := (&layout.OrthogonalStrategy{}).Calculate(persons, relationships, "p3", layout.Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return res, persons, relationships
}

func TestRenderSVGStructure(t *testing.T) {
	res, persons, _ := testResult(t)

	svg := string(RenderSVG(res, WithPersons(persons)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root element, got prefix %q", svg[:40])
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("missing closing svg tag")
	}
	if got := strings.Count(svg, "<rect"); got != len(persons) {
		t.Errorf("node rect count = %d, want %d", got, len(persons))
	}
	// One junction for the p1+p2 couple.
	if got := strings.Count(svg, "<circle"); got != 1 {
		t.Errorf("junction circle count = %d, want 1", got)
	}
}

func TestRenderSVGLabels(t *testing.T) {
	res, persons, _ := testResult(t)

	withNames := string(RenderSVG(res, WithPersons(persons)))
	if !strings.Contains(withNames, "Anna Berg (1950)") {
		t.Error("expected display name with birth year in labeled output")
	}

	bare := string(RenderSVG(res))
	if strings.Contains(bare, "Anna Berg") {
		t.Error("unlabeled output should fall back to IDs")
	}
	if !strings.Contains(bare, ">p1<") {
		t.Error("unlabeled output should contain raw node IDs")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	persons := []family.Person{
		{ID: "p1", FirstName: "A<b>", LastName: `"X" & Co`},
	}
	res, err := (&layout.OrthogonalStrategy{}).Calculate(persons, nil, "p1", layout.Options{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	svg := string(RenderSVG(res, WithPersons(persons)))
	if strings.Contains(svg, "<b>") {
		t.Error("label markup was not escaped")
	}
	if !strings.Contains(svg, "A&lt;b&gt; &quot;X&quot; &amp; Co") {
		t.Errorf("escaped label missing from output:\n%s", svg)
	}
}

func TestRenderSVGEdgeClasses(t *testing.T) {
	res, _, _ := testResult(t)

	svg := string(RenderSVG(res))
	if !strings.Contains(svg, `class="spouse"`) {
		t.Error("spouse edge should carry the spouse class")
	}
	// Couple-to-junction drops use right-angle paths.
	if !strings.Contains(svg, "<path") {
		t.Error("orthogonal edges should render as paths")
	}
}

func TestRenderSVGRootHighlight(t *testing.T) {
	res, _, _ := testResult(t)

	svg := string(RenderSVG(res))
	if got := strings.Count(svg, `stroke="#c33"`); got != 1 {
		t.Errorf("root highlight count = %d, want 1", got)
	}
}

func TestRenderSVGRowBands(t *testing.T) {
	res, persons, _ := testResult(t)

	plain := RenderSVG(res, WithPersons(persons))
	banded := RenderSVG(res, WithPersons(persons), WithRowBands())

	// Two generations: the couple's row and the child's row.
	extra := strings.Count(string(banded), "<rect") - strings.Count(string(plain), "<rect")
	if extra != 2 {
		t.Errorf("row band rect count = %d, want 2", extra)
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	res, persons, _ := testResult(t)

	a := RenderSVG(res, WithPersons(persons))
	b := RenderSVG(res, WithPersons(persons))
	if !bytes.Equal(a, b) {
		t.Error("identical inputs should produce byte-identical SVG")
	}
}

func TestRenderSVGSkipsDanglingEdges(t *testing.T) {
	res := &layout.Result{
		Nodes: []layout.Node{{ID: "a", Position: layout.Point{X: 0, Y: 0}}},
		Edges: []layout.Edge{{ID: "a-ghost", Source: "a", Target: "ghost", Type: layout.EdgeStraight}},
	}

	svg := string(RenderSVG(res))
	if strings.Contains(svg, "<line") {
		t.Error("edge to unknown node should be skipped")
	}
}
