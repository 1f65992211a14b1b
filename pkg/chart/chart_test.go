package chart

import (
	"bytes"
	"strings"
	"testing"

	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/layout"
)

func testChart() Chart {
	return Chart{
		Persons: []Person{
			{ID: "p1", FirstName: "Anna", LastName: "Berg", DateOfBirth: "1950-03-01"},
			{ID: "p2", FirstName: "Karl", LastName: "Berg", DateOfBirth: "1948-07-12", DateOfDeath: "2020-01-05"},
			{ID: "p3", FirstName: "Lena", LastName: "Berg"},
		},
		Relationships: []Relationship{
			{ID: "r1", From: "p1", To: "p3", Type: "parent"},
			{ID: "r2", From: "p2", To: "p3", Type: "parent"},
			{ID: "r3", From: "p1", To: "p2", Type: "spouse"},
		},
	}
}

func TestChartRoundTrip(t *testing.T) {
	c := testChart()

	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	data2, err := Marshal(back)
	if err != nil {
		t.Fatalf("re-Marshal: %v", err)
	}
	if !bytes.Equal(data, data2) {
		t.Error("round trip changed the serialized bytes")
	}
}

func TestChartToFamily(t *testing.T) {
	persons, relationships, err := testChart().ToFamily()
	if err != nil {
		t.Fatal(err)
	}
	if len(persons) != 3 || len(relationships) != 3 {
		t.Fatalf("got %d persons, %d relationships", len(persons), len(relationships))
	}

	if persons[0].DateOfBirth == nil || persons[0].DateOfBirth.Year() != 1950 {
		t.Errorf("p1 birth date not parsed: %+v", persons[0].DateOfBirth)
	}
	if persons[2].DateOfBirth != nil {
		t.Error("p3 has no date and should parse to nil")
	}

	// Wire form feeds straight into a layout strategy.
	res, err := (&layout.VerticalStrategy{}).Calculate(persons, relationships, "p1", layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(res.Nodes))
	}
}

func TestChartFromFamilySortsByID(t *testing.T) {
	persons, relationships, err := testChart().ToFamily()
	if err != nil {
		t.Fatal(err)
	}

	// Reverse order in, sorted order out.
	for i, j := 0, len(persons)-1; i < j; i, j = i+1, j-1 {
		persons[i], persons[j] = persons[j], persons[i]
	}
	c := FromFamily(persons, relationships)
	for i := 1; i < len(c.Persons); i++ {
		if c.Persons[i-1].ID > c.Persons[i].ID {
			t.Fatalf("persons not sorted: %v before %v", c.Persons[i-1].ID, c.Persons[i].ID)
		}
	}
}

func TestChartDateRoundTrip(t *testing.T) {
	persons, relationships, err := testChart().ToFamily()
	if err != nil {
		t.Fatal(err)
	}
	c := FromFamily(persons, relationships)

	var p2 Person
	for _, p := range c.Persons {
		if p.ID == "p2" {
			p2 = p
		}
	}
	if p2.DateOfBirth != "1948-07-12" || p2.DateOfDeath != "2020-01-05" {
		t.Errorf("p2 dates = %q / %q", p2.DateOfBirth, p2.DateOfDeath)
	}
}

func TestChartValidation(t *testing.T) {
	tests := []struct {
		name  string
		chart Chart
	}{
		{"empty person id", Chart{Persons: []Person{{ID: ""}}}},
		{"duplicate person id", Chart{Persons: []Person{{ID: "a"}, {ID: "a"}}}},
		{"empty endpoint", Chart{
			Persons:       []Person{{ID: "a"}},
			Relationships: []Relationship{{ID: "r", From: "a", To: ""}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.chart.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !kcerrors.Is(err, kcerrors.ErrCodeInvalidChart) {
				t.Errorf("error code = %v, want INVALID_CHART", kcerrors.GetCode(err))
			}
		})
	}
}

func TestChartBadDate(t *testing.T) {
	c := Chart{Persons: []Person{{ID: "a", DateOfBirth: "12.03.1950"}}}
	_, _, err := c.ToFamily()
	if err == nil {
		t.Fatal("expected date parse error")
	}
	if !kcerrors.Is(err, kcerrors.ErrCodeInvalidChart) {
		t.Errorf("error code = %v, want INVALID_CHART", kcerrors.GetCode(err))
	}
}

func TestReadRejectsInvalid(t *testing.T) {
	_, err := Read(strings.NewReader(`{"persons":[{"id":"a"},{"id":"a"}]}`))
	if err == nil {
		t.Fatal("expected validation error from Read")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	persons, relationships, err := testChart().ToFamily()
	if err != nil {
		t.Fatal(err)
	}
	res, err := (&layout.OrthogonalStrategy{}).Calculate(persons, relationships, "p3", layout.Options{})
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalLayout(res)
	if err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Nodes) != len(res.Nodes) || len(back.Junctions) != len(res.Junctions) {
		t.Errorf("layout round trip lost elements: %d/%d nodes, %d/%d junctions",
			len(back.Nodes), len(res.Nodes), len(back.Junctions), len(res.Junctions))
	}
}
