package chart

import (
	"fmt"
	"slices"
	"strings"
	"time"

	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/family"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DateFormat is the wire format for all person dates.
const DateFormat = "2006-01-02"

// =============================================================================
// Chart - Family Graph Serialization
// =============================================================================

// Chart is the canonical serialization format for a family graph.
// Used for file storage, caching keys, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// import → layout → export → re-import produces identical results.
type Chart struct {
	Persons       []Person       `json:"persons"`
	Relationships []Relationship `json:"relationships"`
}

// Person is the wire form of a person record. Dates are ISO-8601 calendar
// dates (YYYY-MM-DD) or empty.
type Person struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	DateOfDeath string `json:"dateOfDeath,omitempty"`
}

// Relationship is the wire form of a relationship record.
type Relationship struct {
	ID   string `json:"id"`
	From string `json:"fromPersonId"`
	To   string `json:"toPersonId"`
	Type string `json:"type"`
}

// =============================================================================
// Family ↔ Chart Conversion
// =============================================================================

// FromFamily converts in-memory records to their serialization format.
// Persons and relationships are sorted by ID for deterministic output.
func FromFamily(persons []family.Person, relationships []family.Relationship) Chart {
	out := Chart{
		Persons:       make([]Person, len(persons)),
		Relationships: make([]Relationship, len(relationships)),
	}

	for i, p := range persons {
		out.Persons[i] = Person{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			DateOfBirth: formatDate(p.DateOfBirth),
			DateOfDeath: formatDate(p.DateOfDeath),
		}
	}
	for i, r := range relationships {
		out.Relationships[i] = Relationship{
			ID:   r.ID,
			From: r.From,
			To:   r.To,
			Type: string(r.Type),
		}
	}

	slices.SortFunc(out.Persons, func(a, b Person) int { return strings.Compare(a.ID, b.ID) })
	slices.SortFunc(out.Relationships, func(a, b Relationship) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// ToFamily converts a Chart to in-memory records.
// Returns a validation error for duplicate or empty person IDs and for
// malformed dates; relationships referencing unknown persons are kept, since
// the layout engine skips dangling references itself.
func (c Chart) ToFamily() ([]family.Person, []family.Relationship, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	persons := make([]family.Person, len(c.Persons))
	for i, p := range c.Persons {
		born, err := parseDate(p.DateOfBirth)
		if err != nil {
			return nil, nil, kcerrors.Wrap(kcerrors.ErrCodeInvalidChart, err, "person %s: dateOfBirth", p.ID)
		}
		died, err := parseDate(p.DateOfDeath)
		if err != nil {
			return nil, nil, kcerrors.Wrap(kcerrors.ErrCodeInvalidChart, err, "person %s: dateOfDeath", p.ID)
		}
		persons[i] = family.Person{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			DateOfBirth: born,
			DateOfDeath: died,
		}
	}

	relationships := make([]family.Relationship, len(c.Relationships))
	for i, r := range c.Relationships {
		relationships[i] = family.Relationship{
			ID:   r.ID,
			From: r.From,
			To:   r.To,
			Type: family.RelationshipType(r.Type),
		}
	}
	return persons, relationships, nil
}

// Validate checks structural constraints: person IDs present and unique,
// relationship endpoints non-empty.
func (c Chart) Validate() error {
	seen := make(map[string]struct{}, len(c.Persons))
	for i, p := range c.Persons {
		if err := kcerrors.ValidatePersonID(p.ID); err != nil {
			return kcerrors.Wrap(kcerrors.ErrCodeInvalidChart, err, "person at index %d", i)
		}
		if _, dup := seen[p.ID]; dup {
			return kcerrors.New(kcerrors.ErrCodeInvalidChart, "duplicate person id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	for _, r := range c.Relationships {
		if r.From == "" || r.To == "" {
			return kcerrors.New(kcerrors.ErrCodeInvalidChart, "relationship %q has empty endpoint", r.ID)
		}
	}
	return nil
}

// PersonCount returns the number of persons in the chart.
func (c Chart) PersonCount() int { return len(c.Persons) }

// =============================================================================
// Internal Helpers
// =============================================================================

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateFormat)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	return &t, nil
}
