// Package family models a person/relationship graph and provides the
// lookups the layout strategies are built on: person-by-id resolution,
// parent/child/spouse adjacency, generation assignment, and family unit
// grouping.
//
// The package is purely in-memory and side-effect free. Graphs may contain
// cycles (consanguineous marriages, remarriage loops); every traversal
// carries an explicit visited set, so all operations terminate in
// O(persons + relationships).
package family

import (
	"strings"
	"time"
)

// Person is an immutable input record to the layout engine.
// Display fields are only used for deterministic tie-break ordering.
type Person struct {
	ID          string     // Unique identifier
	FirstName   string     // Given name
	LastName    string     // Family name
	DateOfBirth *time.Time // Optional birth date
	DateOfDeath *time.Time // Optional death date
}

// DisplayName returns "FirstName LastName", falling back to the ID when
// both name fields are empty.
func (p Person) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.ID
	}
	return name
}

// SortKey returns the deterministic ordering key "LastName|FirstName|ID".
// The ID suffix guarantees a total order even for identically named persons.
func (p Person) SortKey() string {
	return p.LastName + "|" + p.FirstName + "|" + p.ID
}

// BirthYear returns the birth year and true, or 0 and false when the
// person has no recorded birth date.
func (p Person) BirthYear() (int, bool) {
	if p.DateOfBirth == nil {
		return 0, false
	}
	return p.DateOfBirth.Year(), true
}

// DeathYear returns the death year and true, or 0 and false when the
// person has no recorded death date.
func (p Person) DeathYear() (int, bool) {
	if p.DateOfDeath == nil {
		return 0, false
	}
	return p.DateOfDeath.Year(), true
}

// birthSortKey orders persons by birth date, then name. Persons without a
// birth date sort after dated ones.
func birthSortKey(p Person) string {
	if p.DateOfBirth == nil {
		return "9999-99-99|" + p.SortKey()
	}
	return p.DateOfBirth.Format("2006-01-02") + "|" + p.SortKey()
}
