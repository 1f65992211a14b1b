package family

// RelationshipType classifies a connection between two persons.
type RelationshipType string

// Relationship types. The layout engine interprets only Parent, Child and
// Spouse; the remaining types are carried for collaborators (editing UI,
// validation) and are ignored when building adjacency.
const (
	RelParent         RelationshipType = "parent"
	RelChild          RelationshipType = "child"
	RelSpouse         RelationshipType = "spouse"
	RelSibling        RelationshipType = "sibling"
	RelStepParent     RelationshipType = "step-parent"
	RelStepChild      RelationshipType = "step-child"
	RelAdoptiveParent RelationshipType = "adoptive-parent"
	RelAdoptiveChild  RelationshipType = "adoptive-child"
	RelPartner        RelationshipType = "partner"
)

// Relationship is a directed connection between two persons.
// For RelParent, From is the parent and To is the child. For RelChild the
// direction is inverted (From is the child). RelSpouse is symmetric.
type Relationship struct {
	ID   string
	From string // Source person ID
	To   string // Target person ID
	Type RelationshipType
}

// IsLineal reports whether the relationship is a biological parent/child
// link, the only directional kind the layout engine follows.
func (r Relationship) IsLineal() bool {
	return r.Type == RelParent || r.Type == RelChild
}

// ParentChild returns the relationship normalized to (parentID, childID).
// The second return is false for non-lineal relationships.
func (r Relationship) ParentChild() (string, string, bool) {
	switch r.Type {
	case RelParent:
		return r.From, r.To, true
	case RelChild:
		return r.To, r.From, true
	default:
		return "", "", false
	}
}
