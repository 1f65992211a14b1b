// Package layout converts a person/relationship graph into a 2-D
// arrangement of positioned nodes and edges suitable for rendering.
//
// Six interchangeable strategies share one contract ([Strategy]): pedigree
// (combined ancestor/descendant chart), orthogonal (generation rows with
// synthetic junction nodes and right-angle connectors), vertical (descendant
// tree with subtree-width balancing), horizontal (binary ancestor fan), fan
// (polar/radial ancestor chart) and timeline (chronological row packing by
// lifespan). Strategies are stateless and held in a name-keyed [Registry].
//
// # Determinism
//
// Every strategy is pure: identical inputs always produce an identical
// [Result], bit for bit. All traversals iterate adjacency lists in sorted
// order and carry explicit visited sets, so graphs containing cycles
// (consanguineous marriages, remarriage loops) terminate with each person
// positioned at most once.
//
// The engine performs no I/O and holds no state across calls; callers are
// responsible for memoizing results when the underlying graph is unchanged.
package layout

import "github.com/kinlab/kinchart/pkg/family"

// Edge routing types consumed by renderers.
const (
	EdgeStraight   = "straight"
	EdgeOrthogonal = "orthogonal"
	EdgeBezier     = "bezier"
	EdgeSpouse     = "spouse"
)

// Point is a 2-D coordinate. Units are whatever the spacing options are
// expressed in (typically pixels).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned person. Produced once per person, never mutated
// after creation.
type Node struct {
	ID         string `json:"id"` // Person ID
	Position   Point  `json:"position"`
	Generation int    `json:"generation"` // Signed level, root = 0
	IsRoot     bool   `json:"isRoot,omitempty"`
}

// Edge is a positioned logical connection. Spouse edges are deduplicated:
// an unordered pair produces exactly one edge regardless of declaration
// direction. Type is one of the Edge* routing constants.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Type     string `json:"type"`
	Animated bool   `json:"animated,omitempty"`
}

// Junction is a synthetic node with no person backing. It merges one or two
// spouse trunks into a single line before branching to children, enabling
// right-angle routing in the orthogonal strategy. Consumers can distinguish
// junctions from persons because they live in their own slice on [Result].
type Junction struct {
	ID        string   `json:"id"`
	Position  Point    `json:"position"`
	ParentIDs []string `json:"parentIds"` // 1 or 2 person IDs
	ChildIDs  []string `json:"childIds"`
}

// Row describes one horizontal generation band, one per distinct level
// present in the graph.
type Row struct {
	Level        int     `json:"level"`
	Y            float64 `json:"y"`
	Height       float64 `json:"height"`
	Label        string  `json:"label"`
	LabelVisible bool    `json:"labelVisible"`
}

// Bounds is the axis-aligned bounding box enclosing all positioned nodes,
// used by callers for initial view framing.
type Bounds struct {
	MinX   float64 `json:"minX"`
	MaxX   float64 `json:"maxX"`
	MinY   float64 `json:"minY"`
	MaxY   float64 `json:"maxY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is the aggregate output of a strategy. Node IDs are unique within
// a result, and the root person (when present in the input) yields exactly
// one node with IsRoot set.
type Result struct {
	Nodes     []Node     `json:"nodes"`
	Edges     []Edge     `json:"edges"`
	Junctions []Junction `json:"junctions,omitempty"`
	Rows      []Row      `json:"rows,omitempty"`
	Bounds    Bounds     `json:"bounds"`
	Center    Point      `json:"centerPoint"`
}

// Options configures a layout calculation. The zero value is valid: each
// strategy substitutes its own defaults for unset fields.
type Options struct {
	// HorizontalSpacing is the horizontal distance between adjacent nodes
	// or generations, depending on the strategy's main axis. The fan
	// strategy uses it as the radius increment per ring; the timeline
	// strategy derives its per-year width from it.
	HorizontalSpacing float64

	// VerticalSpacing is the vertical distance between adjacent nodes or
	// generation rows.
	VerticalSpacing float64

	// NodeWidth and NodeHeight size the node boxes. Only the orthogonal
	// strategy consults them (for junction offsets and row heights).
	NodeWidth  float64
	NodeHeight float64

	// MaxGenerations bounds recursion depth for the vertical, horizontal
	// and fan strategies, counted inclusively from the root (1 keeps the
	// root generation only). Zero or negative selects the strategy
	// default.
	MaxGenerations int

	// Direction flips the growth axis of the vertical strategy:
	// "down" (default), "up", "left" or "right".
	Direction string

	// ShowGenerationLabels toggles row label visibility in the orthogonal
	// strategy.
	ShowGenerationLabels bool
}

// Strategy is the shared contract implemented by every layout algorithm.
// Implementations are stateless and safe for concurrent use.
type Strategy interface {
	// Name returns the registry key of the strategy.
	Name() string

	// Calculate lays out the given graph rooted at rootID.
	Calculate(persons []family.Person, relationships []family.Relationship, rootID string, opts Options) (*Result, error)
}

// edgeID builds the canonical edge identifier "source-target".
func edgeID(source, target string) string { return source + "-" + target }

// spouseEdge returns the single canonical edge for an unordered spouse
// pair. The lexicographically smaller ID becomes the source.
func spouseEdge(a, b string, animated bool) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{
		ID:       edgeID(a, b) + "-spouse",
		Source:   a,
		Target:   b,
		Type:     EdgeSpouse,
		Animated: animated,
	}
}

// defaultFloat returns v, or def when v is unset.
func defaultFloat(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// defaultInt returns v, or def when v is unset.
func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
