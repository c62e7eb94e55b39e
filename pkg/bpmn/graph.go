package bpmn

import "strings"

// DefaultShape is the shape tag emitted for nodes that arrive without one.
const DefaultShape = "activity"

// Category is the closed set of BPMN element kinds that determine a node's
// nominal size.
type Category int

const (
	// CategoryTask covers tasks, activities and sub-processes. It is also the
	// fallback for unrecognized shape tags.
	CategoryTask Category = iota
	// CategoryEvent covers start, end and intermediate events.
	CategoryEvent
	// CategoryGateway covers all gateway kinds.
	CategoryGateway
)

var categoryNames = map[Category]string{
	CategoryTask:    "task",
	CategoryEvent:   "event",
	CategoryGateway: "gateway",
}

// String returns the lowercase category name used in configuration files.
func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "task"
}

// ParseCategory maps a configuration name ("event", "gateway", "task")
// back to its Category.
func ParseCategory(name string) (Category, bool) {
	for c, s := range categoryNames {
		if s == strings.ToLower(name) {
			return c, true
		}
	}
	return CategoryTask, false
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{CategoryTask, CategoryEvent, CategoryGateway}
}

var eventTags = map[string]bool{
	"event":             true,
	"start":             true,
	"end":               true,
	"startevent":        true,
	"endevent":          true,
	"intermediateevent": true,
	"boundaryevent":     true,
}

var endTags = map[string]bool{
	"end":      true,
	"endevent": true,
}

// CategoryOf maps a shape tag onto its category. Matching ignores case and
// the separators '-' and '_'; unknown tags are tasks.
func CategoryOf(shape string) Category {
	tag := normalizeTag(shape)
	switch {
	case eventTags[tag]:
		return CategoryEvent
	case strings.HasSuffix(tag, "gateway"):
		return CategoryGateway
	case strings.HasSuffix(tag, "event"):
		return CategoryEvent
	default:
		return CategoryTask
	}
}

var taskTags = map[string]bool{
	"task":       true,
	"activity":   true,
	"subprocess": true,
}

// IsKnownShape reports whether the tag names a recognized BPMN element
// rather than falling back to the task category.
func IsKnownShape(shape string) bool {
	tag := normalizeTag(shape)
	return taskTags[tag] || strings.HasSuffix(tag, "task") || CategoryOf(shape) != CategoryTask
}

// IsEndShape reports whether the shape tag denotes an end event.
func IsEndShape(shape string) bool { return endTags[normalizeTag(shape)] }

func normalizeTag(shape string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(shape))
}

// Node is a logical BPMN element.
type Node struct {
	ID    ID     `json:"id"`
	Shape string `json:"shape"`
	Label string `json:"label,omitempty"`
	Thick bool   `json:"thick,omitempty"`
}

// Category returns the node's shape category.
func (n Node) Category() Category { return CategoryOf(n.Shape) }

// DisplayShape returns the shape tag, or [DefaultShape] when none was given.
func (n Node) DisplayShape() string {
	if n.Shape == "" {
		return DefaultShape
	}
	return n.Shape
}

// DisplayLabel returns the label, or the id as text when the node has none.
func (n Node) DisplayLabel() string {
	if n.Label == "" {
		return n.ID.String()
	}
	return n.Label
}

// Edge is a sequence flow between two nodes.
type Edge struct {
	Source ID `json:"source"`
	Target ID `json:"target"`
}

// Graph is a logical BPMN diagram: nodes plus directed edges. It carries no
// geometry.
//
// The zero value is an empty, valid graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool { return g == nil || len(g.Nodes) == 0 }

// Node returns the first node with the given id.
func (g *Graph) Node(id ID) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// MaxIntID returns the largest integer id among the nodes, counting string
// ids that parse as integers. It returns 0 when no node has an integer id.
func (g *Graph) MaxIntID() int64 {
	var max int64
	for _, n := range g.Nodes {
		if v, ok := n.ID.Int(); ok && v > max {
			max = v
		}
	}
	return max
}
