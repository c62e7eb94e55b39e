package editor

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// GenericSize is the size given to nodes of an unrecognized shape when the
// caller does not pass one.
var GenericSize = layout.Size{Width: 80, Height: 50}

// Editor holds a mutable copy of a record list.
//
// Editor is not safe for concurrent use.
type Editor struct {
	records layout.Records
	canvas  layout.Canvas
	sizes   layout.Sizes
	logger  *log.Logger
}

// Option configures an [Editor].
type Option func(*Editor)

// WithLogger sets the logger that records each edit at info level.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSizes overrides the nominal sizes used for nodes added without an
// explicit size.
func WithSizes(s layout.Sizes) Option {
	return func(e *Editor) { e.sizes = s }
}

// New creates an editor over a copy of records. Records must not contain
// duplicate ids, and every edge must connect two node records.
func New(records layout.Records, canvas layout.Canvas, opts ...Option) (*Editor, error) {
	if err := bperrors.ValidateCanvas(canvas.Width, canvas.Height); err != nil {
		return nil, err
	}

	e := &Editor{
		records: slices.Clone(records),
		canvas:  canvas,
		sizes:   layout.DefaultSizes(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.check(); err != nil {
		return nil, err
	}
	e.logger.Debug("editor initialized", "records", len(e.records))
	return e, nil
}

func (e *Editor) check() error {
	ids := make(map[bpmn.ID]bool, len(e.records))
	for i, r := range e.records {
		id := r.RecordID()
		if id.IsZero() {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "record at index %d has no id", i)
		}
		if ids[id] {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "duplicate record id %s", id)
		}
		ids[id] = true
	}
	for _, ed := range e.records.Edges() {
		if !e.hasNode(ed.Source) || !e.hasNode(ed.Target) {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "edge %s references unknown node %s->%s", ed.ID, ed.Source, ed.Target)
		}
	}
	return nil
}

// Records returns a copy of the current record list.
func (e *Editor) Records() layout.Records { return slices.Clone(e.records) }

// Canvas returns the canvas the editor checks positions against.
func (e *Editor) Canvas() layout.Canvas { return e.canvas }

func (e *Editor) nextID() (bpmn.ID, error) {
	next, err := bpmn.NextIntIDs(e.records.MaxIntID(), 1)
	if err != nil {
		return bpmn.ID{}, err
	}
	return bpmn.IntID(next), nil
}

func (e *Editor) hasNode(id bpmn.ID) bool {
	_, ok := e.Node(id)
	return ok
}

// Node returns the node record with the given id.
func (e *Editor) Node(id bpmn.ID) (layout.NodeRecord, bool) {
	for _, n := range e.records.Nodes() {
		if n.ID == id {
			return n, true
		}
	}
	return layout.NodeRecord{}, false
}

// AddNode appends a node at pos and returns it. pos must lie on the canvas
// (bounds inclusive). A zero width or height is taken from the nominal
// size of the shape's category, or from [GenericSize] for an unrecognized
// shape. The new id is one above the largest integer id in the list.
func (e *Editor) AddNode(shape string, pos layout.Position, label string, size layout.Size) (layout.NodeRecord, error) {
	if pos.X < 0 || pos.X > e.canvas.Width || pos.Y < 0 || pos.Y > e.canvas.Height {
		return layout.NodeRecord{}, bperrors.New(bperrors.ErrCodeInvalidInput,
			"position (%g, %g) is outside the %gx%g canvas", pos.X, pos.Y, e.canvas.Width, e.canvas.Height)
	}

	def := GenericSize
	if bpmn.IsKnownShape(shape) {
		def = e.sizes.For(bpmn.CategoryOf(shape))
	}
	if size.Width == 0 {
		size.Width = def.Width
	}
	if size.Height == 0 {
		size.Height = def.Height
	}
	if shape == "" {
		shape = bpmn.DefaultShape
	}
	id, err := e.nextID()
	if err != nil {
		return layout.NodeRecord{}, err
	}

	n := layout.NodeRecord{
		ID:       id,
		Shape:    shape,
		Width:    size.Width,
		Height:   size.Height,
		Position: pos,
		Label:    label,
	}
	e.records = append(e.records, n)
	e.logger.Info("added node", "id", n.ID, "shape", n.Shape, "label", n.Label)
	return n, nil
}

// AddEdge appends an edge between two existing nodes and returns it.
func (e *Editor) AddEdge(source, target bpmn.ID) (layout.EdgeRecord, error) {
	if !e.hasNode(source) {
		return layout.EdgeRecord{}, bperrors.New(bperrors.ErrCodeInvalidGraph, "edge %s->%s references unknown source node %s", source, target, source)
	}
	if !e.hasNode(target) {
		return layout.EdgeRecord{}, bperrors.New(bperrors.ErrCodeInvalidGraph, "edge %s->%s references unknown target node %s", source, target, target)
	}
	id, err := e.nextID()
	if err != nil {
		return layout.EdgeRecord{}, err
	}
	ed := e.addEdge(id, source, target)
	e.logger.Info("added edge", "id", ed.ID, "source", source, "target", target)
	return ed, nil
}

func (e *Editor) addEdge(id, source, target bpmn.ID) layout.EdgeRecord {
	ed := layout.EdgeRecord{ID: id, Shape: layout.EdgeShape, Source: source, Target: target}
	e.records = append(e.records, ed)
	return ed
}

// RemoveNode removes the first node carrying label together with its
// edges, then connects every predecessor of the node to every successor.
// Reconnection skips self loops and edges that already exist. New edge
// ids continue above the largest id held before the removal.
//
// It returns a NOT_FOUND error when no node has the label.
func (e *Editor) RemoveNode(label string) error {
	var target layout.NodeRecord
	found := false
	for _, n := range e.records.Nodes() {
		if n.Label == label {
			target, found = n, true
			break
		}
	}
	if !found {
		return bperrors.New(bperrors.ErrCodeNotFound, "node with label %q not found", label)
	}

	id := target.ID
	var preds, succs []bpmn.ID
	for _, ed := range e.records.Edges() {
		if ed.Target == id && ed.Source != id && !slices.Contains(preds, ed.Source) {
			preds = append(preds, ed.Source)
		}
		if ed.Source == id && ed.Target != id && !slices.Contains(succs, ed.Target) {
			succs = append(succs, ed.Target)
		}
	}

	var rewire [][2]bpmn.ID
	for _, p := range preds {
		for _, s := range succs {
			if p != s && !e.hasEdge(p, s) {
				rewire = append(rewire, [2]bpmn.ID{p, s})
			}
		}
	}
	next, err := bpmn.NextIntIDs(e.records.MaxIntID(), len(rewire))
	if err != nil {
		return err
	}

	e.records = slices.DeleteFunc(e.records, func(r layout.Record) bool {
		if r.RecordID() == id {
			return true
		}
		ed, ok := r.(layout.EdgeRecord)
		return ok && (ed.Source == id || ed.Target == id)
	})
	for _, pair := range rewire {
		e.addEdge(bpmn.IntID(next), pair[0], pair[1])
		next++
	}

	e.logger.Info("removed node", "id", id, "label", label,
		"predecessors", len(preds), "successors", len(succs), "rewired", len(rewire))
	return nil
}

func (e *Editor) hasEdge(source, target bpmn.ID) bool {
	for _, ed := range e.records.Edges() {
		if ed.Source == source && ed.Target == target {
			return true
		}
	}
	return false
}

// Graph converts the records back to a logical graph, dropping geometry.
// A node is thick when its attrs carry a body stroke width.
func (e *Editor) Graph() *bpmn.Graph {
	return FromRecords(e.records)
}

// FromRecords converts a record list to a logical graph, dropping
// geometry and edge ids.
func FromRecords(records layout.Records) *bpmn.Graph {
	g := &bpmn.Graph{Nodes: []bpmn.Node{}, Edges: []bpmn.Edge{}}
	for _, r := range records {
		switch r := r.(type) {
		case layout.NodeRecord:
			_, thick := r.Attrs["body"]["strokeWidth"]
			g.Nodes = append(g.Nodes, bpmn.Node{ID: r.ID, Shape: r.Shape, Label: r.Label, Thick: thick})
		case layout.EdgeRecord:
			g.Edges = append(g.Edges, bpmn.Edge{Source: r.Source, Target: r.Target})
		}
	}
	return g
}
