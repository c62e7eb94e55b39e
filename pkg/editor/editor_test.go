package editor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

func id(n int64) bpmn.ID { return bpmn.IntID(n) }

func nodeRec(n int64, shape, label string) layout.NodeRecord {
	return layout.NodeRecord{ID: id(n), Shape: shape, Width: 40, Height: 40, Label: label}
}

func edgeRec(n, src, dst int64) layout.EdgeRecord {
	return layout.EdgeRecord{ID: id(n), Shape: layout.EdgeShape, Source: id(src), Target: id(dst)}
}

type pair struct{ src, dst bpmn.ID }

func edgePairs(recs layout.Records) []pair {
	var out []pair
	for _, e := range recs.Edges() {
		out = append(out, pair{e.Source, e.Target})
	}
	return out
}

// start -> review -> end
func chain(t *testing.T) *Editor {
	t.Helper()
	ed, err := New(layout.Records{
		nodeRec(1, "start", ""),
		nodeRec(2, "task", "Review"),
		nodeRec(3, "end", ""),
		edgeRec(4, 1, 2),
		edgeRec(5, 2, 3),
	}, layout.DefaultCanvas())
	require.NoError(t, err)
	return ed
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(nil, layout.Canvas{Width: 0, Height: 10})
	assert.True(t, bperrors.Is(err, bperrors.ErrCodeInvalidConfig))

	_, err = New(layout.Records{nodeRec(1, "task", ""), nodeRec(1, "task", "")}, layout.DefaultCanvas())
	assert.True(t, bperrors.IsGraphValidation(err))

	_, err = New(layout.Records{nodeRec(1, "task", ""), edgeRec(2, 1, 9)}, layout.DefaultCanvas())
	assert.True(t, bperrors.IsGraphValidation(err))
}

func TestNewCopiesRecords(t *testing.T) {
	recs := layout.Records{nodeRec(1, "task", "")}
	ed, err := New(recs, layout.DefaultCanvas())
	require.NoError(t, err)

	_, err = ed.AddNode("task", layout.Position{X: 1, Y: 1}, "", layout.Size{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Len(t, ed.Records(), 2)
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name  string
		shape string
		size  layout.Size
		want  layout.Size
	}{
		{"event default", "start", layout.Size{}, layout.Size{Width: 40, Height: 40}},
		{"gateway default", "exclusiveGateway", layout.Size{}, layout.Size{Width: 55, Height: 55}},
		{"task default", "activity", layout.Size{}, layout.Size{Width: 100, Height: 60}},
		{"unknown shape", "annotation", layout.Size{}, GenericSize},
		{"explicit size", "task", layout.Size{Width: 10, Height: 20}, layout.Size{Width: 10, Height: 20}},
		{"partial size", "task", layout.Size{Width: 10}, layout.Size{Width: 10, Height: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := chain(t)
			n, err := ed.AddNode(tt.shape, layout.Position{X: 100, Y: 200}, "New", tt.size)
			require.NoError(t, err)

			assert.Equal(t, id(6), n.ID)
			assert.Equal(t, tt.want, layout.Size{Width: n.Width, Height: n.Height})
			assert.Equal(t, layout.Position{X: 100, Y: 200}, n.Position)
			assert.Equal(t, "New", n.Label)
			assert.Equal(t, n, ed.Records()[5])
		})
	}
}

func TestAddNodeOutOfBounds(t *testing.T) {
	ed := chain(t)
	for _, pos := range []layout.Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 601, Y: 0}, {X: 0, Y: 600.5}} {
		_, err := ed.AddNode("task", pos, "", layout.Size{})
		assert.True(t, bperrors.Is(err, bperrors.ErrCodeInvalidInput), "pos %+v: %v", pos, err)
	}

	_, err := ed.AddNode("task", layout.Position{X: 600, Y: 600}, "", layout.Size{})
	assert.NoError(t, err, "canvas bounds are inclusive")
	assert.Len(t, ed.Records(), 6)
}

func TestAddNodeEmptyShape(t *testing.T) {
	ed := chain(t)
	n, err := ed.AddNode("", layout.Position{}, "", layout.Size{})
	require.NoError(t, err)
	assert.Equal(t, bpmn.DefaultShape, n.Shape)
	assert.Equal(t, GenericSize, layout.Size{Width: n.Width, Height: n.Height})
}

func TestAddEdge(t *testing.T) {
	ed := chain(t)

	e, err := ed.AddEdge(id(1), id(3))
	require.NoError(t, err)
	assert.Equal(t, layout.EdgeRecord{ID: id(6), Shape: layout.EdgeShape, Source: id(1), Target: id(3)}, e)

	_, err = ed.AddEdge(id(1), id(42))
	assert.True(t, bperrors.IsGraphValidation(err))

	// edges are not valid endpoints
	_, err = ed.AddEdge(id(4), id(3))
	assert.True(t, bperrors.IsGraphValidation(err))
}

func TestIDOverflowIsRejected(t *testing.T) {
	ed, err := New(layout.Records{
		nodeRec(1, "start", ""),
		nodeRec(math.MaxInt64, "end", "Done"),
	}, layout.DefaultCanvas())
	require.NoError(t, err)

	_, err = ed.AddNode("task", layout.Position{X: 10, Y: 10}, "", layout.Size{})
	assert.True(t, bperrors.IsGraphValidation(err))
	_, err = ed.AddEdge(id(1), id(math.MaxInt64))
	assert.True(t, bperrors.IsGraphValidation(err))
	assert.Len(t, ed.Records(), 2, "failed edits leave the records untouched")
}

func TestRemoveNodeOverflowLeavesRecords(t *testing.T) {
	ed, err := New(layout.Records{
		nodeRec(1, "start", ""),
		nodeRec(2, "task", "Review"),
		nodeRec(3, "end", ""),
		edgeRec(math.MaxInt64-1, 1, 2),
		edgeRec(math.MaxInt64, 2, 3),
	}, layout.DefaultCanvas())
	require.NoError(t, err)

	before := ed.Records()
	err = ed.RemoveNode("Review")
	assert.True(t, bperrors.IsGraphValidation(err))
	assert.Equal(t, before, ed.Records())
}

func TestRemoveNodeChain(t *testing.T) {
	ed := chain(t)
	require.NoError(t, ed.RemoveNode("Review"))

	recs := ed.Records()
	assert.Len(t, recs.Nodes(), 2)
	assert.Equal(t, []pair{{id(1), id(3)}}, edgePairs(recs))
	assert.Equal(t, id(6), recs.Edges()[0].ID, "new ids continue above the old maximum")
}

func TestRemoveNodeFanInFanOut(t *testing.T) {
	// a, b -> x -> c, d
	ed, err := New(layout.Records{
		nodeRec(1, "start", "a"),
		nodeRec(2, "start", "b"),
		nodeRec(3, "task", "x"),
		nodeRec(4, "end", "c"),
		nodeRec(5, "end", "d"),
		edgeRec(6, 1, 3),
		edgeRec(7, 2, 3),
		edgeRec(8, 3, 4),
		edgeRec(9, 3, 5),
		edgeRec(10, 1, 4),
	}, layout.DefaultCanvas())
	require.NoError(t, err)

	require.NoError(t, ed.RemoveNode("x"))

	want := []pair{
		{id(1), id(4)},
		{id(1), id(5)},
		{id(2), id(4)},
		{id(2), id(5)},
	}
	assert.Equal(t, want, edgePairs(ed.Records()))
	for _, e := range ed.Records().Edges() {
		assert.NotEqual(t, id(6), e.ID)
	}
}

func TestRemoveNodeSkipsSelfLoops(t *testing.T) {
	// a -> x -> a would rewire into a self loop
	ed, err := New(layout.Records{
		nodeRec(1, "task", "a"),
		nodeRec(2, "task", "x"),
		edgeRec(3, 1, 2),
		edgeRec(4, 2, 1),
	}, layout.DefaultCanvas())
	require.NoError(t, err)

	require.NoError(t, ed.RemoveNode("x"))
	assert.Empty(t, ed.Records().Edges())
}

func TestRemoveNodeNotFound(t *testing.T) {
	ed := chain(t)
	err := ed.RemoveNode("Missing")
	assert.True(t, bperrors.Is(err, bperrors.ErrCodeNotFound))
	assert.Len(t, ed.Records(), 5)
}

func TestRemoveNodeRemovesFirstMatch(t *testing.T) {
	ed, err := New(layout.Records{
		nodeRec(1, "task", "dup"),
		nodeRec(2, "task", "dup"),
	}, layout.DefaultCanvas())
	require.NoError(t, err)

	require.NoError(t, ed.RemoveNode("dup"))
	nodes := ed.Records().Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, id(2), nodes[0].ID)
}

func TestGraphRoundTripsThroughLayout(t *testing.T) {
	g := &bpmn.Graph{
		Nodes: []bpmn.Node{
			{ID: id(1), Shape: "start", Thick: true},
			{ID: id(2), Shape: "task", Label: "Review"},
			{ID: id(3), Shape: "task", Label: "Approve"},
			{ID: id(4), Shape: "end"},
		},
		Edges: []bpmn.Edge{
			{Source: id(1), Target: id(2)},
			{Source: id(2), Target: id(3)},
			{Source: id(3), Target: id(4)},
		},
	}
	recs, err := layout.Layout(g, layout.DefaultConfig())
	require.NoError(t, err)

	ed, err := New(recs, layout.DefaultCanvas())
	require.NoError(t, err)
	require.NoError(t, ed.RemoveNode("Review"))

	out := ed.Graph()
	require.NoError(t, out.Validate())
	assert.Len(t, out.Nodes, 3)
	assert.True(t, out.Nodes[0].Thick)
	assert.Equal(t, []bpmn.Edge{{Source: id(3), Target: id(4)}, {Source: id(1), Target: id(3)}}, out.Edges)

	relaid, err := layout.Layout(out, layout.DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, relaid, 5)
}
