package dag

import (
	"errors"
	"slices"
	"testing"
)

func buildChain(t *testing.T, ids ...string) *DAG {
	t.Helper()
	g := New()
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for i := 1; i < len(ids); i++ {
		if err := g.AddEdge(Edge{From: ids[i-1], To: ids[i]}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want ErrDuplicateNodeID", err)
	}
	if n, _ := g.Node("a"); n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(unknown from) = %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(unknown to) = %v", err)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	ids := []string{"z", "m", "a", "q", "b"}
	g := New()
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}
	for i := 0; i < 10; i++ {
		if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
			t.Fatalf("Nodes() = %v, want %v", got, ids)
		}
	}
}

func TestSetRanks(t *testing.T) {
	g := buildChain(t, "a", "b", "c")
	g.SetRanks(map[string]int{"b": 1, "c": 2})

	if g.RankCount() != 3 {
		t.Errorf("RankCount() = %d, want 3", g.RankCount())
	}
	if g.MaxRank() != 2 {
		t.Errorf("MaxRank() = %d, want 2", g.MaxRank())
	}
	if got := NodeIDs(g.NodesInRank(1)); !slices.Equal(got, []string{"b"}) {
		t.Errorf("NodesInRank(1) = %v", got)
	}
	if got := g.RankIDs(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("RankIDs() = %v", got)
	}
}

func TestValidate(t *testing.T) {
	g := buildChain(t, "a", "b", "c")
	if err := g.Validate(); !errors.Is(err, ErrRankOrder) {
		t.Errorf("Validate() on unranked chain = %v, want ErrRankOrder", err)
	}

	g.SetRanks(map[string]int{"a": 0, "b": 1, "c": 5})
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDetectCycles(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
		want  error
	}{
		{"chain", [][2]string{{"a", "b"}, {"b", "c"}}, nil},
		{"diamond", [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, nil},
		{"two cycle", [][2]string{{"a", "b"}, {"b", "a"}}, ErrGraphHasCycle},
		{"self loop", [][2]string{{"a", "a"}}, ErrGraphHasCycle},
		{"cycle off root", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}}, ErrGraphHasCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, id := range []string{"a", "b", "c", "d"} {
				_ = g.AddNode(Node{ID: id})
			}
			for _, e := range tt.edges {
				_ = g.AddEdge(Edge{From: e[0], To: e[1]})
			}
			if err := g.DetectCycles(); !errors.Is(err, tt.want) {
				t.Errorf("DetectCycles() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDegreesCountParallelEdges(t *testing.T) {
	g := buildChain(t, "a", "b")
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if g.OutDegree("a") != 2 || g.InDegree("b") != 2 {
		t.Errorf("degrees = %d/%d, want 2/2", g.OutDegree("a"), g.InDegree("b"))
	}
	if g.OutDegree("missing") != 0 {
		t.Errorf("OutDegree(missing) = %d, want 0", g.OutDegree("missing"))
	}
}
