package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/dag"
)

func newGraph(ids []string, edges [][2]string) *dag.DAG {
	g := dag.New()
	for _, id := range ids {
		g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestFindCycle_NoCycles(t *testing.T) {
	g := newGraph([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})

	if cycle := FindCycle(g); cycle != nil {
		t.Errorf("FindCycle() = %v, want nil", cycle)
	}
}

func TestFindCycle_SimpleCycle(t *testing.T) {
	g := newGraph([]string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	want := []string{"a", "b", "a"}
	if cycle := FindCycle(g); !slices.Equal(cycle, want) {
		t.Errorf("FindCycle() = %v, want %v", cycle, want)
	}
}

func TestFindCycle_SelfLoop(t *testing.T) {
	g := newGraph([]string{"a"}, [][2]string{{"a", "a"}})

	want := []string{"a", "a"}
	if cycle := FindCycle(g); !slices.Equal(cycle, want) {
		t.Errorf("FindCycle() = %v, want %v", cycle, want)
	}
}

func TestFindCycle_CycleBelowSource(t *testing.T) {
	// start → a → b → c → a
	g := newGraph([]string{"c", "b", "a", "start"},
		[][2]string{{"start", "a"}, {"a", "b"}, {"b", "c"}, {"c", "a"}})

	want := []string{"a", "b", "c", "a"}
	if cycle := FindCycle(g); !slices.Equal(cycle, want) {
		t.Errorf("FindCycle() = %v, want %v", cycle, want)
	}
}

func TestFindCycle_Deterministic(t *testing.T) {
	g := newGraph([]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}})

	first := FindCycle(g)
	for i := 0; i < 20; i++ {
		if got := FindCycle(g); !slices.Equal(got, first) {
			t.Fatalf("FindCycle() = %v, previously %v", got, first)
		}
	}
}
