package transform

import "github.com/matzehuels/bpmnlayout/pkg/dag"

// FindCycle returns the node IDs along one directed cycle of g, with the
// first node repeated at the end (a→b→a is reported as [a b a]). It
// returns nil when g is acyclic.
//
// The search is a depth-first traversal with white/gray/black coloring,
// started from source nodes first and then from every remaining node in
// insertion order, so the reported cycle is deterministic.
func FindCycle(g *dag.DAG) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var stack []string
	var cycle []string

	var dfs func(node string) bool
	dfs = func(node string) bool {
		color[node] = gray
		stack = append(stack, node)
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				for i, id := range stack {
					if id == child {
						cycle = append(append([]string{}, stack[i:]...), child)
						return true
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[node] = black
		return false
	}

	for _, n := range append(g.Sources(), g.Nodes()...) {
		if color[n.ID] == white && dfs(n.ID) {
			return cycle
		}
	}
	return nil
}
