package transform

import "github.com/matzehuels/bpmnlayout/pkg/dag"

// TopologicalOrder returns the node IDs of g in a topological order
// computed with Kahn's algorithm.
//
// Ties are broken by insertion order: the initial queue holds the source
// nodes in the order they were added, and children are enqueued in edge
// order as their in-degree drops to zero. The result is therefore fully
// determined by the order in which nodes and edges were added.
//
// If the order cannot cover every node, at least one directed cycle
// exists and TopologicalOrder returns [dag.ErrGraphHasCycle] together with
// the partial order it managed to build. Callers must not treat the
// partial order as a layout input.
//
// Time complexity is O(V + E).
func TopologicalOrder(g *dag.DAG) ([]string, error) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, child := range g.Children(curr) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(nodes) {
		return order, dag.ErrGraphHasCycle
	}
	return order, nil
}

// AssignRanks assigns every node a rank equal to the length of the longest
// path reaching it from any source node.
//
// It walks a [TopologicalOrder] and places each child at one plus the
// maximum rank of its parents, ensuring that:
//   - Source nodes (no incoming edges) are at rank 0
//   - Every edge points from a strictly lower to a strictly higher rank
//   - Each node is pushed as far right as necessary to satisfy all parents
//
// Existing rank assignments in the DAG are overwritten. On a cyclic graph
// AssignRanks returns [dag.ErrGraphHasCycle] and leaves the ranks untouched;
// no partial order is guessed.
//
// # Performance
//
// Time complexity is O(V + E), where V is nodes and E is edges. Space
// complexity is O(V) for the order and rank maps.
func AssignRanks(g *dag.DAG) error {
	order, err := TopologicalOrder(g)
	if err != nil {
		return err
	}

	ranks := make(map[string]int, len(order))
	for _, id := range order {
		if _, ok := ranks[id]; !ok {
			ranks[id] = 0
		}
		for _, child := range g.Children(id) {
			if rank := ranks[id] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
		}
	}

	g.SetRanks(ranks)
	return nil
}
