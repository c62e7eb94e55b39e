// Package transform provides the ordering and ranking steps that turn a
// connectivity-only [dag.DAG] into a ranked one.
//
// # Topological Order
//
// [TopologicalOrder] runs Kahn's algorithm with insertion-order tie breaks.
// It is the single place where cycles are detected during layout: if the
// order does not cover every node, it fails with [dag.ErrGraphHasCycle].
//
// # Rank Assignment
//
// [AssignRanks] computes longest-path ranks over the topological order:
// sources sit at rank 0 and every other node sits one rank after its
// deepest parent. Every edge therefore points to a strictly higher rank,
// which is what gives a left-to-right flow without backward edges.
//
// # Cycle Reporting
//
// The layout engine never breaks cycles. [FindCycle] extracts one cycle so
// that the error returned to the caller names the offending nodes.
//
// # Usage
//
//	if err := transform.AssignRanks(g); err != nil {
//	    cycle := transform.FindCycle(g)
//	    return fmt.Errorf("cycle through %v: %w", cycle, err)
//	}
//
// [dag.DAG]: github.com/matzehuels/bpmnlayout/pkg/dag.DAG
// [dag.ErrGraphHasCycle]: github.com/matzehuels/bpmnlayout/pkg/dag.ErrGraphHasCycle
package transform
