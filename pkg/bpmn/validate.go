package bpmn

import (
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Validate checks the structural invariants of the graph:
//
//  1. Every node has an id
//  2. Node ids are unique
//  3. Every edge has a source and a target
//  4. Every edge endpoint references an existing node
//
// The first violation is returned as a GraphValidationError naming the
// offending id. Validate does not look for cycles; ranking does that.
func (g *Graph) Validate() error {
	if g == nil {
		return nil
	}

	seen := make(map[ID]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID.IsZero() {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "node at index %d has no id", i)
		}
		if seen[n.ID] {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "duplicate node id %s", n.ID)
		}
		seen[n.ID] = true
	}

	for i, e := range g.Edges {
		if e.Source.IsZero() {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "edge at index %d has no source", i)
		}
		if e.Target.IsZero() {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "edge at index %d has no target", i)
		}
		if !seen[e.Source] {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "edge %s->%s references unknown source node %s", e.Source, e.Target, e.Source)
		}
		if !seen[e.Target] {
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "edge %s->%s references unknown target node %s", e.Source, e.Target, e.Target)
		}
	}

	return nil
}
