// Package layout assigns a deterministic left-to-right layout to a BPMN
// graph and emits it as a flat list of render records.
//
// # Algorithm
//
// [Engine.Layout] runs three phases:
//
//  1. Ranking: every node gets the length of the longest path reaching it
//     from a source node, so each edge points to a strictly higher rank.
//     A graph that cannot be topologically ordered is rejected with a
//     CyclicGraphError; no partial order is guessed.
//  2. Placement: nodes are grouped by rank and keep their input order
//     within a rank. Rank r sits at x = r*HorizontalSpacing, and the i-th
//     of n nodes in a rank sits at y = (i - n/2)*VerticalSpacing.
//  3. Sizing and normalization: each node gets the nominal size of its
//     shape category. Positions and sizes are scaled so the raw layout,
//     extended by the largest nominal size, fills the canvas, then
//     translated so the minimum coordinate on each axis is zero. An axis
//     without extent (a single node, a single chain) is centered instead.
//     Values are rounded to two decimals.
//
// Edge records follow the node records. Each carries a fresh integer id
// above every integer node id, the shape tag [EdgeShape] and the original
// endpoints.
//
// # Determinism
//
// The engine reads no global state and iterates nothing in map order, so
// the same graph and [Config] always produce byte-identical JSON. An
// [Engine] is safe for concurrent use.
//
// # Output
//
// Records marshal to the JSON consumed by X6-style canvas widgets:
//
//	{"id":1,"shape":"start","width":60,"height":393.44,"position":{"x":0,"y":103.28}}
//	{"id":4,"shape":"bpmn-edge","source":1,"target":2}
//
// [Records] decodes such a list back, telling nodes from edges by shape.
package layout
