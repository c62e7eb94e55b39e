package bpmn

import (
	"bytes"
	"encoding/json"
	"io"

	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// ReadJSON decodes a graph from r and validates it.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": 1, "shape": "start"}, {"id": 2, "shape": "task", "label": "Check"}],
//	  "edges": [{"source": 1, "target": 2}]
//	}
//
// A missing "edges" array is treated as empty. ReadJSON returns a
// GraphValidationError when the JSON is malformed or when [Graph.Validate]
// fails. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, bperrors.Wrap(bperrors.ErrCodeInvalidGraph, err, "decode graph")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ParseJSON is [ReadJSON] over a byte slice.
func ParseJSON(data []byte) (*Graph, error) {
	return ReadJSON(bytes.NewReader(data))
}

// MarshalCanonical encodes the graph as compact JSON. Field order is fixed
// by the struct definitions, so equal graphs produce equal bytes; the
// result is suitable for content hashing.
func MarshalCanonical(g *Graph) ([]byte, error) {
	out := Graph{Nodes: g.Nodes, Edges: g.Edges}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return json.Marshal(out)
}
