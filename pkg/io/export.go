package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// WriteRecords encodes records as an indented JSON array and writes it to
// w. A nil list is written as []. The output can be re-read with
// [ReadRecords].
func WriteRecords(records layout.Records, w io.Writer) error {
	if records == nil {
		records = layout.Records{}
	}
	return writeIndented(records, w)
}

// ExportRecords writes records to a JSON file at path.
// This is a convenience wrapper around [WriteRecords] for file-based output.
func ExportRecords(records layout.Records, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteRecords(records, f)
}

// WriteGraph encodes a logical graph as indented JSON in the input format
// accepted by [ImportGraph].
func WriteGraph(g *bpmn.Graph, w io.Writer) error {
	out := bpmn.Graph{Nodes: g.Nodes, Edges: g.Edges}
	if out.Nodes == nil {
		out.Nodes = []bpmn.Node{}
	}
	if out.Edges == nil {
		out.Edges = []bpmn.Edge{}
	}
	return writeIndented(out, w)
}

// ExportGraph writes a logical graph to a JSON file at path.
func ExportGraph(g *bpmn.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

func writeIndented(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
