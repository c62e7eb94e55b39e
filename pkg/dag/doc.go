// Package dag provides a directed graph whose nodes carry a rank, used as
// the working structure of the BPMN layout engine.
//
// # Overview
//
// The layout engine assigns every diagram element a rank (its topological
// depth) and then places elements rank by rank from left to right. This
// package provides the graph that holds the connectivity and the rank index
// while that happens.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique, non-empty IDs and edges can only
// connect existing nodes:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "start"})
//	g.AddNode(dag.Node{ID: "check"})
//	g.AddEdge(dag.Edge{From: "start", To: "check"})
//
// Query the graph structure with [DAG.Children], [DAG.InDegree],
// [DAG.NodesInRank], and related methods. Use [DAG.Validate] to verify that
// every edge points to a strictly higher rank and that no cycle exists.
//
// # Determinism
//
// Unlike a plain map-backed graph, every method that returns several nodes
// ([DAG.Nodes], [DAG.Sources], [DAG.Sinks], [DAG.NodesInRank]) returns them
// in insertion order. Layouts built on top of the DAG are therefore
// reproducible byte for byte.
//
// # Metadata
//
// Nodes and edges carry arbitrary metadata via [Metadata] maps. The layout engine uses node metadata to link DAG nodes back to the
// BPMN elements they stand for.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. The layout engine builds a
// fresh DAG per call, so independent layouts never share one.
//
// # Related Packages
//
// The [transform] subpackage computes topological orders, assigns ranks and
// extracts cycles for error reporting.
//
// [transform]: github.com/matzehuels/bpmnlayout/pkg/dag/transform
package dag
