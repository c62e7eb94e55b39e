// Package pkg provides the libraries behind bpmnlayout.
//
// # Overview
//
// bpmnlayout computes a fixed-canvas layout for BPMN process graphs. The
// pkg directory is organized into four areas:
//
//  1. Domain: [bpmn] (graph model and parsing), [dag] and [dag/transform]
//     (ranking), [layout] (the engine) and [editor] (incremental edits)
//  2. Infrastructure: [cache], [config], [io], [errors]
//  3. Observability: [observability] hooks and their [metrics] backend
//  4. Orchestration: [pipeline] and the [render/nodelink] previews
//
// # Architecture
//
// The data flow through bpmnlayout:
//
//	graph JSON
//	     ↓
//	[bpmn] package (decode + validate)
//	     ↓
//	[dag/transform] package (longest-path ranks)
//	     ↓
//	[layout] package (place + scale onto the canvas)
//	     ↓
//	record JSON, optionally edited with [editor] or previewed with [render/nodelink]
//
// # Quick Start
//
//	g, err := bpmn.ParseJSON(data)
//	if err != nil {
//	    return err
//	}
//	records, err := layout.Layout(g, layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	return io.WriteRecords(records, os.Stdout)
package pkg
