// Package io provides JSON file import and export for BPMN graphs and
// laid-out record lists.
//
// # Graphs
//
// The input format is the logical graph accepted by the layout engine:
//
//	{
//	  "nodes": [
//	    {"id": 1, "shape": "start"},
//	    {"id": 2, "shape": "task", "label": "Check"},
//	    {"id": 3, "shape": "end", "thick": true}
//	  ],
//	  "edges": [
//	    {"source": 1, "target": 2},
//	    {"source": 2, "target": 3}
//	  ]
//	}
//
// Ids are integers or strings. Use [ImportGraph] to read and validate a
// graph file and [ExportGraph] or [WriteGraph] to write one.
//
// # Records
//
// The output format is a flat array of positioned nodes and styled edges:
//
//	[
//	  {"id": 1, "shape": "start", "width": 60, "height": 60, "position": {"x": 0, "y": 270}},
//	  {"id": 4, "shape": "bpmn-edge", "source": 1, "target": 2}
//	]
//
// [ExportRecords] and [WriteRecords] write indented JSON; [ImportRecords]
// and [ReadRecords] read it back, for example to edit a diagram.
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package io
