// Package editor applies incremental edits to a laid-out BPMN diagram.
//
// An [Editor] wraps a [layout.Records] list as produced by the layout
// engine (or decoded from a client) and supports adding nodes and edges
// and removing a node by label. Removing a node reconnects every
// predecessor to every successor so the flow stays connected.
//
// Edits never move existing nodes. To recompute geometry after structural
// edits, convert back with [Editor.Graph] and lay the result out again:
//
//	ed, _ := editor.New(records, layout.DefaultCanvas())
//	_ = ed.RemoveNode("Manual review")
//	records, err = layout.Layout(ed.Graph(), cfg)
package editor
