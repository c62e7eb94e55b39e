// Package nodelink renders BPMN diagrams as Graphviz node-link previews.
//
// # Overview
//
// Two views are available. [ToDOT] hands a logical graph to the Graphviz
// dot engine, which computes its own left-to-right layout; it is useful to
// eyeball a graph before laying it out. [RecordsToDOT] pins every node of
// a laid-out record list to its computed position, so the preview shows
// exactly what a canvas client would draw.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
//	svg, err := nodelink.RenderRecordsSVG(ctx, records, cfg.Canvas.Height, nodelink.Options{})
//
// # Shapes
//
// Events become circles (end events double circles), gateways diamonds
// and tasks rounded boxes. Thick events get a heavier outline.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG are converted from that SVG by the parent render
// package.
package nodelink
