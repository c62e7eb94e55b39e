// Package render turns BPMN graphs and laid-out diagrams into images.
//
// The [nodelink] subpackage produces Graphviz DOT and SVG previews. This
// package holds the format conversion shared by every renderer: [ToPDF]
// and [ToPNG] convert SVG using the external rsvg-convert tool (librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/bpmnlayout/pkg/render/nodelink
package render
