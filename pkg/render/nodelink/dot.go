package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node id and shape tag under each label.
	Detailed bool
}

// pointsPerInch converts layout units to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a logical graph to Graphviz DOT with a left-to-right
// flow. Events are circles (end events double circles), gateways diamonds
// and tasks rounded boxes. Thick events get a heavier outline.
//
// The result is meant for the dot engine; render it with [RenderSVG].
func ToDOT(g *bpmn.Graph, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, "dot")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := shapeAttrs(n.Shape, n.Thick)
		attrs = append([]string{fmt.Sprintf("label=%q", fmtLabel(n.ID, n.Shape, n.Label, opts.Detailed))}, attrs...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID.Key(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source.Key(), e.Target.Key())
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RecordsToDOT converts laid-out records to DOT where every node is pinned
// to its computed position and size. Canvas y grows downwards, so the y
// axis is flipped against canvasHeight. The result is meant for the
// neato engine; render it with [RenderRecordsSVG].
func RecordsToDOT(records layout.Records, canvasHeight float64, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf, "neato")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("\n")

	for _, n := range records.Nodes() {
		cx := n.Position.X + n.Width/2
		cy := canvasHeight - (n.Position.Y + n.Height/2)
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n.ID, n.Shape, n.Label, opts.Detailed)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(cx), fmtFloat(cy)),
			fmt.Sprintf("width=%s", fmtFloat(n.Width/pointsPerInch)),
			fmt.Sprintf("height=%s", fmtFloat(n.Height/pointsPerInch)),
			"fixedsize=true",
		}
		_, thick := n.Attrs["body"]["strokeWidth"]
		attrs = append(attrs, shapeAttrs(n.Shape, thick)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID.Key(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range records.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [id=%q];\n", e.Source.Key(), e.Target.Key(), e.ID.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeHeader(buf *bytes.Buffer, engine string) {
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  layout=%s;\n", engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=12, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
}

func fmtLabel(id bpmn.ID, shape, label string, detailed bool) string {
	if !detailed {
		return label
	}
	parts := []string{fmt.Sprintf("id: %s", id), fmt.Sprintf("shape: %s", shape)}
	if label == "" {
		return strings.Join(parts, "\n")
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func shapeAttrs(shape string, thick bool) []string {
	switch bpmn.CategoryOf(shape) {
	case bpmn.CategoryEvent:
		attrs := []string{"shape=circle"}
		if bpmn.IsEndShape(shape) {
			attrs[0] = "shape=doublecircle"
		}
		if thick {
			attrs = append(attrs, "penwidth=3")
		}
		return attrs
	case bpmn.CategoryGateway:
		return []string{"shape=diamond"}
	default:
		return []string{"shape=box", "style=\"rounded,filled\""}
	}
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders DOT produced by [ToDOT] to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderSVG(ctx, dot, graphviz.DOT)
}

// RenderRecordsSVG renders laid-out records to SVG, keeping every node at
// its computed position.
func RenderRecordsSVG(ctx context.Context, records layout.Records, canvasHeight float64, opts Options) ([]byte, error) {
	return renderSVG(ctx, RecordsToDOT(records, canvasHeight, opts), graphviz.NEATO)
}

func renderSVG(ctx context.Context, dot string, engine graphviz.Layout) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
