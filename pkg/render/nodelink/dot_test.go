package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

func sampleGraph() *bpmn.Graph {
	return &bpmn.Graph{
		Nodes: []bpmn.Node{
			{ID: bpmn.IntID(1), Shape: "start", Thick: true},
			{ID: bpmn.IntID(2), Shape: "exclusiveGateway"},
			{ID: bpmn.StringID("review"), Shape: "task", Label: "Review"},
			{ID: bpmn.IntID(3), Shape: "end"},
		},
		Edges: []bpmn.Edge{
			{Source: bpmn.IntID(1), Target: bpmn.IntID(2)},
			{Source: bpmn.IntID(2), Target: bpmn.StringID("review")},
			{Source: bpmn.StringID("review"), Target: bpmn.IntID(3)},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		"layout=dot;",
		"rankdir=LR;",
		`"1" [label="", shape=circle, penwidth=3];`,
		`"2" [label="", shape=diamond];`,
		`"\"review\"" [label="Review", shape=box, style="rounded,filled"];`,
		`"3" [label="", shape=doublecircle];`,
		`"1" -> "2";`,
		`"\"review\"" -> "3";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Review\nid: review\nshape: task"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="id: 2\nshape: exclusiveGateway"`) {
		t.Errorf("detailed unlabeled node missing:\n%s", dot)
	}
}

func TestRecordsToDOT(t *testing.T) {
	recs := layout.Records{
		layout.NodeRecord{ID: bpmn.IntID(1), Shape: "start", Width: 72, Height: 36, Position: layout.Position{X: 0, Y: 100}},
		layout.EdgeRecord{ID: bpmn.IntID(2), Shape: layout.EdgeShape, Source: bpmn.IntID(1), Target: bpmn.IntID(1)},
	}
	dot := RecordsToDOT(recs, 600, Options{})

	for _, want := range []string{
		"layout=neato;",
		"inputscale=72;",
		`pos="36,482!"`,
		"width=1",
		"height=0.5",
		"fixedsize=true",
		`"1" -> "1" [id="2"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(sampleGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Review") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}
