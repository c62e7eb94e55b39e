package bpmn

import "testing"

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		shape string
		want  Category
	}{
		{"event", CategoryEvent},
		{"start", CategoryEvent},
		{"end", CategoryEvent},
		{"startEvent", CategoryEvent},
		{"end-event", CategoryEvent},
		{"intermediate_event", CategoryEvent},
		{"timerEvent", CategoryEvent},

		{"gateway", CategoryGateway},
		{"exclusiveGateway", CategoryGateway},
		{"PARALLEL_GATEWAY", CategoryGateway},

		{"task", CategoryTask},
		{"activity", CategoryTask},
		{"userTask", CategoryTask},
		{"", CategoryTask},
		{"swimlane", CategoryTask},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			if got := CategoryOf(tt.shape); got != tt.want {
				t.Errorf("CategoryOf(%q) = %v, want %v", tt.shape, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCategory("lane"); ok {
		t.Error(`ParseCategory("lane") should fail`)
	}
}

func TestIsEndShape(t *testing.T) {
	if !IsEndShape("end") || !IsEndShape("EndEvent") {
		t.Error("end shapes not recognized")
	}
	if IsEndShape("start") || IsEndShape("event") {
		t.Error("non-end shapes reported as end")
	}
}

func TestIsKnownShape(t *testing.T) {
	for _, shape := range []string{"task", "Activity", "sub-process", "userTask", "start", "parallelGateway", "timerEvent"} {
		if !IsKnownShape(shape) {
			t.Errorf("IsKnownShape(%q) = false, want true", shape)
		}
	}
	for _, shape := range []string{"", "note", "annotation"} {
		if IsKnownShape(shape) {
			t.Errorf("IsKnownShape(%q) = true, want false", shape)
		}
	}
}

func TestNodeDisplayShape(t *testing.T) {
	if got := (Node{}).DisplayShape(); got != DefaultShape {
		t.Errorf("DisplayShape() = %q, want %q", got, DefaultShape)
	}
	if got := (Node{Shape: "gateway"}).DisplayShape(); got != "gateway" {
		t.Errorf("DisplayShape() = %q, want gateway", got)
	}
}

func TestNodeDisplayLabel(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Node{ID: IntID(7), Label: "Review"}, "Review"},
		{Node{ID: IntID(7)}, "7"},
		{Node{ID: StringID("gw")}, "gw"},
	}
	for _, tt := range tests {
		if got := tt.node.DisplayLabel(); got != tt.want {
			t.Errorf("DisplayLabel(%+v) = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestGraphMaxIntID(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{ID: IntID(3)},
		{ID: StringID("10")},
		{ID: StringID("gw")},
		{ID: IntID(7)},
	}}
	if got := g.MaxIntID(); got != 10 {
		t.Errorf("MaxIntID() = %d, want 10", got)
	}

	strOnly := &Graph{Nodes: []Node{{ID: StringID("a")}}}
	if got := strOnly.MaxIntID(); got != 0 {
		t.Errorf("MaxIntID() = %d, want 0", got)
	}
}
