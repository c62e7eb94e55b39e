package bpmn

import (
	"encoding/json"
	"math"
	"testing"

	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
)

func TestIDUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{"integer", `7`, IntID(7), false},
		{"negative", `-3`, IntID(-3), false},
		{"string", `"start"`, StringID("start"), false},
		{"numeric string", `"7"`, StringID("7"), false},
		{"null", `null`, ID{}, false},

		{"float", `1.5`, ID{}, true},
		{"bool", `true`, ID{}, true},
		{"object", `{}`, ID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ID
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIDMarshalJSON(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{IntID(42), `42`},
		{StringID("task-1"), `"task-1"`},
		{StringID("42"), `"42"`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.id)
		if err != nil {
			t.Fatalf("Marshal(%v) error: %v", tt.id, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestIDForms(t *testing.T) {
	if IntID(1) == StringID("1") {
		t.Error("integer and string ids must be distinct")
	}
	if IntID(1).Key() == StringID("1").Key() {
		t.Error("integer and string keys must be distinct")
	}
	if !(ID{}).IsZero() || !StringID("").IsZero() {
		t.Error("zero id should report IsZero")
	}
	if IntID(0).IsZero() {
		t.Error("integer 0 is a valid id")
	}

	if v, ok := StringID("12").Int(); !ok || v != 12 {
		t.Errorf(`StringID("12").Int() = %d, %v`, v, ok)
	}
	if _, ok := StringID("gw").Int(); ok {
		t.Error(`StringID("gw").Int() should fail`)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"7", IntID(7)},
		{"-3", IntID(-3)},
		{"task_a", StringID("task_a")},
		{"7.5", StringID("7.5")},
		{"", StringID("")},
	}
	for _, tt := range tests {
		if got := ParseID(tt.in); got != tt.want {
			t.Errorf("ParseID(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestNextIntIDs(t *testing.T) {
	tests := []struct {
		max     int64
		n       int
		want    int64
		wantErr bool
	}{
		{0, 3, 1, false},
		{41, 1, 42, false},
		{math.MaxInt64 - 2, 2, math.MaxInt64 - 1, false},
		{math.MaxInt64 - 2, 3, 0, true},
		{math.MaxInt64, 1, 0, true},
		{math.MaxInt64, 0, 0, false},
	}
	for _, tt := range tests {
		got, err := NextIntIDs(tt.max, tt.n)
		if tt.wantErr {
			if !bperrors.Is(err, bperrors.ErrCodeInvalidGraph) {
				t.Errorf("NextIntIDs(%d, %d) error = %v, want INVALID_GRAPH", tt.max, tt.n, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NextIntIDs(%d, %d) = %d, %v, want %d", tt.max, tt.n, got, err, tt.want)
		}
	}
}
