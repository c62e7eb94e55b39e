package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
)

func TestSizesFor(t *testing.T) {
	s := DefaultSizes()
	tests := []struct {
		shape string
		want  Size
	}{
		{"start", Size{40, 40}},
		{"endEvent", Size{40, 40}},
		{"exclusive_gateway", Size{55, 55}},
		{"task", Size{100, 60}},
		{"userTask", Size{100, 60}},
		{"mystery", Size{100, 60}},
		{"", Size{100, 60}},
	}
	for _, tt := range tests {
		if got := s.For(bpmn.CategoryOf(tt.shape)); got != tt.want {
			t.Errorf("For(%q) = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero horizontal spacing", func(c *Config) { c.HorizontalSpacing = 0 }, false},
		{"zero vertical spacing", func(c *Config) { c.VerticalSpacing = 0 }, false},
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Canvas.Height = -10 }, false},
		{"infinite canvas", func(c *Config) { c.Canvas.Width = math.Inf(1) }, false},
		{"negative spacing", func(c *Config) { c.HorizontalSpacing = -1 }, false},
		{"zero gateway size", func(c *Config) { c.Sizes.Gateway.Width = 0 }, false},
		{"negative stroke", func(c *Config) { c.ThickStrokeWidth = -2 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !bperrors.Is(err, bperrors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	got := Config{Canvas: Canvas{Width: 800}, Uniform: true}.WithDefaults()
	want := DefaultConfig()
	want.Canvas.Width = 800
	want.Uniform = true
	if got != want {
		t.Errorf("WithDefaults() = %+v, want %+v", got, want)
	}

	h := Config{HorizontalSpacing: 200}.WithDefaults()
	if h.HorizontalSpacing != 200 || h.VerticalSpacing != DefaultVerticalSpacing {
		t.Errorf("spacing = %v/%v, want 200/%v", h.HorizontalSpacing, h.VerticalSpacing, DefaultVerticalSpacing)
	}
	v := Config{VerticalSpacing: 40}.WithDefaults()
	if v.HorizontalSpacing != DefaultHorizontalSpacing || v.VerticalSpacing != 40 {
		t.Errorf("spacing = %v/%v, want %v/40", v.HorizontalSpacing, v.VerticalSpacing, DefaultHorizontalSpacing)
	}
}
