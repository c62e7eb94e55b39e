package layout

import (
	"math"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Default layout constants.
const (
	DefaultCanvasWidth       = 600.0
	DefaultCanvasHeight      = 600.0
	DefaultHorizontalSpacing = 150.0
	DefaultVerticalSpacing   = 100.0
	DefaultThickStrokeWidth  = 4.0
)

// Canvas is the fixed 2-D area a layout must fit into.
type Canvas struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// DefaultCanvas returns the 600x600 canvas.
func DefaultCanvas() Canvas {
	return Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
}

// Size is a nominal node size in layout units.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Sizes holds the nominal size per shape category.
type Sizes struct {
	Event   Size `json:"event" toml:"event" yaml:"event"`
	Gateway Size `json:"gateway" toml:"gateway" yaml:"gateway"`
	Task    Size `json:"task" toml:"task" yaml:"task"`
}

// DefaultSizes returns event 40x40, gateway 55x55 and task 100x60.
func DefaultSizes() Sizes {
	return Sizes{
		Event:   Size{Width: 40, Height: 40},
		Gateway: Size{Width: 55, Height: 55},
		Task:    Size{Width: 100, Height: 60},
	}
}

// For returns the nominal size of a category. Unknown categories use the
// task size.
func (s Sizes) For(c bpmn.Category) Size {
	switch c {
	case bpmn.CategoryEvent:
		return s.Event
	case bpmn.CategoryGateway:
		return s.Gateway
	default:
		return s.Task
	}
}

// Config controls the layout engine.
type Config struct {
	Canvas            Canvas
	HorizontalSpacing float64
	VerticalSpacing   float64
	Sizes             Sizes

	// Uniform scales both axes by the smaller of the two fit factors, so
	// node aspect ratios survive normalization.
	Uniform bool

	// ThickStrokeWidth is the stroke width attached to thick event nodes.
	ThickStrokeWidth float64
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Canvas:            DefaultCanvas(),
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
		Sizes:             DefaultSizes(),
		ThickStrokeWidth:  DefaultThickStrokeWidth,
	}
}

// WithDefaults returns a copy of c where zero-valued fields take their
// default.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Canvas.Width == 0 {
		c.Canvas.Width = d.Canvas.Width
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = d.Canvas.Height
	}
	if c.HorizontalSpacing == 0 {
		c.HorizontalSpacing = d.HorizontalSpacing
	}
	if c.VerticalSpacing == 0 {
		c.VerticalSpacing = d.VerticalSpacing
	}
	c.Sizes.Event = defaultSize(c.Sizes.Event, d.Sizes.Event)
	c.Sizes.Gateway = defaultSize(c.Sizes.Gateway, d.Sizes.Gateway)
	c.Sizes.Task = defaultSize(c.Sizes.Task, d.Sizes.Task)
	if c.ThickStrokeWidth == 0 {
		c.ThickStrokeWidth = d.ThickStrokeWidth
	}
	return c
}

func defaultSize(s, d Size) Size {
	if s.Width == 0 {
		s.Width = d.Width
	}
	if s.Height == 0 {
		s.Height = d.Height
	}
	return s
}

// Validate reports an INVALID_CONFIG error when the canvas, a spacing or
// a nominal size is not strictly positive.
func (c Config) Validate() error {
	if err := bperrors.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	if !positive(c.HorizontalSpacing) || !positive(c.VerticalSpacing) {
		return bperrors.New(bperrors.ErrCodeInvalidConfig,
			"spacing must be positive, got %gx%g", c.HorizontalSpacing, c.VerticalSpacing)
	}
	for _, cat := range bpmn.Categories() {
		s := c.Sizes.For(cat)
		if !positive(s.Width) || !positive(s.Height) {
			return bperrors.New(bperrors.ErrCodeInvalidConfig,
				"%s size must be positive, got %gx%g", cat, s.Width, s.Height)
		}
	}
	if !nonNegative(c.ThickStrokeWidth) {
		return bperrors.New(bperrors.ErrCodeInvalidConfig,
			"thick stroke width must be non-negative, got %g", c.ThickStrokeWidth)
	}
	return nil
}

func positive(v float64) bool    { return v > 0 && !math.IsInf(v, 0) }
func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }
