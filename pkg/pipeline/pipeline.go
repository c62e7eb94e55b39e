// Package pipeline runs the import → layout → preview pipeline for bpmnlayout.
//
// The CLI and library callers share this package so that option defaults,
// cache keys and logging are identical no matter who drives the engine.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: read a graph file, validate it and compute render records
//  2. Render: draw a Graphviz preview of the graph or of its records
//
// Both stages consult a [cache.Cache] keyed by content hash, so re-running
// on an unchanged graph with unchanged settings costs one cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{GraphPath: "order.json"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(result.Records), result.CacheHit)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/cache"
	"github.com/matzehuels/bpmnlayout/pkg/config"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// Format constants for preview outputs.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// ValidFormats is the set of supported preview formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Input options
	GraphPath string `json:"graph_path,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"` // Skip cache reads; results are still written

	// Layout options. ConfigPath is loaded first; non-zero fields of
	// Config override the file.
	ConfigPath string        `json:"config_path,omitempty"`
	Config     layout.Config `json:"config"`

	// Render options
	Format   string  `json:"format,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Pinned   bool    `json:"pinned,omitempty"` // Draw records at their computed positions
	Scale    float64 `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the validated input graph.
	Graph *bpmn.Graph

	// GraphHash is the content hash of the canonical graph encoding.
	GraphHash string

	// Records is the layout output.
	Records layout.Records

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Records came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	RankCount  int
	ImportTime time.Duration
	LayoutTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a preview format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return bperrors.New(bperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for a
// full [Runner.Execute]. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.GraphPath == "" {
		return bperrors.New(bperrors.ErrCodeInvalidInput, "graph path is required")
	}
	if err := bperrors.ValidateFilePath(o.GraphPath); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForLayout resolves the layout configuration and validates it.
func (o *Options) ValidateForLayout() error {
	if o.ConfigPath != "" {
		base, err := config.Load(o.ConfigPath)
		if err != nil {
			return err
		}
		o.Config = merge(base, o.Config)
		o.ConfigPath = ""
	}
	o.Config = o.Config.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Scale < 0 {
		return bperrors.New(bperrors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.Config
	return cache.LayoutKeyOpts{
		Width:            c.Canvas.Width,
		Height:           c.Canvas.Height,
		HSpacing:         c.HorizontalSpacing,
		VSpacing:         c.VerticalSpacing,
		EventW:           c.Sizes.Event.Width,
		EventH:           c.Sizes.Event.Height,
		GatewayW:         c.Sizes.Gateway.Width,
		GatewayH:         c.Sizes.Gateway.Height,
		TaskW:            c.Sizes.Task.Width,
		TaskH:            c.Sizes.Task.Height,
		Uniform:          c.Uniform,
		ThickStrokeWidth: c.ThickStrokeWidth,
	}
}

// ArtifactKeyOpts returns cache key options for a preview render.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	format := o.Format
	if format == FormatPNG {
		format = fmt.Sprintf("%s@%g", format, o.Scale)
	}
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
		Pinned:   o.Pinned,
	}
}

// merge overlays the non-zero fields of override on base.
func merge(base, override layout.Config) layout.Config {
	if override.Canvas.Width != 0 {
		base.Canvas.Width = override.Canvas.Width
	}
	if override.Canvas.Height != 0 {
		base.Canvas.Height = override.Canvas.Height
	}
	if override.HorizontalSpacing != 0 {
		base.HorizontalSpacing = override.HorizontalSpacing
	}
	if override.VerticalSpacing != 0 {
		base.VerticalSpacing = override.VerticalSpacing
	}
	for _, s := range []struct{ dst, src *layout.Size }{
		{&base.Sizes.Event, &override.Sizes.Event},
		{&base.Sizes.Gateway, &override.Sizes.Gateway},
		{&base.Sizes.Task, &override.Sizes.Task},
	} {
		if s.src.Width != 0 && s.src.Height != 0 {
			*s.dst = *s.src
		}
	}
	if override.Uniform {
		base.Uniform = true
	}
	if override.ThickStrokeWidth != 0 {
		base.ThickStrokeWidth = override.ThickStrokeWidth
	}
	return base
}
