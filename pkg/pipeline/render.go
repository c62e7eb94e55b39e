package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/cache"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
	"github.com/matzehuels/bpmnlayout/pkg/render"
	"github.com/matzehuels/bpmnlayout/pkg/render/nodelink"
)

// RenderWithCacheInfo draws a preview in opts.Format with caching and
// returns cache hit info.
//
// With opts.Pinned the preview shows records at their computed positions
// and g may be nil; otherwise Graphviz arranges g on its own and records
// may be nil.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *bpmn.Graph, records layout.Records, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	inputHash, err := previewInputHash(g, records, opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := renderPreview(ctx, g, records, opts)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	opts.Logger.Debug("rendered preview",
		"format", opts.Format,
		"pinned", opts.Pinned,
		"bytes", len(data),
		"duration", time.Since(start))

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *bpmn.Graph, records layout.Records, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, g, records, opts)
	return data, err
}

func previewInputHash(g *bpmn.Graph, records layout.Records, opts Options) (string, error) {
	if opts.Pinned {
		if records == nil {
			return "", bperrors.New(bperrors.ErrCodeInvalidInput, "pinned preview needs layout records")
		}
		return cache.HashJSON(struct {
			Records layout.Records
			Height  float64
		}{records, opts.Config.Canvas.Height})
	}
	if g == nil {
		return "", bperrors.New(bperrors.ErrCodeInvalidInput, "preview needs a graph")
	}
	if err := g.Validate(); err != nil {
		return "", err
	}
	return GraphHash(g)
}

// renderPreview draws SVG with Graphviz and converts it for PDF and PNG.
func renderPreview(ctx context.Context, g *bpmn.Graph, records layout.Records, opts Options) ([]byte, error) {
	nopts := nodelink.Options{Detailed: opts.Detailed}

	var (
		svg []byte
		err error
	)
	if opts.Pinned {
		svg, err = nodelink.RenderRecordsSVG(ctx, records, opts.Config.Canvas.Height, nopts)
	} else {
		svg, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nopts))
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}

	switch opts.Format {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	case FormatPNG:
		return render.ToPNG(ctx, svg, opts.Scale)
	default:
		return nil, ValidateFormat(opts.Format)
	}
}
