package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/cache"
	pkgio "github.com/matzehuels/bpmnlayout/pkg/io"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
)

// Cache key types reported to [observability.CacheHooks].
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute imports the graph at opts.GraphPath and lays it out, using the
// cache when possible. Every log line of the run carries a "run" id.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	opts.Logger = opts.Logger.With("run", uuid.NewString())

	result := &Result{}

	// Stage 1: Import
	importStart := time.Now()
	g, err := pkgio.ImportGraph(opts.GraphPath)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)

	opts.Logger.Info("imported graph",
		"path", opts.GraphPath,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ImportTime)

	hash, err := GraphHash(g)
	if err != nil {
		return nil, err
	}
	result.GraphHash = hash

	// Stage 2: Layout
	layoutStart := time.Now()
	records, hit, err := r.layoutWithHash(ctx, g, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.CacheHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RankCount = rankCount(g)

	opts.Logger.Info("computed layout",
		"records", len(records),
		"ranks", result.Stats.RankCount,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// LayoutWithCacheInfo lays out g with caching and returns cache hit info.
// Invalid and cyclic graphs are never cached.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *bpmn.Graph, opts Options) (layout.Records, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	return r.layoutWithHash(ctx, g, hash, opts)
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *bpmn.Graph, opts Options) (layout.Records, error) {
	records, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return records, err
}

func (r *Runner) layoutWithHash(ctx context.Context, g *bpmn.Graph, graphHash string, opts Options) (layout.Records, bool, error) {
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		} else if hit {
			records, err := pkgio.ReadRecords(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				opts.Logger.Debug("layout cache hit", "key", cacheKey)
				return records, true, nil
			}
			// If deserialization fails, fall through to recompute
			opts.Logger.Debug("discarding unreadable cache entry", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	records, err := computeLayout(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := pkgio.WriteRecords(records, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, buf.Len())
		}
	}

	return records, false, nil
}

// computeLayout runs the engine and reports the run to the layout hooks.
func computeLayout(ctx context.Context, g *bpmn.Graph, opts Options) (layout.Records, error) {
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(g.Nodes), len(g.Edges))
	start := time.Now()

	engine := layout.NewEngine(opts.Config, layout.WithLogger(opts.Logger))
	records, err := engine.Layout(g)
	duration := time.Since(start)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, duration, err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, rankCount(g), duration, nil)
	return records, nil
}

// GraphHash returns the content hash of the canonical encoding of g.
// Graphs that differ only in JSON formatting share a hash.
func GraphHash(g *bpmn.Graph) (string, error) {
	data, err := bpmn.MarshalCanonical(g)
	if err != nil {
		return "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// rankCount returns the number of ranks of g, or 0 when g cannot be
// ranked.
func rankCount(g *bpmn.Graph) int {
	ranks, err := layout.Ranks(g)
	if err != nil {
		return 0
	}
	n := 0
	for _, r := range ranks {
		if r+1 > n {
			n = r + 1
		}
	}
	return n
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
