package layout

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/dag"
	"github.com/matzehuels/bpmnlayout/pkg/dag/transform"
	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Engine lays out BPMN graphs with a fixed [Config].
//
// The zero value is not usable; call [NewEngine].
type Engine struct {
	cfg    Config
	logger *log.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine. The configuration is validated on every
// [Engine.Layout] call, not here.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Layout is the functional form of [Engine.Layout].
func Layout(g *bpmn.Graph, cfg Config) (Records, error) {
	return NewEngine(cfg).Layout(g)
}

// Layout computes the render records for g.
//
// It returns an INVALID_CONFIG error for a non-positive canvas, a
// GraphValidationError (INVALID_GRAPH) when g breaks the structural
// invariants of [bpmn.Graph.Validate], and a CyclicGraphError
// (CYCLIC_GRAPH, wrapping [dag.ErrGraphHasCycle]) when g cannot be ranked.
// A graph without nodes yields an empty, non-nil result.
func (e *Engine) Layout(g *bpmn.Graph) (Records, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if g.Empty() {
		e.logger.Debug("degenerate input: empty node list")
		return Records{}, nil
	}

	ranked, err := rank(g)
	if err != nil {
		return nil, err
	}

	placed := e.place(ranked)
	nodes := e.normalize(placed)

	out := make(Records, 0, len(g.Nodes)+len(g.Edges))
	for _, n := range nodes {
		out = append(out, n)
	}
	edges, err := mintEdges(g)
	if err != nil {
		return nil, err
	}
	out = append(out, edges...)

	e.logger.Debug("layout complete",
		"nodes", len(g.Nodes), "edges", len(g.Edges), "ranks", ranked.RankCount())
	return out, nil
}

// Ranks validates g and returns the rank of every node, keyed by
// [bpmn.ID.Key].
func Ranks(g *bpmn.Graph) (map[string]int, error) {
	d, err := RankGraph(g)
	if err != nil {
		return nil, err
	}
	ranks := make(map[string]int, d.NodeCount())
	for _, n := range d.Nodes() {
		ranks[n.ID] = n.Rank
	}
	return ranks, nil
}

// RankGraph validates g and returns it as a ranked [dag.DAG] whose node
// ids are [bpmn.ID.Key] values, in input order. It fails like
// [Engine.Layout] on invalid or cyclic input.
func RankGraph(g *bpmn.Graph) (*dag.DAG, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if g.Empty() {
		return dag.New(), nil
	}
	return rank(g)
}

const metaNode = "bpmn.node"

// rank builds the DAG for g in input order and assigns longest-path ranks.
func rank(g *bpmn.Graph) (*dag.DAG, error) {
	d := dag.New()
	for _, n := range g.Nodes {
		if err := d.AddNode(dag.Node{ID: n.ID.Key(), Meta: dag.Metadata{metaNode: n}}); err != nil {
			return nil, bperrors.Wrap(bperrors.ErrCodeInvalidGraph, err, "node %s", n.ID)
		}
	}
	for _, e := range g.Edges {
		if err := d.AddEdge(dag.Edge{From: e.Source.Key(), To: e.Target.Key()}); err != nil {
			return nil, bperrors.Wrap(bperrors.ErrCodeInvalidGraph, err, "edge %s->%s", e.Source, e.Target)
		}
	}

	if err := transform.AssignRanks(d); err != nil {
		return nil, cycleError(d, err)
	}
	// every edge must now point to a higher rank
	if err := d.Validate(); err != nil {
		return nil, bperrors.Wrap(bperrors.ErrCodeInternal, err, "ranked graph")
	}
	return d, nil
}

func cycleError(d *dag.DAG, cause error) error {
	keys := transform.FindCycle(d)
	if len(keys) == 0 {
		return bperrors.Wrap(bperrors.ErrCodeCyclicGraph, cause, "graph cannot be ranked")
	}
	path := make([]string, len(keys))
	for i, k := range keys {
		path[i] = k
		if n, ok := d.Node(k); ok {
			path[i] = nodeOf(n).ID.String()
		}
	}
	return bperrors.Wrap(bperrors.ErrCodeCyclicGraph, cause, "cycle %s", strings.Join(path, " -> "))
}

func nodeOf(n *dag.Node) bpmn.Node {
	bn, _ := n.Meta[metaNode].(bpmn.Node)
	return bn
}

// placed is a node at its raw, unscaled position.
type placed struct {
	node    bpmn.Node
	x, y    float64
	nominal Size
}

// place walks ranks in order and nodes within a rank in input order.
func (e *Engine) place(d *dag.DAG) []placed {
	out := make([]placed, 0, d.NodeCount())
	for _, r := range d.RankIDs() {
		group := d.NodesInRank(r)
		size := float64(len(group))
		for i, n := range group {
			bn := nodeOf(n)
			out = append(out, placed{
				node:    bn,
				x:       float64(r) * e.cfg.HorizontalSpacing,
				y:       (float64(i) - size/2) * e.cfg.VerticalSpacing,
				nominal: e.cfg.Sizes.For(bn.Category()),
			})
		}
	}
	return out
}

// axis describes how one coordinate axis maps onto the canvas.
type axis struct {
	min, scale, extent float64
	flat               bool
}

// position maps a raw coordinate and a scaled size onto the canvas.
func (a axis) position(v, size float64) float64 {
	if a.flat {
		return (a.extent - size) / 2
	}
	return (v - a.min) * a.scale
}

func (e *Engine) normalize(ps []placed) []NodeRecord {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	var maxW, maxH float64
	for _, p := range ps {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
		maxW, maxH = math.Max(maxW, p.nominal.Width), math.Max(maxH, p.nominal.Height)
	}

	xs := fitAxis(minX, maxX, maxW, e.cfg.Canvas.Width)
	ys := fitAxis(minY, maxY, maxH, e.cfg.Canvas.Height)
	if e.cfg.Uniform {
		s := math.Min(xs.scale, ys.scale)
		xs.scale, ys.scale = s, s
	}

	out := make([]NodeRecord, len(ps))
	for i, p := range ps {
		w := p.nominal.Width * xs.scale
		h := p.nominal.Height * ys.scale
		out[i] = NodeRecord{
			ID:     p.node.ID,
			Shape:  p.node.DisplayShape(),
			Width:  round2(w),
			Height: round2(h),
			Position: Position{
				X: round2(xs.position(p.x, w)),
				Y: round2(ys.position(p.y, h)),
			},
			Label: p.node.DisplayLabel(),
			Attrs: e.attrs(p.node),
		}
	}
	return out
}

// fitAxis computes the scale that maps the raw span, extended by the
// largest nominal size, onto extent. A zero span counts as one unit.
func fitAxis(lo, hi, maxSize, extent float64) axis {
	span := hi - lo
	flat := span == 0
	if flat {
		span = 1
	}
	return axis{min: lo, scale: extent / (span + maxSize), extent: extent, flat: flat}
}

func (e *Engine) attrs(n bpmn.Node) Attrs {
	if !n.Thick || n.Category() != bpmn.CategoryEvent {
		return nil
	}
	return Attrs{"body": {"strokeWidth": e.cfg.ThickStrokeWidth}}
}

// mintEdges emits one record per input edge, numbering them above the
// largest integer node id.
func mintEdges(g *bpmn.Graph) (Records, error) {
	next, err := bpmn.NextIntIDs(g.MaxIntID(), len(g.Edges))
	if err != nil {
		return nil, err
	}
	out := make(Records, 0, len(g.Edges))
	for _, e := range g.Edges {
		out = append(out, EdgeRecord{
			ID:     bpmn.IntID(next),
			Shape:  EdgeShape,
			Source: e.Source,
			Target: e.Target,
		})
		next++
	}
	return out, nil
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
