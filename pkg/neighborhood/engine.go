// Package neighborhood implements the dynamic HyperANF-style
// neighbourhood engine: it orchestrates a packed HyperLogLog counter
// array per hop, a dynamic vertex cover, and multi-source BFS to answer
// approximate |B(v,h)| queries and keep them current as edges stream in.
package neighborhood

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/hll"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/msbfs"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/vertexcover"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/watcher"
)

// Engine answers and maintains approximate neighbourhood-function
// queries over a mutable graph. Concurrent AddEdges calls are serialised
// through an internal mutex; Count does not take that mutex, so it must
// not run concurrently with AddEdges.
type Engine struct {
	mu sync.Mutex

	g        *graph.MutableGraph
	vc       *vertexcover.DynamicVertexCover
	bfs      *msbfs.Engine
	h        int
	log2m    int
	seed     uint64
	capacity uint64

	counters []*hll.CounterArray // counters[hop], hop in [0, h]

	watcher  *watcher.TopNodeWatcher
	watchHop int
	metrics  *Metrics
	logger   *zap.Logger

	watcherCfg *watcherConfig
}

type watcherConfig struct {
	capacity         int
	percentageChange float64
	minNodeCount     int
	updateInterval   time.Duration
	hop              int
	callback         watcher.Callback
}

// Option configures optional collaborators on New.
type Option func(*Engine)

// WithLogger attaches structured logging to the engine; AddEdges logs
// one line per call at debug level. A nil logger (the default) disables
// logging entirely.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches Prometheus instrumentation built from reg (see
// NewMetrics). Passing a nil registry is equivalent to omitting this
// option.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(e *Engine) { e.metrics = NewMetrics(reg) }
}

// WithWatcher attaches a Top-Node Watcher observing |B(v,hop)| for every
// vertex touched by an AddEdges call, firing callback when its gating
// conditions are met. The watcher's own fire count is folded into the
// engine's metrics, if any are attached.
func WithWatcher(capacity int, percentageChange float64, minNodeCount int, updateInterval time.Duration, hop int, callback watcher.Callback) Option {
	return func(e *Engine) {
		e.watcherCfg = &watcherConfig{
			capacity:         capacity,
			percentageChange: percentageChange,
			minNodeCount:     minNodeCount,
			updateInterval:   updateInterval,
			hop:              hop,
			callback:         callback,
		}
	}
}

// New builds an engine over g (which may already contain edges), with H
// hops of counters shaped by (log2m, seed). The initial vertex cover and
// all H levels of static HyperBall iteration are computed eagerly.
func New(g *graph.MutableGraph, hops int, log2m int, seed uint64, opts ...Option) (*Engine, error) {
	if hops < 1 {
		return nil, fmt.Errorf("neighborhood: New(hops=%d): %w", hops, ErrInvalidArgument)
	}

	e := &Engine{
		g:     g,
		vc:    vertexcover.New(g),
		bfs:   msbfs.New(g),
		h:     hops,
		log2m: log2m,
		seed:  seed,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.watcherCfg != nil {
		cfg := e.watcherCfg
		wrapped := func(f watcher.Firing) {
			e.metrics.incWatcherFires()
			if cfg.callback != nil {
				cfg.callback(f)
			}
		}
		w, err := watcher.New(cfg.capacity, cfg.percentageChange, cfg.minNodeCount, cfg.updateInterval, wrapped)
		if err != nil {
			return nil, err
		}
		e.watcher = w
		e.watchHop = cfg.hop
	}

	e.counters = make([]*hll.CounterArray, hops+1)
	for hop := range e.counters {
		arr, err := hll.NewWithLog2m(0, 0, log2m, seed)
		if err != nil {
			return nil, err
		}
		e.counters[hop] = arr
	}

	var ids []uint64
	it := g.NodeIterator(0)
	for it.NextNode() {
		ids = append(ids, it.Node())
	}
	for _, v := range ids {
		e.ensureVertex(v)
	}

	if err := g.IterateAllEdges(func(edge graph.Edge) error {
		e.vc.InsertEdge(edge)
		return nil
	}); err != nil {
		return nil, err
	}

	for hop := 1; hop <= hops; hop++ {
		for _, v := range ids {
			if err := e.counters[hop].Union(v, e.counters[hop-1], v); err != nil {
				return nil, err
			}
			succ := g.Successors(v)
			for succ.Next() {
				w := succ.Target()
				if err := e.counters[hop].Union(v, e.counters[hop-1], w); err != nil {
					return nil, err
				}
			}
		}
	}

	e.recordGauges()
	return e, nil
}

// ensureVertex grows every counter array to cover v, seeding its
// identity-set counter at hop 0 the first time v is seen.
func (e *Engine) ensureVertex(v uint64) {
	if v < e.capacity {
		return
	}
	delta := int64(v - e.capacity + 1)
	for _, c := range e.counters {
		if err := c.AddCounters(delta); err != nil {
			panic(err) // delta is always non-negative by construction
		}
	}
	for nv := e.capacity; nv <= v; nv++ {
		e.counters[0].Add(nv, nv)
	}
	e.capacity = v + 1
}

// Count estimates |B(v,h)|, the number of distinct vertices reachable
// from v within h hops. For a vertex outside the engine's dense range
// (never seen by New/AddEdges) this recomputes on the fly from a fresh
// scratch counter instead of growing the engine's permanent storage.
func (e *Engine) Count(v uint64, h int) float64 {
	if h < 0 {
		h = 0
	}
	if h > e.h {
		h = e.h
	}
	if v < e.capacity {
		return e.counters[h].Count(v)
	}
	if h == 0 {
		return 1
	}

	scratch, _ := hll.NewWithLog2m(1, 1, e.log2m, e.seed)
	scratch.Add(0, v)
	succ := e.g.Successors(v)
	for succ.Next() {
		w := succ.Target()
		if w < e.capacity {
			_ = scratch.Union(0, e.counters[h-1], w)
		}
	}
	return scratch.Count(0)
}

// AddEdges inserts a batch of arcs, updates the vertex cover, and
// recomputes every affected counter at every hop in strictly increasing
// order, then reports the touched vertices to the attached watcher (if
// any).
func (e *Engine) AddEdges(ctx context.Context, edges []graph.Edge) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer func() { e.metrics.observeAddEdgesDuration(time.Since(start).Seconds()) }()

	touched := make(map[uint64]struct{}, 2*len(edges))
	for _, edge := range edges {
		touched[edge.From] = struct{}{}
		touched[edge.To] = struct{}{}
	}

	before := make(map[uint64]float64, len(touched))
	if e.watcher != nil {
		for v := range touched {
			b := e.Count(v, e.watchHop)
			if b == 0 {
				b = 1
			}
			before[v] = b
		}
	}

	affectedSet := make(map[uint64]struct{})
	for _, edge := range edges {
		e.ensureVertex(edge.From)
		e.ensureVertex(edge.To)
		e.g.AddEdge(edge.From, edge.To)
		for _, av := range e.vc.InsertEdge(edge) {
			affectedSet[av.Vertex] = struct{}{}
		}
	}

	affected := make([]uint64, 0, len(affectedSet))
	for v := range affectedSet {
		affected = append(affected, v)
	}
	sort.Slice(affected, func(i, j int) bool { return affected[i] < affected[j] })

	if err := e.recomputeAffected(ctx, affected); err != nil {
		return err
	}

	e.metrics.observeAffected(len(affected))
	e.recordGauges()

	if e.watcher != nil {
		for v := range touched {
			after := e.Count(v, e.watchHop)
			e.watcher.Observe(v, after/before[v])
		}
	}

	if e.logger != nil {
		e.logger.Debug("AddEdges",
			zap.Int("edges", len(edges)),
			zap.Int("affected", len(affected)),
			zap.Duration("duration", time.Since(start)),
		)
	}

	return nil
}

// recomputeAffected recomputes C_h[v] for every v in affected, for every
// hop from 1 to H in strictly increasing order, batching the successor
// expansion over multi-source BFS so several vertices share a single
// pass over the graph.
func (e *Engine) recomputeAffected(ctx context.Context, affected []uint64) error {
	for hop := 1; hop <= e.h; hop++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		prev := e.counters[hop-1]
		curr := e.counters[hop]

		for start := 0; start < len(affected); start += msbfs.MaxSources {
			end := start + msbfs.MaxSources
			if end > len(affected) {
				end = len(affected)
			}
			batch := affected[start:end]

			for _, v := range batch {
				if err := curr.Union(v, prev, v); err != nil {
					return err
				}
			}

			var unionErr error
			err := e.bfs.Msbfs(ctx, batch, 1, func(depth int, w uint64, frontier uint64) bool {
				if depth == 0 {
					return true
				}
				for i, v := range batch {
					if frontier&(uint64(1)<<uint(i)) == 0 {
						continue
					}
					if uerr := curr.Union(v, prev, w); uerr != nil {
						unionErr = uerr
						return false
					}
				}
				return true
			})
			if err != nil {
				return err
			}
			if unionErr != nil {
				return unionErr
			}
		}
	}
	return nil
}

func (e *Engine) recordGauges() {
	if e.metrics == nil {
		return
	}
	size := 0
	for v := uint64(0); v < e.capacity; v++ {
		if e.vc.IsInVertexCover(v) {
			size++
		}
	}
	e.metrics.setVertexCoverSize(size)
	for hop, c := range e.counters {
		e.metrics.setCounterArrayBytes(hop, c.GetUsedBytes())
	}
}

// NumNodes returns the number of vertices the engine currently has
// permanent (dense) storage for.
func (e *Engine) NumNodes() uint64 { return e.capacity }

// Hops returns H, the maximum hop distance the engine tracks.
func (e *Engine) Hops() int { return e.h }
