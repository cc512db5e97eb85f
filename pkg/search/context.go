package search

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rankwidth/pkg/bitset"
	"github.com/matzehuels/rankwidth/pkg/cache"
	"github.com/matzehuels/rankwidth/pkg/cut"
	"github.com/matzehuels/rankwidth/pkg/decomp"
	"github.com/matzehuels/rankwidth/pkg/graph"
	"github.com/matzehuels/rankwidth/pkg/observability"
)

// Options configures a search context.
type Options struct {
	// ThresholdDelta enables the threshold heuristic when ≥ 0.
	ThresholdDelta int
	// Seed seeds the search RNG; negative values draw a random seed.
	Seed int64
	// InitialSeed seeds the construction of the initial decomposition.
	// Negative values reuse the search RNG.
	InitialSeed int64
	// CacheCapacity bounds the width cache (default cache.DefaultCapacity).
	CacheCapacity int
	// Parallelism bounds the number of concurrent cut computations during a
	// re-score (default GOMAXPROCS).
	Parallelism int
}

// ScoreStats counts partitions seen by full re-scoring passes.
type ScoreStats struct {
	Rescores int64
	Skipped  int64
	Hits     int64
	Misses   int64
}

// Context holds a decomposition and its score.
//
// Score, Width and Worst describe the current decomposition. The Old*
// fields are the snapshot taken by StoreScore. The Best* fields are
// maintained by the Annealer.
type Context struct {
	Decomposition *decomp.Decomposition
	Graph         graph.Graph

	Score int64
	Width int
	Worst *bitset.BitSet

	OldScore int64
	OldWidth int
	OldWorst *bitset.BitSet

	BestScore              int64
	BestWidth              int
	BestDecomposition      string
	BestDecompositionScore int64

	Random *rand.Rand

	fn          cut.Function
	delta       int
	parallelism int

	mu    sync.Mutex
	cache *cache.WidthCache
	stats ScoreStats

	ctx   context.Context
	hooks observability.ScoringHooks

	pending []pendingCut
	results []int
}

type pendingCut struct {
	part  *bitset.BitSet
	count int
}

// NewContext builds a random initial decomposition of g and scores it.
// The initial width estimate is ⌈n/3⌉, the bound guaranteed by the
// initial construction.
func NewContext(g graph.Graph, fn cut.Function, opts Options) (*Context, error) {
	if err := fn.Accepts(g); err != nil {
		return nil, err
	}
	capacity := opts.CacheCapacity
	if capacity == 0 {
		capacity = cache.DefaultCapacity
	}
	wc, err := cache.New(capacity)
	if err != nil {
		return nil, err
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	n := g.VertexCount()
	c := &Context{
		Decomposition: decomp.New(n),
		Graph:         g,
		Random:        newRand(opts.Seed),
		fn:            fn,
		delta:         opts.ThresholdDelta,
		parallelism:   parallelism,
		cache:         wc,
		ctx:           context.Background(),
		hooks:         observability.Scoring(),
	}

	initial := c.Random
	if opts.InitialSeed >= 0 {
		initial = newRand(opts.InitialSeed)
	}
	c.Decomposition.BuildCaterpillars(initial)

	c.Width = (n + 2) / 3
	c.RecalculateScore()
	c.BestWidth = c.Width
	c.BestScore = c.Score
	return c, nil
}

func newRand(seed int64) *rand.Rand {
	if seed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}

// UseThresholdHeuristic reports whether the threshold heuristic is on.
func (c *Context) UseThresholdHeuristic() bool { return c.delta >= 0 }

// ThresholdDelta returns δ, negative when the heuristic is off.
func (c *Context) ThresholdDelta() int { return c.delta }

// Function returns the cut function scoring this context.
func (c *Context) Function() cut.Function { return c.fn }

// threshold returns the largest smaller-side size that is assumed rather
// than computed for the current width estimate.
func (c *Context) threshold() int {
	if c.delta < 0 {
		return 1
	}
	return max(1, c.Width-c.delta)
}

// assumedWidth returns the width of an edge whose smaller side has
// minCount leaves when the threshold shortcut applies.
func (c *Context) assumedWidth(count int) (int, bool) {
	minCount := min(count, c.Decomposition.LeafCount()-count)
	if minCount <= c.threshold() {
		return minCount, true
	}
	return 0, false
}

// RecalculateScore rescores every edge of the decomposition.
//
// Edges at or below the threshold count as their smaller side. The rest
// are looked up in the cache; misses are computed in parallel and added
// to it. With the heuristic on, the pass repeats while the width it
// produced invalidates the threshold it assumed.
func (c *Context) RecalculateScore() {
	start := time.Now()
	var skipped, hits, misses int

	threshold := c.threshold()
	for {
		n := c.Decomposition.LeafCount()
		var (
			score int64
			width = threshold
			worst *bitset.BitSet
		)
		c.pending = c.pending[:0]

		c.Decomposition.FindEdgePartitions(func(part *bitset.BitSet, count int, _, _ decomp.NodeID) {
			minCount := min(count, n-count)
			if minCount <= threshold {
				skipped++
				score += int64(minCount) * int64(minCount)
				return
			}
			c.mu.Lock()
			w, ok := c.cache.TryGet(part)
			c.mu.Unlock()
			if ok {
				hits++
				score += int64(w) * int64(w)
				if w >= width {
					width = w
					worst = part.Clone()
				}
				return
			}
			misses++
			c.pending = append(c.pending, pendingCut{part: part.Clone(), count: count})
		}, threshold)

		c.computePending()

		c.mu.Lock()
		for i, p := range c.pending {
			w := c.results[i]
			c.cache.Add(p.part, w)
			score += int64(w) * int64(w)
			if w > width {
				width = w
				worst = p.part
			}
		}
		c.mu.Unlock()

		score += int64(width) * int64(width) * int64(n)
		prev := c.Width
		c.Score, c.Width, c.Worst = score, width, worst

		if c.delta < 0 {
			break
		}
		var next int
		switch {
		case width > 1 && threshold == width:
			next = max(1, min(width-c.delta, threshold-1))
		case width < prev:
			next = max(1, width-c.delta)
		default:
			next = threshold
		}
		if next >= threshold {
			break
		}
		threshold = next
	}

	c.stats.Rescores++
	c.stats.Skipped += int64(skipped)
	c.stats.Hits += int64(hits)
	c.stats.Misses += int64(misses)
	c.hooks.OnRescore(c.ctx, skipped, hits, misses, time.Since(start))
}

// computePending fills c.results with the widths of c.pending. Each task
// writes only its own slot.
func (c *Context) computePending() {
	if cap(c.results) < len(c.pending) {
		c.results = make([]int, len(c.pending))
	}
	c.results = c.results[:len(c.pending)]

	if len(c.pending) < 2 || c.parallelism < 2 {
		for i, p := range c.pending {
			c.results[i] = c.fn.Compute(c.Graph, p.part, p.count)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(c.parallelism)
	for i, p := range c.pending {
		g.Go(func() error {
			c.results[i] = c.fn.Compute(c.Graph, p.part, p.count)
			return nil
		})
	}
	_ = g.Wait()
}

// CalculateCutWidth returns the width of a single partition through the
// cache. part may be reused by the caller afterwards.
func (c *Context) CalculateCutWidth(part *bitset.BitSet, count int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.cache.TryGet(part); ok {
		return w
	}
	w := c.fn.Compute(c.Graph, part, count)
	c.cache.Add(part, w)
	return w
}

// StoreScore snapshots score, width and worst partition.
func (c *Context) StoreScore() {
	c.OldScore, c.OldWidth, c.OldWorst = c.Score, c.Width, c.Worst
}

// RestoreScore rolls back to the last StoreScore.
func (c *Context) RestoreScore() {
	c.Score, c.Width, c.Worst = c.OldScore, c.OldWidth, c.OldWorst
}

// ExportDOT serializes the current decomposition with the exact width of
// every edge.
func (c *Context) ExportDOT() string {
	return c.Decomposition.ToDOT(c.Graph.Label, c.CalculateCutWidth)
}

// Stats returns re-scoring counters.
func (c *Context) Stats() ScoreStats { return c.stats }

// CacheStats returns the width cache counters.
func (c *Context) CacheStats() cache.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Stats()
}

// RandomInternal returns a uniformly chosen internal node other than
// forbidden. Pass decomp.None to allow all.
func (c *Context) RandomInternal(forbidden decomp.NodeID) decomp.NodeID {
	d := c.Decomposition
	return d.Internal(pick(c.Random, d.InternalCount(), int(forbidden)-d.LeafCount()))
}

// RandomLeaf returns a uniformly chosen leaf other than forbidden.
func (c *Context) RandomLeaf(forbidden decomp.NodeID) decomp.NodeID {
	return c.Decomposition.Leaf(pick(c.Random, c.Decomposition.LeafCount(), int(forbidden)))
}

// RandomNode returns a uniformly chosen node other than forbidden.
func (c *Context) RandomNode(forbidden decomp.NodeID) decomp.NodeID {
	return decomp.NodeID(pick(c.Random, c.Decomposition.NodeCount(), int(forbidden)))
}

// pick draws from [0, total) skipping forbidden when it lies in range.
func pick(rng *rand.Rand, total, forbidden int) int {
	if forbidden < 0 || forbidden >= total {
		return rng.IntN(total)
	}
	r := rng.IntN(total - 1)
	if r >= forbidden {
		r++
	}
	return r
}
