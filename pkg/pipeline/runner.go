package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rankwidth/pkg/cache"
	"github.com/matzehuels/rankwidth/pkg/cut"
	"github.com/matzehuels/rankwidth/pkg/errors"
	"github.com/matzehuels/rankwidth/pkg/graph"
	"github.com/matzehuels/rankwidth/pkg/search"
)

// Runner loads graphs and runs the search.
//
// A Runner holds no per-run state; OnEvent, when set, receives every
// search event of every run on the search goroutine.
type Runner struct {
	Logger  *log.Logger
	OnEvent func(search.Event)
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result is the outcome of one run.
type Result struct {
	// Function is the name of the width parameter, e.g. "rank-width".
	Function string
	Vertices int

	Width int
	Score int64

	// Decomposition is the best decomposition in DOT form. It is empty for
	// trivial graphs.
	Decomposition string

	// Trivial is set when the width is known without searching; Reason
	// says why.
	Trivial bool
	Reason  string

	Iterations int64
	Elapsed    time.Duration
	Progress   []search.Progress
	Stats      search.ScoreStats
	Cache      cache.Stats
}

// Run loads the graph at path and approximates its width.
func (r *Runner) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	g, err := LoadGraph(path, opts)
	if err != nil {
		return nil, err
	}
	fn, err := NewCutFunction(opts)
	if err != nil {
		return nil, err
	}
	return r.Approximate(ctx, g, fn, opts)
}

// LoadGraph reads a DIMACS file into the graph view the cut function for
// opts reads.
func LoadGraph(path string, opts Options) (graph.Graph, error) {
	var m *graph.Matrix
	switch opts.Input {
	case InputDirected:
		d, err := graph.ReadDirectedFile(path)
		if err != nil {
			return nil, err
		}
		return d, nil
	case InputD2U:
		d, err := graph.ReadDirectedFile(path)
		if err != nil {
			return nil, err
		}
		m = d.ToUndirected()
	default:
		var err error
		if m, err = graph.ReadUndirectedFile(path); err != nil {
			return nil, err
		}
	}
	return View(m, opts), nil
}

// View returns the representation of an undirected graph read by the cut
// function for opts.
func View(m *graph.Matrix, opts Options) graph.Graph {
	switch {
	case opts.EffectiveWidth() == WidthMM, opts.Sparse:
		return graph.NewLists(m)
	case opts.EffectiveWidth() == WidthF4Rank:
		return m.ToDirected()
	}
	return m
}

// NewCutFunction returns the cut function for opts.
func NewCutFunction(opts Options) (cut.Function, error) {
	switch opts.EffectiveWidth() {
	case WidthRank:
		if opts.Sparse {
			return cut.SparseRank{}, nil
		}
		return cut.Rank{}, nil
	case WidthF4Rank:
		return cut.F4Rank{}, nil
	case WidthMM:
		return cut.Matching{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid width %q", opts.Width)
}

// Approximate searches a decomposition of g. Graphs with fewer than two
// vertices or without edges have width 0 and are not searched. The search
// ends when it has cooled, when ctx is canceled or when the time limit
// expires; the best decomposition found so far is returned in every case.
func (r *Runner) Approximate(ctx context.Context, g graph.Graph, fn cut.Function, opts Options) (*Result, error) {
	logger := r.logger()
	n := g.VertexCount()
	res := &Result{Function: fn.Name(), Vertices: n}

	switch {
	case n < 2:
		res.Trivial, res.Reason = true, "Graph has fewer than 2 vertices"
	case !g.HasEdges():
		res.Trivial, res.Reason = true, "Graph has no edges"
	}
	if res.Trivial {
		logger.Infof("%s, width is 0", res.Reason)
		return res, nil
	}

	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.TimeLimit)*time.Second)
		defer cancel()
	}

	a := &search.Annealer{
		Operators:          search.DefaultOperators(),
		InitialTemperature: opts.InitialTemperature,
		AdaptiveCooling:    opts.AdaptiveCooling,
		BatchSize:          opts.BatchSize,
		Cooling:            opts.Cooling,
		MinTemperature:     opts.MinTemperature,
		OnEvent:            r.OnEvent,
		Logger:             logger,
	}
	logger.Infof("Approximating %s of %d vertices", fn.Name(), n)
	if err := a.Start(ctx, g, fn, opts.SearchOptions()); err != nil {
		return nil, err
	}
	a.Wait()

	sr := a.Result()
	res.Width = sr.Width
	res.Score = sr.Score
	res.Decomposition = sr.Decomposition
	res.Iterations = sr.Iterations
	res.Elapsed = sr.Elapsed
	res.Progress = sr.Progress
	res.Stats = sr.Stats
	res.Cache = sr.Cache
	return res, nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
