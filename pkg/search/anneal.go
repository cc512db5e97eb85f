package search

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rankwidth/pkg/cache"
	"github.com/matzehuels/rankwidth/pkg/cut"
	"github.com/matzehuels/rankwidth/pkg/errors"
	"github.com/matzehuels/rankwidth/pkg/graph"
	"github.com/matzehuels/rankwidth/pkg/observability"
)

// Annealing schedule defaults.
const (
	DefaultInitialTemperature = 5.0
	DefaultBatchSize          = 25600
	DefaultCooling            = 0.95
	DefaultMinTemperature     = 0.05
)

// EventKind identifies a search notification.
type EventKind int

const (
	// EventBetterWidth fires for the initial decomposition and whenever a
	// new best width is accepted.
	EventBetterWidth EventKind = iota
	// EventImprovement fires whenever a new best score is accepted.
	EventImprovement
	// EventTemperature fires once per cooling batch.
	EventTemperature
	// EventFinished fires exactly once when the search goroutine ends.
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventBetterWidth:
		return "better-width"
	case EventImprovement:
		return "improvement"
	case EventTemperature:
		return "temperature"
	case EventFinished:
		return "finished"
	}
	return "unknown"
}

// Event is a snapshot of the search state at a notification point.
type Event struct {
	Kind        EventKind
	Score       int64
	Width       int
	BestScore   int64
	BestWidth   int
	Temperature float64
	Iterations  int64
	Elapsed     time.Duration

	// Decomposition is the DOT form of the best decomposition, set for
	// EventBetterWidth and EventFinished.
	Decomposition string
}

// Progress records when a best width was reached.
type Progress struct {
	Elapsed time.Duration
	Width   int
}

// Result summarizes a finished search.
type Result struct {
	Width         int
	Score         int64
	Decomposition string
	Iterations    int64
	Elapsed       time.Duration
	Progress      []Progress
	Stats         ScoreStats
	Cache         cache.Stats
}

// Annealer runs simulated annealing on a dedicated goroutine.
//
// Configure the exported fields before Start; zero values select the
// defaults. OnEvent is called synchronously on the search goroutine and
// must not block for long.
type Annealer struct {
	Operators          []WeightedOperator
	InitialTemperature float64
	AdaptiveCooling    bool
	BatchSize          int
	Cooling            float64
	MinTemperature     float64
	OnEvent            func(Event)
	Logger             *log.Logger

	sc         *Context
	fnName     string
	stop       atomic.Bool
	running    atomic.Bool
	done       chan struct{}
	start      time.Time
	iterations int64
	progress   []Progress
	result     Result
}

// Start creates a search context for g and fn and launches the search.
// Configuration errors are returned before any goroutine starts. The
// search stops when ctx is canceled, Stop is called or the temperature
// falls below MinTemperature.
func (a *Annealer) Start(ctx context.Context, g graph.Graph, fn cut.Function, opts Options) error {
	if len(a.Operators) == 0 {
		return errors.New(errors.ErrCodeNoOperators, "no operators specified")
	}
	for _, op := range a.Operators {
		if op.Weight <= 0 || op.Operator == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "operator weights must be positive")
		}
	}
	if a.running.Load() {
		return errors.New(errors.ErrCodeInternal, "search already running")
	}

	sc, err := NewContext(g, fn, opts)
	if err != nil {
		return err
	}
	a.sc = sc
	a.fnName = fn.Name()
	a.start = time.Now()
	a.iterations = 0
	a.progress = nil
	a.launch(ctx)
	return nil
}

// Restart continues the search from the current decomposition with a
// fresh temperature schedule. The previous search must have finished.
func (a *Annealer) Restart(ctx context.Context) error {
	if a.sc == nil {
		return errors.New(errors.ErrCodeInternal, "restart requires a previous search")
	}
	if a.running.Load() {
		return errors.New(errors.ErrCodeInternal, "search already running")
	}
	a.launch(ctx)
	return nil
}

func (a *Annealer) launch(ctx context.Context) {
	a.stop.Store(false)
	a.running.Store(true)
	done := make(chan struct{})
	a.done = done
	a.sc.ctx = ctx

	go func() {
		select {
		case <-ctx.Done():
			a.stop.Store(true)
		case <-done:
		}
	}()
	go func() {
		defer close(done)
		defer a.running.Store(false)
		a.run(ctx)
	}()
}

// Stop requests the search to end and waits for it.
func (a *Annealer) Stop() {
	a.stop.Store(true)
	a.Wait()
}

// Wait blocks until the search goroutine has finished.
func (a *Annealer) Wait() {
	if a.done != nil {
		<-a.done
	}
}

// closedChan is returned by Done before the first Start.
var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Done is closed when the search goroutine finishes. Before Start it
// returns a closed channel.
func (a *Annealer) Done() <-chan struct{} {
	if a.done == nil {
		return closedChan
	}
	return a.done
}

// Result returns the outcome of the last finished search. Call it after
// Wait.
func (a *Annealer) Result() Result { return a.result }

// Context returns the search context, nil before Start. It is owned by
// the search goroutine while a search runs.
func (a *Annealer) Context() *Context { return a.sc }

func (a *Annealer) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}

func (a *Annealer) schedule() (t0 float64, batch int, cooling, floor float64) {
	t0, batch, cooling, floor = a.InitialTemperature, a.BatchSize, a.Cooling, a.MinTemperature
	if t0 <= 0 {
		t0 = DefaultInitialTemperature
	}
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	if cooling <= 0 || cooling >= 1 {
		cooling = DefaultCooling
	}
	if floor <= 0 {
		floor = DefaultMinTemperature
	}
	return t0, batch, cooling, floor
}

func (a *Annealer) run(ctx context.Context) {
	sc := a.sc
	logger := a.logger()
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, a.fnName, sc.Decomposition.LeafCount())
	runStart := time.Now()
	runIterations := a.iterations

	sc.BestWidth = sc.Width
	sc.BestDecompositionScore = sc.Score
	sc.BestDecomposition = sc.ExportDOT()
	a.recordBest()
	logger.Infof("Initial: width %d (score %d)", sc.Width, sc.Score)
	hooks.OnBetterWidth(ctx, sc.Width, sc.Score)
	a.emit(EventBetterWidth, 0, sc.BestDecomposition)

	if sc.Decomposition.InternalCount() >= 2 {
		a.anneal(ctx, hooks)
	} else {
		logger.Debug("Decomposition has a single shape; skipping search")
	}

	if sc.Score < sc.BestDecompositionScore && sc.Width <= sc.BestWidth {
		sc.BestWidth = sc.Width
		sc.BestDecompositionScore = sc.Score
		sc.BestDecomposition = sc.ExportDOT()
	}

	a.result = Result{
		Width:         sc.BestWidth,
		Score:         sc.BestDecompositionScore,
		Decomposition: sc.BestDecomposition,
		Iterations:    a.iterations,
		Elapsed:       time.Since(a.start),
		Progress:      append([]Progress(nil), a.progress...),
		Stats:         sc.Stats(),
		Cache:         sc.CacheStats(),
	}
	st := a.result.Stats
	logger.Debugf("Re-scores: %d (skipped %d, hits %d, misses %d); cache evictions %d",
		st.Rescores, st.Skipped, st.Hits, st.Misses, a.result.Cache.Evictions)
	logger.Infof("Best: width %d after %d iterations", sc.BestWidth, a.iterations)
	hooks.OnSearchComplete(ctx, sc.BestWidth, a.iterations-runIterations, time.Since(runStart))
	a.emit(EventFinished, 0, sc.BestDecomposition)
}

func (a *Annealer) anneal(ctx context.Context, hooks observability.SearchHooks) {
	sc := a.sc
	logger := a.logger()
	t2, batch, cooling, floor := a.schedule()
	t := t2

	bands := make([]int, len(a.Operators))
	acc := 0
	for i, op := range a.Operators {
		acc += op.Weight
		bands[i] = acc
	}

	for !a.stop.Load() {
		for q := batch; q > 0 && !a.stop.Load(); q-- {
			r := sc.Random.IntN(acc)
			i := 0
			for r >= bands[i] {
				i++
			}
			op := a.Operators[i].Operator

			sc.StoreScore()
			op.Perform(sc)
			a.iterations++

			accept := sc.Score <= sc.OldScore && sc.Score >= 0
			if !accept && sc.Score >= 0 {
				accept = sc.Random.Float64() < math.Exp(float64(sc.OldScore-sc.Score)/t)
			}
			if !accept {
				op.Undo(sc)
				sc.RestoreScore()
				continue
			}

			if sc.Width < sc.BestWidth {
				sc.BestWidth = sc.Width
				sc.BestDecompositionScore = sc.Score
				sc.BestDecomposition = sc.ExportDOT()
				a.recordBest()
				logger.Infof("Improved: width %d (score %d, %v elapsed)",
					sc.Width, sc.Score, time.Since(a.start).Truncate(time.Millisecond))
				hooks.OnBetterWidth(ctx, sc.Width, sc.Score)
				a.emit(EventBetterWidth, t, sc.BestDecomposition)
			}
			if sc.Score < sc.BestScore {
				sc.BestScore = sc.Score
				logger.Debugf("Improvement: score %d, width %d", sc.Score, sc.Width)
				hooks.OnImprovement(ctx, sc.Score)
				a.emit(EventImprovement, t, "")
			}
		}

		t2 *= cooling
		if t2 < floor {
			break
		}
		t = t2
		if a.AdaptiveCooling && sc.Score > 0 {
			t = t2 * (1 + float64(sc.Score-sc.BestScore)/float64(sc.Score))
		}
		logger.Debugf("Temperature %.4f: width %d, score %d (best %d)", t, sc.Width, sc.Score, sc.BestScore)
		hooks.OnTemperature(ctx, t, sc.Score)
		a.emit(EventTemperature, t, "")
	}
}

func (a *Annealer) recordBest() {
	a.progress = append(a.progress, Progress{Elapsed: time.Since(a.start), Width: a.sc.BestWidth})
}

func (a *Annealer) emit(kind EventKind, t float64, dot string) {
	if a.OnEvent == nil {
		return
	}
	sc := a.sc
	a.OnEvent(Event{
		Kind:          kind,
		Score:         sc.Score,
		Width:         sc.Width,
		BestScore:     sc.BestScore,
		BestWidth:     sc.BestWidth,
		Temperature:   t,
		Iterations:    a.iterations,
		Elapsed:       time.Since(a.start),
		Decomposition: dot,
	})
}
