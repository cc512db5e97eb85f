// Package search approximates a width parameter by simulated annealing
// over branch decompositions.
//
// # Overview
//
// A [Context] owns one decomposition of a graph together with its score:
// the sum of squared edge widths plus n times the square of the maximum
// width. The maximum dominates, so the search first lowers the width and
// then flattens the remaining edges.
//
// An [Annealer] repeatedly applies a randomly drawn [Operator] to the
// context and accepts or undoes it by the Metropolis criterion:
//
//	a := &search.Annealer{Operators: search.DefaultOperators()}
//	if err := a.Start(ctx, g, cut.Rank{}, search.Options{ThresholdDelta: -1, Seed: 42}); err != nil {
//		return err
//	}
//	a.Wait()
//	fmt.Println(a.Result().Width)
//
// # Threshold Heuristic
//
// With [Options.ThresholdDelta] ≥ 0, edges whose smaller side has at most
// width-δ leaves are assumed to have width equal to that side and are not
// computed. The score pass is repeated until the assumed threshold agrees
// with the width it produced.
//
// # Concurrency
//
// The annealing loop runs on one goroutine and is the only writer of the
// decomposition and the score. Cache misses found during a re-score are
// computed in parallel and merged back on the search goroutine. Stopping
// is cooperative: a stop request takes effect between iterations.
package search
