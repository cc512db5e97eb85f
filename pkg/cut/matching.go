package cut

import (
	"math"

	"github.com/matzehuels/rankwidth/pkg/bitset"
	"github.com/matzehuels/rankwidth/pkg/graph"
)

// Matching computes the size of a maximum matching between the two sides
// of the cut with Hopcroft–Karp. The smaller side is the left side U.
type Matching struct{}

// Name implements Function.
func (Matching) Name() string { return "maximum-matching-width" }

// Accepts implements Function.
func (f Matching) Accepts(g graph.Graph) error {
	if _, ok := g.(*graph.Lists); !ok {
		return mismatch(f, "adjacency lists of an undirected graph")
	}
	return nil
}

// Compute implements Function.
func (Matching) Compute(g graph.Graph, part *bitset.BitSet, count int) int {
	l := g.(*graph.Lists)
	n := l.VertexCount()
	_, column := side(n, count)

	hk := hopcroftKarp{
		g:     l,
		part:  part,
		left:  !column,
		free:  n,
		pair:  make([]int, n+1),
		dist:  make([]int, n+1),
		queue: make([]int, 0, n),
	}
	for i := range hk.pair {
		hk.pair[i] = n
	}

	matched := 0
	for hk.bfs() {
		for u := 0; u < n; u++ {
			if hk.inLeft(u) && hk.pair[u] == n && hk.dfs(u) {
				matched++
			}
		}
	}
	return matched
}

// hopcroftKarp holds the per-call state. The index free (== n) stands for
// "unmatched" in pair and for the end of an augmenting path in dist.
type hopcroftKarp struct {
	g     *graph.Lists
	part  *bitset.BitSet
	left  bool
	free  int
	pair  []int
	dist  []int
	queue []int
}

func (h *hopcroftKarp) inLeft(v int) bool { return h.part.Get(v) == h.left }

// bfs layers the graph from every free left vertex and reports whether an
// augmenting path exists.
func (h *hopcroftKarp) bfs() bool {
	q := h.queue[:0]
	for u := 0; u < h.free; u++ {
		if !h.inLeft(u) {
			continue
		}
		if h.pair[u] == h.free {
			h.dist[u] = 0
			q = append(q, u)
		} else {
			h.dist[u] = math.MaxInt
		}
	}
	h.dist[h.free] = math.MaxInt

	for len(q) > 0 {
		u := q[0]
		q = q[1:]
		if h.dist[u] >= h.dist[h.free] {
			continue
		}
		for _, v := range h.g.Neighbors(u) {
			if h.inLeft(int(v)) {
				continue
			}
			w := h.pair[v]
			if h.dist[w] == math.MaxInt {
				h.dist[w] = h.dist[u] + 1
				q = append(q, w)
			}
		}
	}
	h.queue = q
	return h.dist[h.free] != math.MaxInt
}

// dfs augments along a shortest alternating path starting at u.
func (h *hopcroftKarp) dfs(u int) bool {
	if u == h.free {
		return true
	}
	for _, v := range h.g.Neighbors(u) {
		if h.inLeft(int(v)) {
			continue
		}
		w := h.pair[v]
		if h.dist[w] == h.dist[u]+1 && h.dfs(w) {
			h.pair[v] = u
			h.pair[u] = int(v)
			return true
		}
	}
	h.dist[u] = math.MaxInt
	return false
}
