package cut

import (
	"github.com/matzehuels/rankwidth/pkg/bitset"
	"github.com/matzehuels/rankwidth/pkg/graph"
)

// Rank computes the GF(2) cut-rank from dense adjacency rows.
//
// Rows start out aliasing the graph and are copied on their first
// elimination step only.
type Rank struct{}

// Name implements Function.
func (Rank) Name() string { return "rank-width" }

// Accepts implements Function.
func (r Rank) Accepts(g graph.Graph) error {
	if _, ok := g.(*graph.Matrix); !ok {
		return mismatch(r, "an undirected adjacency matrix")
	}
	return nil
}

// Compute implements Function.
func (Rank) Compute(g graph.Graph, part *bitset.BitSet, count int) int {
	m := g.(*graph.Matrix)
	n := m.VertexCount()
	count, column := side(n, count)

	rows := make([]*bitset.BitSet, 0, count)
	for v := 0; v < n; v++ {
		if part.Get(v) != column {
			rows = append(rows, m.Row(v))
		}
	}
	owned := make([]bool, len(rows))

	rank := 0
	for col := 0; rank < len(rows) && col < n; col++ {
		if part.Get(col) != column {
			continue
		}

		pivot := -1
		for j := rank; j < len(rows); j++ {
			if rows[j].Get(col) {
				pivot = j
				break
			}
		}
		if pivot < 0 {
			continue
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]
		owned[rank], owned[pivot] = owned[pivot], owned[rank]

		for j := rank + 1; j < len(rows); j++ {
			if !rows[j].Get(col) {
				continue
			}
			if !owned[j] {
				rows[j] = rows[j].Clone()
				owned[j] = true
			}
			rows[j].XorFrom(rows[rank], col)
		}
		rank++
	}
	return rank
}
