package cut

import (
	"github.com/matzehuels/rankwidth/pkg/bitset"
	"github.com/matzehuels/rankwidth/pkg/gf4"
	"github.com/matzehuels/rankwidth/pkg/graph"
)

// F4Rank computes the GF(4) cut-rank of a directed graph.
type F4Rank struct{}

// Name implements Function.
func (F4Rank) Name() string { return "F4-rank-width" }

// Accepts implements Function.
func (r F4Rank) Accepts(g graph.Graph) error {
	if _, ok := g.(*graph.Directed); !ok {
		return mismatch(r, "a directed GF(4) graph")
	}
	return nil
}

// Compute implements Function.
func (F4Rank) Compute(g graph.Graph, part *bitset.BitSet, count int) int {
	d := g.(*graph.Directed)
	n := d.VertexCount()
	count, column := side(n, count)

	rows := make([]*gf4.Array, 0, count)
	for v := 0; v < n; v++ {
		if part.Get(v) != column {
			rows = append(rows, d.Row(v).Clone())
		}
	}

	rank := 0
	for col := 0; rank < len(rows) && col < n; col++ {
		if part.Get(col) != column {
			continue
		}

		pivot := -1
		for j := rank; j < len(rows); j++ {
			if rows[j].Get(col) != gf4.Zero {
				pivot = j
				break
			}
		}
		if pivot < 0 {
			continue
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]

		p := rows[rank].Get(col)
		for j := rank + 1; j < len(rows); j++ {
			if e := rows[j].Get(col); e != gf4.Zero {
				rows[j].MultiplyAdd(rows[rank], gf4.Divide(e, p))
			}
		}
		rank++
	}
	return rank
}
