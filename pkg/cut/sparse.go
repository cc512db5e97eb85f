package cut

import (
	"github.com/matzehuels/rankwidth/pkg/bitset"
	"github.com/matzehuels/rankwidth/pkg/graph"
)

// SparseRank computes the GF(2) cut-rank from sorted adjacency lists.
//
// The larger side supplies the rows, each reduced to its neighbors on the
// smaller side; empty rows are dropped. Rows are reduced lazily: a row is
// only XORed with earlier pivot rows when its leading column falls behind
// the active column.
type SparseRank struct{}

// Name implements Function.
func (SparseRank) Name() string { return "rank-width" }

// Accepts implements Function.
func (r SparseRank) Accepts(g graph.Graph) error {
	if _, ok := g.(*graph.Lists); !ok {
		return mismatch(r, "adjacency lists")
	}
	return nil
}

// Compute implements Function.
func (SparseRank) Compute(g graph.Graph, part *bitset.BitSet, count int) int {
	l := g.(*graph.Lists)
	n := l.VertexCount()
	_, column := side(n, count)
	column = !column

	var rows [][]int32
	for v := 0; v < n; v++ {
		if part.Get(v) == column {
			continue
		}
		var row []int32
		for _, u := range l.Neighbors(v) {
			if part.Get(int(u)) == column {
				row = append(row, u)
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	pivots := make([][]int32, n)
	rank := 0
	for col := 0; rank < len(rows) && col < n; col++ {
		if part.Get(col) != column {
			continue
		}
		c := int32(col)

		found := false
		for j := rank; j < len(rows); j++ {
			for len(rows[j]) > 0 && rows[j][0] < c {
				rows[j] = xorSorted(rows[j], pivots[rows[j][0]])
			}
			if len(rows[j]) > 0 && rows[j][0] == c {
				rows[rank], rows[j] = rows[j], rows[rank]
				found = true
				break
			}
		}
		if !found {
			continue
		}
		pivots[c] = rows[rank]
		rank++
	}
	return rank
}

// xorSorted returns the symmetric difference of two sorted lists.
func xorSorted(a, b []int32) []int32 {
	out := make([]int32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
