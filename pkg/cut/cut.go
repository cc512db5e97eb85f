// Package cut implements the cut functions that turn a vertex partition
// into a width.
//
// A partition is a bit set over the vertices together with its population
// count. Every function is symmetric in the two sides and works on the
// smaller one, returns a value in [0, min(count, n-count)], and leaves its
// inputs untouched.
//
//   - [Rank]: GF(2) rank of the bipartite adjacency block, dense rows
//   - [SparseRank]: the same rank computed on adjacency lists
//   - [F4Rank]: GF(4) rank on a directed graph
//   - [Matching]: maximum matching across the cut (Hopcroft–Karp)
//
// Functions panic when handed a graph view they cannot read; call Accepts
// once before a search starts.
package cut

import (
	"github.com/matzehuels/rankwidth/pkg/bitset"
	"github.com/matzehuels/rankwidth/pkg/errors"
	"github.com/matzehuels/rankwidth/pkg/graph"
)

// Function scores a vertex partition.
type Function interface {
	// Name identifies the width parameter, e.g. "rank-width".
	Name() string
	// Accepts reports whether the function can read g.
	Accepts(g graph.Graph) error
	// Compute returns the width of the cut between part and its complement.
	// count is the number of set bits in part.
	Compute(g graph.Graph, part *bitset.BitSet, count int) int
}

// side decides which side of a partition supplies the rows: the rows are
// the vertices v with part.Get(v) != column.
func side(n, count int) (rows int, column bool) {
	if count > n>>1 {
		return n - count, true
	}
	return count, false
}

func mismatch(f Function, want string) error {
	return errors.New(errors.ErrCodeModeMismatch, "%s requires %s", f.Name(), want)
}
