package decomp

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// BuildCaterpillars connects the unconnected leaves of d into a tree of
// three caterpillars hanging off one center node. Each caterpillar takes
// about a third of the leaves in random order, which bounds the width of
// the result by ⌈n/3⌉.
//
// Every internal node ends up with degree three: a tree on n ≥ 3 leaves
// gets n-2 internal nodes and 2n-3 edges. Two leaves are joined directly
// and a single leaf stays isolated.
func (d *Decomposition) BuildCaterpillars(rng *rand.Rand) {
	if d.InternalCount() != 0 || d.EdgeCount() != 0 {
		panic("decomp: BuildCaterpillars requires an empty tree")
	}

	n := d.leaves
	switch n {
	case 0, 1:
		return
	case 2:
		d.mustAdd(0, 1)
		return
	}

	pool := make([]NodeID, n)
	for i := range pool {
		pool[i] = NodeID(i)
	}
	take := func() NodeID {
		i := rng.IntN(len(pool))
		id := pool[i]
		pool = slices.Delete(pool, i, i+1)
		return id
	}

	center := d.NewInternal()
	for _, k := range []int{n / 3, 2*n/3 - n/3, n - 2*n/3} {
		d.mustAdd(center, d.caterpillar(k, take))
	}
}

// caterpillar builds a path of internal nodes carrying k leaves and
// returns the node to attach to the center.
func (d *Decomposition) caterpillar(k int, take func() NodeID) NodeID {
	if k == 1 {
		return take()
	}
	c := d.NewInternal()
	d.mustAdd(c, take())
	d.mustAdd(c, take())
	for i := 2; i < k; i++ {
		next := d.NewInternal()
		d.mustAdd(next, c)
		d.mustAdd(next, take())
		c = next
	}
	return c
}

// MustAddNeighbor is AddNeighbor for callers that know the edit is valid.
// It panics when the edit is refused.
func (d *Decomposition) MustAddNeighbor(a, b NodeID) {
	d.mustAdd(a, b)
}

func (d *Decomposition) mustAdd(a, b NodeID) {
	if !d.AddNeighbor(a, b) {
		panic(fmt.Sprintf("decomp: cannot connect %d (degree %d) and %d (degree %d)",
			a, d.Degree(a), b, d.Degree(b)))
	}
}
