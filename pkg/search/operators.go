package search

import (
	"github.com/matzehuels/rankwidth/pkg/decomp"
)

// Operator is a reversible edit of the context's decomposition. Perform
// leaves Score and Width describing the edited tree; Undo restores the
// tree of the last Perform but not the score (see Context.RestoreScore).
type Operator interface {
	Name() string
	Perform(c *Context)
	Undo(c *Context)
}

// WeightedOperator pairs an operator with its relative selection weight.
type WeightedOperator struct {
	Weight   int
	Operator Operator
}

// DefaultOperators returns fresh instances of all operators with their
// standard weights.
func DefaultOperators() []WeightedOperator {
	return []WeightedOperator{
		{Weight: 5000, Operator: &LeafSwap{}},
		{Weight: 20000, Operator: &LocalSwap{}},
		{Weight: 25000, Operator: &Move{}},
	}
}

func mustPerformed(performed bool, name string) {
	if !performed {
		panic("search: " + name + ".Undo called before Perform")
	}
}

// =============================================================================
// Leaf swap
// =============================================================================

// LeafSwap exchanges the vertices of two random leaves.
type LeafSwap struct {
	a, b      decomp.NodeID
	performed bool
}

func (*LeafSwap) Name() string { return "leaf-swap" }

func (o *LeafSwap) Perform(c *Context) {
	o.a = c.RandomLeaf(decomp.None)
	o.b = c.RandomLeaf(o.a)
	c.Decomposition.SwapVertices(o.a, o.b)
	c.RecalculateScore()
	o.performed = true
}

func (o *LeafSwap) Undo(c *Context) {
	mustPerformed(o.performed, "LeafSwap")
	c.Decomposition.SwapVertices(o.a, o.b)
}

// =============================================================================
// Local swap
// =============================================================================

// LocalSwap exchanges two subtrees around one tree edge.
//
// Given an internal node C with neighbors A and B (B internal) and a
// neighbor X ≠ C of B, the edges C–A and B–X become B–A and C–X. Only the
// cut of edge C–B changes, so the score is updated from the old and new
// widths of that edge unless the change can move the maximum.
type LocalSwap struct {
	center, a, b, moved decomp.NodeID
	performed           bool
}

func (*LocalSwap) Name() string { return "local-swap" }

func (o *LocalSwap) Perform(c *Context) {
	d := c.Decomposition
	var center, a, b decomp.NodeID
	for {
		center = c.RandomInternal(decomp.None)
		i := c.Random.IntN(3)
		j := (i + 1 + c.Random.IntN(2)) % 3
		a, b = d.Neighbor(center, i), d.Neighbor(center, j)
		if !d.IsLeaf(a) || !d.IsLeaf(b) {
			break
		}
	}
	if d.IsLeaf(b) {
		a, b = b, a
	}

	k := c.Random.IntN(d.Degree(b) - 1)
	if d.Neighbor(b, k) == center {
		k = d.Degree(b) - 1
	}
	moved := d.Neighbor(b, k)

	oldPart, oldCount := d.Partition(center, b)

	d.RemoveNeighbor(b, moved)
	d.RemoveNeighbor(center, a)
	d.MustAddNeighbor(b, a)
	d.MustAddNeighbor(center, moved)

	newPart, newCount := d.Partition(center, b)

	oldWidth, ok := c.assumedWidth(oldCount)
	if !ok {
		oldWidth = c.CalculateCutWidth(oldPart, oldCount)
	}
	newWidth, ok := c.assumedWidth(newCount)
	if !ok {
		newWidth = c.CalculateCutWidth(newPart, newCount)
	}

	if (oldWidth <= c.OldWidth && newWidth > c.OldWidth) ||
		(oldWidth == c.OldWidth && newWidth < c.OldWidth) {
		c.RecalculateScore()
	} else {
		c.Score += int64(newWidth)*int64(newWidth) - int64(oldWidth)*int64(oldWidth)
	}

	o.center, o.a, o.b, o.moved = center, a, b, moved
	o.performed = true
}

func (o *LocalSwap) Undo(c *Context) {
	mustPerformed(o.performed, "LocalSwap")
	d := c.Decomposition
	d.RemoveNeighbor(o.center, o.moved)
	d.RemoveNeighbor(o.b, o.a)
	d.MustAddNeighbor(o.center, o.a)
	d.MustAddNeighbor(o.b, o.moved)
}

// =============================================================================
// Move
// =============================================================================

// Move relocates a cut point. For two non-adjacent nodes A and B, the
// first node P on the path from A to B is detached from its two other
// neighbors X and Y, which are joined directly, and P is spliced into the
// edge between B and its last path node Q, keeping A attached.
type Move struct {
	a, b, p, x, y, q decomp.NodeID
	performed        bool
}

func (*Move) Name() string { return "move" }

func (o *Move) Perform(c *Context) {
	d := c.Decomposition
	for {
		a := c.RandomNode(decomp.None)
		b := c.RandomNode(a)
		if d.HasNeighbor(a, b) {
			continue
		}
		p, q := d.FindPathDirection(a, b)
		if p == decomp.None || q == decomp.None {
			continue
		}
		if d.Degree(p) != 3 || p == q {
			continue
		}

		d.RemoveNeighbor(p, a)
		x, y := d.Neighbor(p, 0), d.Neighbor(p, 1)
		d.RemoveNeighbor(p, x)
		d.RemoveNeighbor(p, y)
		d.MustAddNeighbor(x, y)

		d.RemoveNeighbor(q, b)
		d.MustAddNeighbor(p, q)
		d.MustAddNeighbor(p, b)
		d.MustAddNeighbor(p, a)

		c.RecalculateScore()

		o.a, o.b, o.p, o.x, o.y, o.q = a, b, p, x, y, q
		o.performed = true
		return
	}
}

func (o *Move) Undo(c *Context) {
	mustPerformed(o.performed, "Move")
	d := c.Decomposition
	d.RemoveNeighbor(o.p, o.a)
	d.RemoveNeighbor(o.p, o.b)
	d.RemoveNeighbor(o.p, o.q)
	d.MustAddNeighbor(o.q, o.b)
	d.RemoveNeighbor(o.x, o.y)
	d.MustAddNeighbor(o.p, o.y)
	d.MustAddNeighbor(o.p, o.x)
	d.MustAddNeighbor(o.p, o.a)
}
