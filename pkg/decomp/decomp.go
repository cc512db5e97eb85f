package decomp

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/rankwidth/pkg/bitset"
)

var (
	// ErrDegree is returned by [Decomposition.Validate] when a node has more
	// neighbors than allowed or an internal node is not ternary.
	ErrDegree = errors.New("node degree out of range")

	// ErrAsymmetric is returned by [Decomposition.Validate] when a neighbor
	// link is not mirrored on the other endpoint.
	ErrAsymmetric = errors.New("neighbor relation is not symmetric")

	// ErrNotTree is returned by [Decomposition.Validate] when the nodes do not
	// form a single tree.
	ErrNotTree = errors.New("decomposition is not a tree")

	// ErrVertexLabels is returned by [Decomposition.Validate] when the leaf
	// vertices are not a permutation of 0..n-1.
	ErrVertexLabels = errors.New("leaf vertices are not a permutation")
)

// NodeID addresses a node within its Decomposition.
type NodeID int32

// None marks an absent node.
const None NodeID = -1

type node struct {
	uid    int64
	vertex int
	nbrs   [3]NodeID
	deg    uint8

	// Euler interval of the subtree during one traversal.
	start, end int
}

// Decomposition is a branch decomposition over n leaves.
type Decomposition struct {
	nodes   []node
	leaves  int
	nextUID int64

	scratch *bitset.BitSet
	order   []int
	stack   []frame
}

type frame struct {
	id, parent NodeID
	done       bool
}

// New creates a decomposition with n unconnected leaves. Leaf node i
// initially represents vertex i.
func New(n int) *Decomposition {
	d := &Decomposition{
		nodes:   make([]node, n, 2*n),
		leaves:  n,
		scratch: bitset.New(n),
		order:   make([]int, n),
	}
	for i := range d.nodes {
		d.nodes[i] = node{uid: d.nextUID, vertex: i}
		d.nextUID++
	}
	return d
}

// NewInternal appends an unconnected internal node.
func (d *Decomposition) NewInternal() NodeID {
	d.nodes = append(d.nodes, node{uid: d.nextUID, vertex: -1})
	d.nextUID++
	return NodeID(len(d.nodes) - 1)
}

// LeafCount returns the number of leaves.
func (d *Decomposition) LeafCount() int { return d.leaves }

// InternalCount returns the number of internal nodes.
func (d *Decomposition) InternalCount() int { return len(d.nodes) - d.leaves }

// NodeCount returns the total number of nodes.
func (d *Decomposition) NodeCount() int { return len(d.nodes) }

// Leaf returns the id of the i-th leaf node.
func (d *Decomposition) Leaf(i int) NodeID { return NodeID(i) }

// Internal returns the id of the i-th internal node.
func (d *Decomposition) Internal(i int) NodeID { return NodeID(d.leaves + i) }

// IsLeaf reports whether id is a leaf node.
func (d *Decomposition) IsLeaf(id NodeID) bool { return int(id) < d.leaves }

// Vertex returns the graph vertex of a leaf, or -1 for internal nodes.
func (d *Decomposition) Vertex(id NodeID) int { return d.nodes[id].vertex }

// UID returns the creation-ordered unique id of a node.
func (d *Decomposition) UID(id NodeID) int64 { return d.nodes[id].uid }

// Degree returns the number of neighbors of id.
func (d *Decomposition) Degree(id NodeID) int { return int(d.nodes[id].deg) }

// Neighbor returns the i-th neighbor of id in insertion order.
func (d *Decomposition) Neighbor(id NodeID, i int) NodeID {
	n := &d.nodes[id]
	if i >= int(n.deg) {
		panic(fmt.Sprintf("decomp: neighbor %d of node %d out of range (degree %d)", i, id, n.deg))
	}
	return n.nbrs[i]
}

// Neighbors returns the neighbors of id. The slice aliases internal storage
// and is invalidated by the next edit of id.
func (d *Decomposition) Neighbors(id NodeID) []NodeID {
	n := &d.nodes[id]
	return n.nbrs[:n.deg]
}

// HasNeighbor reports whether a and b are adjacent.
func (d *Decomposition) HasNeighbor(a, b NodeID) bool {
	return slices.Contains(d.Neighbors(a), b)
}

// CanAddNeighbor reports whether id has room for another neighbor.
func (d *Decomposition) CanAddNeighbor(id NodeID) bool {
	deg := d.nodes[id].deg
	if d.IsLeaf(id) {
		return deg == 0
	}
	return deg < 3
}

// AddNeighbor connects a and b. It returns false, leaving the tree
// unchanged, when either endpoint is full or a == b.
func (d *Decomposition) AddNeighbor(a, b NodeID) bool {
	if a == b || !d.CanAddNeighbor(a) || !d.CanAddNeighbor(b) {
		return false
	}
	na, nb := &d.nodes[a], &d.nodes[b]
	na.nbrs[na.deg] = b
	na.deg++
	nb.nbrs[nb.deg] = a
	nb.deg++
	return true
}

// RemoveNeighbor disconnects a and b. The remaining neighbors keep their
// relative order. Removing a missing edge is a no-op.
func (d *Decomposition) RemoveNeighbor(a, b NodeID) {
	d.unlink(a, b)
	d.unlink(b, a)
}

func (d *Decomposition) unlink(a, b NodeID) {
	n := &d.nodes[a]
	for i := 0; i < int(n.deg); i++ {
		if n.nbrs[i] == b {
			copy(n.nbrs[i:], n.nbrs[i+1:n.deg])
			n.deg--
			n.nbrs[n.deg] = None
			return
		}
	}
}

// SwapVertices exchanges the graph vertices of two leaves.
func (d *Decomposition) SwapVertices(a, b NodeID) {
	d.nodes[a].vertex, d.nodes[b].vertex = d.nodes[b].vertex, d.nodes[a].vertex
}

// EdgeCount returns the number of tree edges.
func (d *Decomposition) EdgeCount() int {
	total := 0
	for i := range d.nodes {
		total += int(d.nodes[i].deg)
	}
	return total / 2
}

// Validate checks the structural invariants of a fully built
// decomposition: symmetric links, leaves of degree one and internal nodes
// of degree three (degree one for both leaves when n == 2), connectivity
// without cycles, and leaf vertices forming a permutation.
func (d *Decomposition) Validate() error {
	seen := make([]bool, d.leaves)
	for i := 0; i < d.leaves; i++ {
		v := d.nodes[i].vertex
		if v < 0 || v >= d.leaves || seen[v] {
			return fmt.Errorf("%w: leaf %d has vertex %d", ErrVertexLabels, i, v)
		}
		seen[v] = true
	}

	for i := range d.nodes {
		id := NodeID(i)
		for _, nb := range d.Neighbors(id) {
			if !slices.Contains(d.Neighbors(nb), id) {
				return fmt.Errorf("%w: %d -> %d", ErrAsymmetric, id, nb)
			}
		}
		if d.leaves < 2 {
			continue
		}
		want := 3
		if d.IsLeaf(id) {
			want = 1
		}
		if d.Degree(id) != want {
			return fmt.Errorf("%w: node %d has degree %d, want %d", ErrDegree, id, d.Degree(id), want)
		}
	}

	if len(d.nodes) == 0 {
		return nil
	}
	if d.EdgeCount() != len(d.nodes)-1 {
		return fmt.Errorf("%w: %d nodes, %d edges", ErrNotTree, len(d.nodes), d.EdgeCount())
	}
	visited := make([]bool, len(d.nodes))
	queue := []NodeID{0}
	visited[0] = true
	reached := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range d.Neighbors(cur) {
			if !visited[nb] {
				visited[nb] = true
				reached++
				queue = append(queue, nb)
			}
		}
	}
	if reached != len(d.nodes) {
		return fmt.Errorf("%w: only %d of %d nodes connected", ErrNotTree, reached, len(d.nodes))
	}
	return nil
}
