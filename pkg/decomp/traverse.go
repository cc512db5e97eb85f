package decomp

import "github.com/matzehuels/rankwidth/pkg/bitset"

// EdgeFunc receives one tree edge (a, b) and the leaves on b's side. part
// is nil when the smaller side has at most threshold leaves; count is
// always the number of leaves on b's side.
type EdgeFunc func(part *bitset.BitSet, count int, a, b NodeID)

// FindEdgePartitions calls fn once for every tree edge. Edges whose
// smaller side holds at most threshold leaves are reported without a set;
// pass a negative threshold to receive every set.
//
// The walk is iterative and rooted at leaf node 0.
func (d *Decomposition) FindEdgePartitions(fn EdgeFunc, threshold int) {
	if d.leaves == 0 {
		return
	}
	var (
		n          = d.leaves
		cur        = 0
		order      = d.order
		part       = d.scratch
		arrayStart = -1
		arrayEnd   = -1
	)
	stack := append(d.stack[:0], frame{id: 0, parent: None})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &d.nodes[f.id]

		if !f.done {
			nd.start = cur
			if int(f.id) < n {
				order[cur] = nd.vertex
				cur++
			}
			stack = append(stack, frame{id: f.id, parent: f.parent, done: true})
			for _, nb := range nd.nbrs[:nd.deg] {
				if nb != f.parent {
					stack = append(stack, frame{id: nb, parent: f.id})
				}
			}
			continue
		}

		nd.end = cur - 1
		for _, nb := range nd.nbrs[:nd.deg] {
			if nb == f.parent {
				continue
			}
			child := &d.nodes[nb]
			count := child.end - child.start + 1
			if min(count, n-count) <= threshold {
				fn(nil, count, f.id, nb)
				continue
			}

			if child.start <= arrayStart && child.end >= arrayEnd {
				for i := child.start; i < arrayStart; i++ {
					part.Set(order[i], true)
				}
				for i := arrayEnd + 1; i <= child.end; i++ {
					part.Set(order[i], true)
				}
			} else {
				part.ClearAll()
				for i := child.start; i <= child.end; i++ {
					part.Set(order[i], true)
				}
			}
			arrayStart, arrayEnd = child.start, child.end

			fn(part, count, f.id, nb)
		}
	}
	d.stack = stack
}

// Partition returns the leaves on b's side of the edge (a, b) together
// with their count. It allocates a fresh set.
func (d *Decomposition) Partition(a, b NodeID) (*bitset.BitSet, int) {
	part := bitset.New(d.leaves)
	count := 0
	queue := []frame{{id: b, parent: a}}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if d.IsLeaf(f.id) {
			part.Set(d.nodes[f.id].vertex, true)
			count++
			continue
		}
		for _, nb := range d.Neighbors(f.id) {
			if nb != f.parent {
				queue = append(queue, frame{id: nb, parent: f.id})
			}
		}
	}
	return part, count
}

// IsReachable reports whether dst can be reached from src without leaving
// src through ignore. Pass None to search all directions.
func (d *Decomposition) IsReachable(src, dst, ignore NodeID) bool {
	if src == dst {
		return true
	}
	var queue []frame
	for _, nb := range d.Neighbors(src) {
		if nb != ignore {
			queue = append(queue, frame{id: nb, parent: src})
		}
	}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if f.id == dst {
			return true
		}
		for _, nb := range d.Neighbors(f.id) {
			if nb != f.parent {
				queue = append(queue, frame{id: nb, parent: f.id})
			}
		}
	}
	return false
}

// FindPathDirection returns the first node after src and the last node
// before dst on the path from src to dst. Both are None when src == dst or
// dst is unreachable; for adjacent nodes they are dst and src.
func (d *Decomposition) FindPathDirection(src, dst NodeID) (srcNeigh, dstNeigh NodeID) {
	if src == dst {
		return None, None
	}
	type step struct {
		id, parent, first NodeID
	}
	var queue []step
	for _, nb := range d.Neighbors(src) {
		queue = append(queue, step{id: nb, parent: src, first: nb})
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s.id == dst {
			return s.first, s.parent
		}
		for _, nb := range d.Neighbors(s.id) {
			if nb != s.parent {
				queue = append(queue, step{id: nb, parent: s.id, first: s.first})
			}
		}
	}
	return None, None
}
