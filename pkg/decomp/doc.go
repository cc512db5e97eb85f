// Package decomp implements branch decompositions: unrooted trees of
// maximum degree three whose leaves are the vertices of a graph.
//
// # Arena Layout
//
// Nodes live in a single slice and are addressed by [NodeID]. The first n
// ids are the leaves, created by [New]; internal nodes are appended by
// [Decomposition.NewInternal] and never removed. Every node carries a
// creation-ordered unique id used for naming in exported DOT output.
//
// A leaf stores the graph vertex it represents. [Decomposition.SwapVertices]
// exchanges the vertices of two leaves without touching the tree shape.
//
// # Edits
//
// [Decomposition.AddNeighbor] and [Decomposition.RemoveNeighbor] are the only
// structural edits. Both update the two endpoints together, so the neighbor
// relation is always symmetric. An edit that would give a leaf a second
// neighbor or an internal node a fourth one is refused.
//
// # Partitions
//
// Removing a tree edge splits the leaves in two. [Decomposition.FindEdgePartitions]
// reports the split for every edge in one iterative post-order walk rooted at
// leaf node 0. Leaves are numbered in visit order so each subtree covers a
// contiguous interval; when the next interval contains the previous one only
// the difference is written into the shared scratch set.
//
// The scratch set passed to the callback is reused between calls. Clone it
// to keep it.
//
//	d.FindEdgePartitions(func(part *bitset.BitSet, count int, a, b decomp.NodeID) {
//	    if part == nil {
//	        return // smaller side at most threshold
//	    }
//	    keep = append(keep, part.Clone())
//	}, threshold)
package decomp
