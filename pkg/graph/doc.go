// Package graph holds the read-only graph views consumed by the cut
// functions, together with a DIMACS reader.
//
// Three containers are provided, one per adjacency view:
//
//   - [Matrix]: dense boolean adjacency rows, used by rank-width
//   - [Lists]: sorted adjacency lists, used by the sparse rank and
//     matching-width functions
//   - [Directed]: dense GF(4) adjacency rows, used by F4-rank-width
//
// In a [Directed] graph an arc u→v stores α at (u,v) and α² at (v,u); a
// pair of opposite arcs stores 1 in both positions.
//
// # Reading DIMACS
//
//	g, err := graph.ReadUndirectedFile("grid.dgf")
//	d, err := graph.ReadDirectedFile("digraph.dgf")
//
// Files start with a "p <kind> <vertices> <edges>" line. Lines starting
// with c, x or n are ignored. Edges are written "e a b" (arcs "a a b") or
// simply "a b". Vertex labels are arbitrary tokens and receive ids in order
// of first appearance; vertices that never occur are labeled "unk_<id>".
package graph
