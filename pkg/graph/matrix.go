package graph

import (
	"slices"

	"github.com/matzehuels/rankwidth/pkg/bitset"
	"github.com/matzehuels/rankwidth/pkg/gf4"
)

// Matrix is an undirected graph stored as dense adjacency rows.
type Matrix struct {
	labels
	rows []*bitset.BitSet
}

// NewMatrix returns an edgeless graph on n vertices labeled 0..n-1.
func NewMatrix(n int) *Matrix {
	m := &Matrix{labels: newLabels(n), rows: make([]*bitset.BitSet, n)}
	for i := range m.rows {
		m.rows[i] = bitset.New(n)
	}
	return m
}

// VertexCount returns the number of vertices.
func (m *Matrix) VertexCount() int { return len(m.rows) }

// AddEdge inserts the undirected edge {u, v}.
func (m *Matrix) AddEdge(u, v int) {
	m.rows[u].Set(v, true)
	m.rows[v].Set(u, true)
}

// HasEdge reports whether u and v are adjacent.
func (m *Matrix) HasEdge(u, v int) bool { return m.rows[u].Get(v) }

// Row returns the adjacency row of v. The caller must not modify it.
func (m *Matrix) Row(v int) *bitset.BitSet { return m.rows[v] }

// EdgeCount returns the number of undirected edges; self loops count once.
func (m *Matrix) EdgeCount() int {
	total, loops := 0, 0
	for v, r := range m.rows {
		total += r.Count()
		if r.Get(v) {
			loops++
		}
	}
	return (total-loops)/2 + loops
}

// HasEdges reports whether any edge exists.
func (m *Matrix) HasEdges() bool {
	for _, r := range m.rows {
		if r.NextSet(0) >= 0 {
			return true
		}
	}
	return false
}

// ToDirected returns the GF(4) view with a bidirectional arc per edge.
func (m *Matrix) ToDirected() *Directed {
	d := NewDirected(len(m.rows))
	copy(d.labels, m.labels)
	for u, r := range m.rows {
		for v := r.NextSet(0); v >= 0; v = r.NextSet(v + 1) {
			d.rows[u].Set(v, gf4.One)
		}
	}
	return d
}

// Lists is an undirected graph stored as sorted adjacency lists.
type Lists struct {
	labels
	adj [][]int32
}

// NewLists builds the adjacency-list view of m.
func NewLists(m *Matrix) *Lists {
	l := &Lists{labels: slices.Clone(m.labels), adj: make([][]int32, len(m.rows))}
	for u, r := range m.rows {
		nb := make([]int32, 0, r.Count())
		for v := r.NextSet(0); v >= 0; v = r.NextSet(v + 1) {
			nb = append(nb, int32(v))
		}
		l.adj[u] = nb
	}
	return l
}

// VertexCount returns the number of vertices.
func (l *Lists) VertexCount() int { return len(l.adj) }

// Neighbors returns the sorted neighbors of v. The caller must not modify it.
func (l *Lists) Neighbors(v int) []int32 { return l.adj[v] }

// HasEdges reports whether any edge exists.
func (l *Lists) HasEdges() bool {
	for _, nb := range l.adj {
		if len(nb) > 0 {
			return true
		}
	}
	return false
}

// Directed is a directed graph stored as dense GF(4) adjacency rows.
type Directed struct {
	labels
	rows []*gf4.Array
}

// NewDirected returns an arcless graph on n vertices labeled 0..n-1.
func NewDirected(n int) *Directed {
	d := &Directed{labels: newLabels(n), rows: make([]*gf4.Array, n)}
	for i := range d.rows {
		d.rows[i] = gf4.NewArray(n)
	}
	return d
}

// VertexCount returns the number of vertices.
func (d *Directed) VertexCount() int { return len(d.rows) }

// AddArc inserts the arc u→v. Adding the reverse of an existing arc turns
// both entries into One.
func (d *Directed) AddArc(u, v int) {
	switch d.rows[u].Get(v) {
	case gf4.Zero:
		d.rows[u].Set(v, gf4.Alpha)
	case gf4.AlphaSq:
		d.rows[u].Set(v, gf4.One)
	}
	switch d.rows[v].Get(u) {
	case gf4.Zero:
		d.rows[v].Set(u, gf4.AlphaSq)
	case gf4.Alpha:
		d.rows[v].Set(u, gf4.One)
	}
}

// Entry returns the matrix entry at (u, v).
func (d *Directed) Entry(u, v int) gf4.Element { return d.rows[u].Get(v) }

// Row returns the adjacency row of u. The caller must not modify it.
func (d *Directed) Row(u int) *gf4.Array { return d.rows[u] }

// HasEdges reports whether any arc exists.
func (d *Directed) HasEdges() bool {
	for _, r := range d.rows {
		if !r.IsZero() {
			return true
		}
	}
	return false
}

// ToUndirected replaces every arc by an undirected edge.
func (d *Directed) ToUndirected() *Matrix {
	m := NewMatrix(len(d.rows))
	copy(m.labels, d.labels)
	for u, r := range d.rows {
		for v := 0; v < r.Len(); v++ {
			if r.Get(v) != gf4.Zero {
				m.AddEdge(u, v)
			}
		}
	}
	return m
}
