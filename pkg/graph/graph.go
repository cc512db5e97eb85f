package graph

import "strconv"

// Graph is the part of a graph every cut function needs.
type Graph interface {
	// VertexCount returns the number of vertices.
	VertexCount() int
	// Label returns the display label of vertex v.
	Label(v int) string
	// HasEdges reports whether at least one edge or arc exists.
	HasEdges() bool
}

type labels []string

func newLabels(n int) labels {
	l := make(labels, n)
	for i := range l {
		l[i] = strconv.Itoa(i)
	}
	return l
}

func (l labels) Label(v int) string { return l[v] }

// Labels returns all vertex labels indexed by vertex id.
func (l labels) Labels() []string { return l }

// SetLabel assigns the display label of vertex v.
func (l labels) SetLabel(v int, s string) { l[v] = s }
