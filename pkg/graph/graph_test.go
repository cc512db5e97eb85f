package graph

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/rankwidth/pkg/errors"
	"github.com/matzehuels/rankwidth/pkg/gf4"
)

func TestReadGridFile(t *testing.T) {
	g, err := ReadUndirectedFile("testdata/grid5x5.dgf")
	if err != nil {
		t.Fatalf("ReadUndirectedFile: %v", err)
	}
	if g.VertexCount() != 25 {
		t.Fatalf("VertexCount() = %d, want 25", g.VertexCount())
	}
	if g.EdgeCount() != 40 {
		t.Errorf("EdgeCount() = %d, want 40", g.EdgeCount())
	}

	id := make(map[string]int)
	for v, l := range g.Labels() {
		id[l] = v
	}
	at := func(i int) int {
		v, ok := id[strconv.Itoa(i)]
		if !ok {
			t.Fatalf("label %d missing", i)
		}
		return v
	}
	for i := 0; i < 25; i++ {
		if i%5 != 0 && !g.HasEdge(at(i), at(i-1)) {
			t.Errorf("missing edge %d-%d", i, i-1)
		}
		if i%5 != 4 && !g.HasEdge(at(i), at(i+1)) {
			t.Errorf("missing edge %d-%d", i, i+1)
		}
		if i/5 != 0 && !g.HasEdge(at(i), at(i-5)) {
			t.Errorf("missing edge %d-%d", i, i-5)
		}
		if i/5 != 4 && !g.HasEdge(at(i), at(i+5)) {
			t.Errorf("missing edge %d-%d", i, i+5)
		}
	}
}

func TestParseUndirectedFormats(t *testing.T) {
	input := `c comment
p edge 4 2
x ignored
e foo bar
bar baz
`
	g, err := ParseUndirected(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseUndirected: %v", err)
	}
	want := []string{"foo", "bar", "baz", "unk_3"}
	if !reflect.DeepEqual(g.Labels(), want) {
		t.Errorf("Labels() = %v, want %v", g.Labels(), want)
	}
	if !g.HasEdge(0, 1) || !g.HasEdge(1, 0) || !g.HasEdge(1, 2) || g.HasEdge(0, 2) {
		t.Error("unexpected adjacency")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing header", "e 1 2\n"},
		{"empty", ""},
		{"bad count", "p edge x 1\n"},
		{"too few edges", "p edge 3 2\ne 1 2\n"},
		{"too many edges", "p edge 3 1\ne 1 2\ne 2 3\n"},
		{"too many vertices", "p edge 2 2\ne 1 2\ne 2 3\n"},
		{"wrong command", "p edge 3 1\na 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUndirected(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestParseDirectedEncoding(t *testing.T) {
	input := "p arc 3 3\na 1 2\n2 3\na 3 2\n"
	d, err := ParseDirected(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDirected: %v", err)
	}
	tests := []struct {
		u, v int
		want gf4.Element
	}{
		{0, 1, gf4.Alpha},
		{1, 0, gf4.AlphaSq},
		{1, 2, gf4.One},
		{2, 1, gf4.One},
		{0, 2, gf4.Zero},
	}
	for _, tt := range tests {
		if got := d.Entry(tt.u, tt.v); got != tt.want {
			t.Errorf("Entry(%d, %d) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}

	u := d.ToUndirected()
	if !u.HasEdge(0, 1) || !u.HasEdge(2, 1) || u.HasEdge(0, 2) {
		t.Error("ToUndirected produced wrong adjacency")
	}
	if u.Label(2) != "3" {
		t.Errorf("ToUndirected lost labels: %v", u.Labels())
	}
}

func TestMissingFile(t *testing.T) {
	_, err := ReadUndirectedFile("testdata/does-not-exist.dgf")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestListsAndDirectedViews(t *testing.T) {
	m := NewMatrix(4)
	m.AddEdge(2, 0)
	m.AddEdge(2, 3)
	m.AddEdge(1, 2)

	l := NewLists(m)
	if got := l.Neighbors(2); !reflect.DeepEqual(got, []int32{0, 1, 3}) {
		t.Errorf("Neighbors(2) = %v", got)
	}
	if !l.HasEdges() {
		t.Error("HasEdges() = false")
	}

	d := m.ToDirected()
	if d.Entry(0, 2) != gf4.One || d.Entry(2, 0) != gf4.One || d.Entry(0, 1) != gf4.Zero {
		t.Error("ToDirected produced wrong entries")
	}
	if NewMatrix(3).HasEdges() || NewDirected(3).HasEdges() {
		t.Error("empty graph reports edges")
	}
}
