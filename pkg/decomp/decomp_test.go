package decomp

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/rankwidth/pkg/bitset"
)

func built(n int, seed uint64) *Decomposition {
	d := New(n)
	d.BuildCaterpillars(rand.New(rand.NewPCG(seed, 99)))
	return d
}

func TestBuildCaterpillarsShape(t *testing.T) {
	for n := 1; n <= 40; n++ {
		d := built(n, uint64(n))
		if err := d.Validate(); err != nil {
			t.Fatalf("n=%d: Validate() = %v", n, err)
		}
		wantNodes, wantEdges := 2*n-2, 2*n-3
		if n == 1 {
			wantNodes, wantEdges = 1, 0
		}
		if d.NodeCount() != wantNodes {
			t.Errorf("n=%d: NodeCount() = %d, want %d", n, d.NodeCount(), wantNodes)
		}
		if d.EdgeCount() != wantEdges {
			t.Errorf("n=%d: EdgeCount() = %d, want %d", n, d.EdgeCount(), wantEdges)
		}
	}
}

func TestFindEdgePartitionsVisitsEveryEdgeOnce(t *testing.T) {
	for _, n := range []int{2, 3, 4, 7, 25, 64, 65, 130} {
		d := built(n, 7)
		seen := make(map[[2]NodeID]int)
		d.FindEdgePartitions(func(_ *bitset.BitSet, _ int, a, b NodeID) {
			if !d.HasNeighbor(a, b) {
				t.Errorf("n=%d: reported non-edge (%d, %d)", n, a, b)
			}
			if a > b {
				a, b = b, a
			}
			seen[[2]NodeID{a, b}]++
		}, -1)
		if len(seen) != 2*n-3 {
			t.Errorf("n=%d: %d distinct edges, want %d", n, len(seen), 2*n-3)
		}
		for e, c := range seen {
			if c != 1 {
				t.Errorf("n=%d: edge %v reported %d times", n, e, c)
			}
		}
	}
}

func TestFindEdgePartitionsMatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, n := range []int{3, 5, 25, 70, 129} {
		d := built(n, uint64(n))
		for i := 0; i < n; i++ {
			d.SwapVertices(d.Leaf(rng.IntN(n)), d.Leaf(rng.IntN(n)))
		}
		d.FindEdgePartitions(func(part *bitset.BitSet, count int, a, b NodeID) {
			want, wantCount := d.Partition(a, b)
			if !part.Equal(want) {
				t.Errorf("n=%d edge (%d, %d): got %s, want %s", n, a, b, part, want)
			}
			if count != wantCount || part.Count() != count {
				t.Errorf("n=%d edge (%d, %d): count %d, popcount %d, want %d", n, a, b, count, part.Count(), wantCount)
			}

			comp := part.Clone()
			comp.Not()
			comp.Not()
			if !comp.Equal(part) {
				t.Errorf("n=%d: complement round trip changed the set", n)
			}
		}, -1)
	}
}

func TestFindEdgePartitionsReachability(t *testing.T) {
	d := built(25, 3)
	d.FindEdgePartitions(func(part *bitset.BitSet, _ int, a, b NodeID) {
		side := bitset.New(25)
		for i := 0; i < 25; i++ {
			if d.IsReachable(a, d.Leaf(i), b) {
				side.Set(d.Vertex(d.Leaf(i)), true)
			}
		}
		inv := side.Clone()
		inv.Not()
		if !part.Equal(side) && !part.Equal(inv) {
			t.Errorf("edge (%d, %d): partition %s matches neither side %s", a, b, part, side)
		}
	}, -1)
}

func TestFindEdgePartitionsThreshold(t *testing.T) {
	n := 30
	d := built(n, 5)
	for _, threshold := range []int{-1, 1, 3, 10, 15} {
		d.FindEdgePartitions(func(part *bitset.BitSet, count int, _, _ NodeID) {
			small := min(count, n-count) <= threshold
			if small != (part == nil) {
				t.Errorf("threshold %d, count %d: nil part = %v", threshold, count, part == nil)
			}
		}, threshold)
	}
}

func TestNeighborLimits(t *testing.T) {
	d := New(4)
	c := d.NewInternal()
	for i := 0; i < 3; i++ {
		if !d.AddNeighbor(c, d.Leaf(i)) {
			t.Fatalf("AddNeighbor(c, leaf %d) refused", i)
		}
	}
	if d.AddNeighbor(c, d.Leaf(3)) {
		t.Error("internal node accepted a fourth neighbor")
	}
	if d.AddNeighbor(d.Leaf(0), d.Leaf(3)) {
		t.Error("connected leaf accepted a second neighbor")
	}
	if d.AddNeighbor(d.Leaf(3), d.Leaf(3)) {
		t.Error("self loop accepted")
	}
	if d.Degree(d.Leaf(3)) != 0 {
		t.Error("refused edit changed the tree")
	}
	if err := d.Validate(); !errors.Is(err, ErrDegree) {
		t.Errorf("Validate() = %v, want ErrDegree", err)
	}
}

func TestRemoveNeighborKeepsOrder(t *testing.T) {
	d := New(3)
	c := d.NewInternal()
	d.MustAddNeighbor(c, 0)
	d.MustAddNeighbor(c, 1)
	d.MustAddNeighbor(c, 2)
	d.RemoveNeighbor(1, c)

	if got := d.Neighbors(c); !reflect.DeepEqual(got, []NodeID{0, 2}) {
		t.Errorf("Neighbors = %v, want [0 2]", got)
	}
	if d.Degree(1) != 0 || d.HasNeighbor(1, c) {
		t.Error("removal was not symmetric")
	}
	d.RemoveNeighbor(1, c)
	if d.Degree(c) != 2 {
		t.Error("removing a missing edge changed the tree")
	}
}

func TestMustAddNeighborPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustAddNeighbor on a full leaf did not panic")
		}
	}()
	d := New(3)
	d.MustAddNeighbor(0, 1)
	d.MustAddNeighbor(0, 2)
}

// pathTree builds leaf0 - x - y - z - leaf3 with leaf1 on x, leaf2 on y and
// leaf4 on z.
func pathTree() (d *Decomposition, x, y, z NodeID) {
	d = New(5)
	x, y, z = d.NewInternal(), d.NewInternal(), d.NewInternal()
	d.MustAddNeighbor(0, x)
	d.MustAddNeighbor(x, 1)
	d.MustAddNeighbor(x, y)
	d.MustAddNeighbor(y, 2)
	d.MustAddNeighbor(y, z)
	d.MustAddNeighbor(z, 3)
	d.MustAddNeighbor(z, 4)
	return d, x, y, z
}

func TestFindPathDirection(t *testing.T) {
	d, x, y, z := pathTree()
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	tests := []struct {
		name         string
		src, dst     NodeID
		wantS, wantD NodeID
	}{
		{"leaf to leaf", 0, 3, x, z},
		{"internal to leaf", y, 4, z, z},
		{"adjacent", x, y, y, x},
		{"same node", y, y, None, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, dn := d.FindPathDirection(tt.src, tt.dst)
			if s != tt.wantS || dn != tt.wantD {
				t.Errorf("FindPathDirection(%d, %d) = (%d, %d), want (%d, %d)", tt.src, tt.dst, s, dn, tt.wantS, tt.wantD)
			}
		})
	}
}

func TestIsReachable(t *testing.T) {
	d, x, y, _ := pathTree()
	if !d.IsReachable(0, 3, None) {
		t.Error("leaf 3 should be reachable from leaf 0")
	}
	if d.IsReachable(y, 0, x) {
		t.Error("leaf 0 reachable from y while ignoring x")
	}
	if !d.IsReachable(y, 4, x) {
		t.Error("leaf 4 should be reachable from y while ignoring x")
	}
	if !d.IsReachable(y, y, x) {
		t.Error("a node is always reachable from itself")
	}
}

func TestPartition(t *testing.T) {
	d, x, y, _ := pathTree()
	part, count := d.Partition(x, y)
	if count != 3 || !reflect.DeepEqual(part.Indices(), []int{2, 3, 4}) {
		t.Errorf("Partition(x, y) = %v (%d)", part.Indices(), count)
	}
	part, count = d.Partition(y, x)
	if count != 2 || !reflect.DeepEqual(part.Indices(), []int{0, 1}) {
		t.Errorf("Partition(y, x) = %v (%d)", part.Indices(), count)
	}
}

func TestToDOT(t *testing.T) {
	d, _, _, _ := pathTree()
	labels := []string{"a", "b", "c", "d", "e"}
	dot := d.ToDOT(func(v int) string { return labels[v] }, func(_ *bitset.BitSet, count int) int {
		return min(count, 5-count)
	})

	if !strings.HasPrefix(dot, "graph decomposition {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected framing:\n%s", dot)
	}
	if got := strings.Count(dot, " -- "); got != 7 {
		t.Errorf("DOT has %d edges, want 7", got)
	}
	if !strings.Contains(dot, `"leaf_a" -- "node_5" [label=1];`) {
		t.Errorf("missing root edge:\n%s", dot)
	}
	if !strings.Contains(dot, `"node_5" -- "node_6" [label=2];`) {
		t.Errorf("missing internal edge:\n%s", dot)
	}
}
