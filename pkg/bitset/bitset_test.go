package bitset

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestSetGetCount(t *testing.T) {
	s := New(130)
	for _, i := range []int{0, 63, 64, 129} {
		s.Set(i, true)
	}
	if got := s.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if !s.Get(64) || s.Get(65) {
		t.Errorf("Get returned wrong values")
	}
	s.Set(63, false)
	if s.Get(63) {
		t.Errorf("Set(63, false) did not clear the bit")
	}
	s.Flip(1)
	if !s.Get(1) {
		t.Errorf("Flip(1) did not set the bit")
	}
	if got, want := s.Indices(), []int{0, 1, 64, 129}; !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
}

func TestFromBools(t *testing.T) {
	s := FromBools([]bool{true, false, true})
	if s.Len() != 3 || s.String() != "101" {
		t.Errorf("FromBools = %q (len %d), want 101", s.String(), s.Len())
	}
}

func TestNotMasksTail(t *testing.T) {
	for _, n := range []int{1, 5, 63, 64, 65, 200} {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		full := FromIndices(n, all...)

		s := New(n)
		s.Not()
		if s.Count() != n {
			t.Errorf("n=%d: Count after Not = %d", n, s.Count())
		}
		if !reflect.DeepEqual(s.Words(), full.Words()) || s.Key() != full.Key() {
			t.Errorf("n=%d: Not left bits set beyond Len: %x", n, s.Words())
		}
		s.Not()
		if s.Count() != 0 {
			t.Errorf("n=%d: double Not not empty", n)
		}
		s.SetAll()
		if s.Count() != n {
			t.Errorf("n=%d: Count after SetAll = %d", n, s.Count())
		}
		if !reflect.DeepEqual(s.Words(), full.Words()) || s.Key() != full.Key() {
			t.Errorf("n=%d: SetAll left bits set beyond Len: %x", n, s.Words())
		}
	}
}

func TestXorMatchesBitwise(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for _, n := range []int{1, 64, 65, 128, 192, 256, 300, 1000} {
		a, b := New(n), New(n)
		for i := 0; i < n; i++ {
			a.Set(i, rng.IntN(2) == 1)
			b.Set(i, rng.IntN(2) == 1)
		}
		want := make([]bool, n)
		for i := range want {
			want[i] = a.Get(i) != b.Get(i)
		}
		a.Xor(b)
		if !a.Equal(FromBools(want)) {
			t.Errorf("n=%d: Xor mismatch", n)
		}
	}
}

func TestXorFrom(t *testing.T) {
	a := FromIndices(200, 3, 130)
	b := FromIndices(200, 129, 130, 199)
	a.XorFrom(b, 128)
	if got, want := a.Indices(), []int{3, 129, 199}; !reflect.DeepEqual(got, want) {
		t.Errorf("XorFrom = %v, want %v", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := FromIndices(10, 1, 2)
	c := a.Clone()
	c.Set(5, true)
	if a.Get(5) {
		t.Error("Clone shares storage with the original")
	}
	if a.Equal(c) {
		t.Error("Equal reported true for different sets")
	}
	a.CopyFrom(c)
	if !a.Equal(c) {
		t.Error("CopyFrom did not copy")
	}
}

func TestKey(t *testing.T) {
	a := FromIndices(100, 1, 70)
	b := FromIndices(100, 1, 70)
	c := FromIndices(100, 1, 71)
	if a.Key() != b.Key() {
		t.Error("equal sets have different keys")
	}
	if a.Key() == c.Key() {
		t.Error("different sets share a key")
	}
}

func TestNextSet(t *testing.T) {
	s := FromIndices(130, 5, 100)
	var got []int
	for i := s.NextSet(0); i >= 0; i = s.NextSet(i + 1) {
		got = append(got, i)
	}
	if !reflect.DeepEqual(got, []int{5, 100}) {
		t.Errorf("NextSet iteration = %v", got)
	}
	if s.NextSet(130) != -1 {
		t.Error("NextSet past the end should return -1")
	}
}

func TestComplementRoundTrip(t *testing.T) {
	s := FromIndices(77, 0, 13, 76)
	c := s.Clone()
	c.Not()
	c.Not()
	if !s.Equal(c) {
		t.Error("complement of complement differs")
	}
}
