// Package bitset provides the fixed-length bit vector used for vertex
// partitions and adjacency rows.
//
// Storage and single-bit access come from github.com/soniakeys/bits. The
// word loops for XOR are written out here because partitions are XORed
// into scratch rows on every elimination step and their tails are usually
// only a few words long.
package bitset

import (
	"encoding/binary"
	"strings"

	"github.com/soniakeys/bits"
)

// BitSet is a word-packed vector of a fixed number of bits.
//
// Operations mutate the receiver in place; use Clone to obtain an
// independent copy.
type BitSet struct {
	b bits.Bits
}

// New returns a cleared bit set of n bits.
func New(n int) *BitSet {
	return &BitSet{b: bits.New(n)}
}

// FromBools returns a bit set with bit i set when v[i] is true.
func FromBools(v []bool) *BitSet {
	s := New(len(v))
	for i, on := range v {
		if on {
			s.b.SetBit(i, 1)
		}
	}
	return s
}

// FromIndices returns a bit set of n bits with the given bits set.
func FromIndices(n int, idx ...int) *BitSet {
	s := New(n)
	for _, i := range idx {
		s.b.SetBit(i, 1)
	}
	return s
}

// Len returns the number of bits.
func (s *BitSet) Len() int { return s.b.Num }

// Words exposes the backing words. Bits beyond Len are always zero.
func (s *BitSet) Words() []uint64 { return s.b.Bits }

// Get reports whether bit i is set.
func (s *BitSet) Get(i int) bool { return s.b.Bit(i) == 1 }

// Set sets bit i to v.
func (s *BitSet) Set(i int, v bool) {
	if v {
		s.b.SetBit(i, 1)
	} else {
		s.b.SetBit(i, 0)
	}
}

// Flip inverts bit i.
func (s *BitSet) Flip(i int) {
	s.b.Bits[i>>6] ^= 1 << uint(i&63)
}

// Count returns the number of set bits.
func (s *BitSet) Count() int { return s.b.OnesCount() }

// NextSet returns the index of the first set bit at or after i, or -1.
func (s *BitSet) NextSet(i int) int {
	if i >= s.b.Num {
		return -1
	}
	return s.b.OneFrom(i)
}

// Xor sets s to s XOR o.
func (s *BitSet) Xor(o *BitSet) {
	xorWords(s.b.Bits, o.b.Bits)
}

// XorFrom sets s to s XOR o, skipping the words that lie entirely below
// bit. Callers use it when both operands are known to be zero there.
func (s *BitSet) XorFrom(o *BitSet, bit int) {
	w := bit >> 6
	xorWords(s.b.Bits[w:], o.b.Bits[w:])
}

// Not inverts every bit.
func (s *BitSet) Not() {
	s.b.Not(s.b)
	s.clearTail()
}

// SetAll sets every bit.
func (s *BitSet) SetAll() {
	s.b.SetAll()
	s.clearTail()
}

// clearTail zeroes the bits of the last word beyond Len.
func (s *BitSet) clearTail() {
	if r := s.b.Num & 63; r != 0 {
		w := s.b.Bits
		w[len(w)-1] &= 1<<uint(r) - 1
	}
}

// ClearAll clears every bit.
func (s *BitSet) ClearAll() {
	s.b.ClearAll()
}

// CopyFrom overwrites s with o. Both must have the same length.
func (s *BitSet) CopyFrom(o *BitSet) {
	copy(s.b.Bits, o.b.Bits)
}

// Equal reports whether s and o have the same length and bits.
func (s *BitSet) Equal(o *BitSet) bool {
	if s.b.Num != o.b.Num {
		return false
	}
	return s.b.Equal(o.b)
}

// Clone returns an independent copy of s.
func (s *BitSet) Clone() *BitSet {
	c := New(s.b.Num)
	copy(c.b.Bits, s.b.Bits)
	return c
}

// Indices returns the set bits in increasing order.
func (s *BitSet) Indices() []int {
	return s.b.Slice()
}

// Key returns a compact string usable as a map key. Equal bit sets of
// equal length yield equal keys.
func (s *BitSet) Key() string {
	buf := make([]byte, 8*len(s.b.Bits))
	for i, w := range s.b.Bits {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}
	return string(buf)
}

// String renders the set as a string of 0s and 1s, lowest index first.
func (s *BitSet) String() string {
	var sb strings.Builder
	sb.Grow(s.b.Num)
	for i := 0; i < s.b.Num; i++ {
		if s.b.Bit(i) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func xorWords(dst, src []uint64) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] ^= src[i]
		dst[i+1] ^= src[i+1]
		dst[i+2] ^= src[i+2]
		dst[i+3] ^= src[i+3]
	}
	switch n - i {
	case 3:
		dst[i+2] ^= src[i+2]
		fallthrough
	case 2:
		dst[i+1] ^= src[i+1]
		fallthrough
	case 1:
		dst[i] ^= src[i]
	}
}
