package gf4

import "fmt"

const (
	perWord = 32
	lowBits = 0x5555555555555555
)

// Array is a fixed-length packed vector of GF(4) elements.
type Array struct {
	n     int
	words []uint64
}

// NewArray returns a zeroed array of n elements.
func NewArray(n int) *Array {
	return &Array{n: n, words: make([]uint64, (n+perWord-1)/perWord)}
}

// FromElements packs the given elements into a new array.
func FromElements(elems []Element) *Array {
	a := NewArray(len(elems))
	for i, e := range elems {
		a.Set(i, e)
	}
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int { return a.n }

// Get returns the element at i.
func (a *Array) Get(i int) Element {
	return Element(a.words[i/perWord]>>(uint(i%perWord)*2)) & 3
}

// Set stores e at index i.
func (a *Array) Set(i int, e Element) {
	shift := uint(i%perWord) * 2
	w := &a.words[i/perWord]
	*w = (*w &^ (3 << shift)) | uint64(e&3)<<shift
}

// Clone returns an independent copy.
func (a *Array) Clone() *Array {
	c := &Array{n: a.n, words: make([]uint64, len(a.words))}
	copy(c.words, a.words)
	return c
}

// CopyFrom overwrites a with the contents of b.
func (a *Array) CopyFrom(b *Array) {
	a.mustMatch(b)
	copy(a.words, b.words)
}

// Clear sets every element to Zero.
func (a *Array) Clear() {
	clear(a.words)
}

// IsZero reports whether every element is Zero.
func (a *Array) IsZero() bool {
	for _, w := range a.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether a and b hold the same elements.
func (a *Array) Equal(b *Array) bool {
	if a.n != b.n {
		return false
	}
	for i, w := range a.words {
		if w != b.words[i] {
			return false
		}
	}
	return true
}

// Add sets a to a + b.
func (a *Array) Add(b *Array) {
	a.mustMatch(b)
	active.add(a.words, b.words)
}

// Multiply sets a to c·a.
func (a *Array) Multiply(c Element) {
	active.multiply(a.words, c)
}

// MultiplyAdd sets a to a + c·b without materializing c·b.
func (a *Array) MultiplyAdd(b *Array, c Element) {
	a.mustMatch(b)
	active.multiplyAdd(a.words, b.words, c)
}

// String renders the elements separated by spaces.
func (a *Array) String() string {
	buf := make([]byte, 0, a.n*2)
	for i := 0; i < a.n; i++ {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, a.Get(i).String()...)
	}
	return string(buf)
}

func (a *Array) mustMatch(b *Array) {
	if a.n != b.n {
		panic(fmt.Sprintf("gf4: length mismatch %d != %d", a.n, b.n))
	}
}

// mulWord multiplies all 32 lanes of w by c.
func mulWord(w uint64, c, c2 uint64) uint64 {
	return (w&lowBits)*c ^ ((w>>1)&lowBits)*c2
}
