package gf4

import "golang.org/x/sys/cpu"

// kernel implements the word loops behind Array.
type kernel interface {
	name() string
	add(dst, src []uint64)
	multiply(dst []uint64, c Element)
	multiplyAdd(dst, src []uint64, c Element)
}

var active = selectKernel()

func selectKernel() kernel {
	if cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
		return wideKernel{}
	}
	return scalarKernel{}
}

// KernelName reports which kernel was selected for this process.
func KernelName() string { return active.name() }

type scalarKernel struct{}

func (scalarKernel) name() string { return "scalar" }

func (scalarKernel) add(dst, src []uint64) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func (scalarKernel) multiply(dst []uint64, c Element) {
	c1, c2 := uint64(c), uint64(second(c))
	for i, w := range dst {
		dst[i] = mulWord(w, c1, c2)
	}
}

func (scalarKernel) multiplyAdd(dst, src []uint64, c Element) {
	if c == Zero {
		return
	}
	c1, c2 := uint64(c), uint64(second(c))
	for i, w := range src {
		dst[i] ^= mulWord(w, c1, c2)
	}
}

// wideKernel processes four words per step and finishes with an unrolled
// tail of at most three words.
type wideKernel struct{}

func (wideKernel) name() string { return "wide" }

func (wideKernel) add(dst, src []uint64) {
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

func (wideKernel) multiply(dst []uint64, c Element) {
	c1, c2 := uint64(c), uint64(second(c))
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = mulWord(dst[i], c1, c2)
		dst[i+1] = mulWord(dst[i+1], c1, c2)
		dst[i+2] = mulWord(dst[i+2], c1, c2)
		dst[i+3] = mulWord(dst[i+3], c1, c2)
	}
	for ; i < n; i++ {
		dst[i] = mulWord(dst[i], c1, c2)
	}
}

func (wideKernel) multiplyAdd(dst, src []uint64, c Element) {
	if c == Zero {
		return
	}
	c1, c2 := uint64(c), uint64(second(c))
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] ^= mulWord(src[i], c1, c2)
		dst[i+1] ^= mulWord(src[i+1], c1, c2)
		dst[i+2] ^= mulWord(src[i+2], c1, c2)
		dst[i+3] ^= mulWord(src[i+3], c1, c2)
	}
	switch n - i {
	case 3:
		dst[i+2] ^= mulWord(src[i+2], c1, c2)
		fallthrough
	case 2:
		dst[i+1] ^= mulWord(src[i+1], c1, c2)
		fallthrough
	case 1:
		dst[i] ^= mulWord(src[i], c1, c2)
	}
}
