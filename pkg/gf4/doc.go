// Package gf4 implements arithmetic over the four-element field GF(4).
//
// Elements are encoded in two bits: 0 and 1 are the additive and
// multiplicative identities, [Alpha] is a root of x²+x+1 and [AlphaSq] is
// its square. Addition is XOR of the encodings.
//
// # Packed Arrays
//
// [Array] stores 32 elements per uint64 word and supports in-place addition,
// scalar multiplication and fused multiply-add. Scalar multiplication splits
// each element into its low and high bit and uses
//
//	x·c = lo(x)·c ⊕ hi(x)·c2,  c2 = (c<<1) ⊕ (c≥2 ? 7 : 0)
//
// so a whole word is multiplied with two masked integer multiplies. Because
// every lane holds at most the value 3 no carries cross lane boundaries.
//
// # Kernels
//
// The word loops are provided by a kernel chosen once at init from the CPU
// features reported by golang.org/x/sys/cpu. The scalar kernel is the
// reference; the wide kernel processes four words per step and must agree
// with it bit for bit.
package gf4
