package gf4

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

var testLengths = []int{1, 2, 31, 32, 33, 64, 65, 96, 97, 128, 129, 160, 200, 8200}

var kernels = []kernel{scalarKernel{}, wideKernel{}}

func randomElements(rng *rand.Rand, n int) []Element {
	out := make([]Element, n)
	for i := range out {
		out[i] = Element(rng.IntN(4))
	}
	return out
}

func withKernel(t *testing.T, k kernel, fn func(t *testing.T)) {
	t.Helper()
	prev := active
	active = k
	defer func() { active = prev }()
	t.Run(k.name(), fn)
}

func TestArrayAdd(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, k := range kernels {
		withKernel(t, k, func(t *testing.T) {
			for _, n := range testLengths {
				x, y := randomElements(rng, n), randomElements(rng, n)
				a, b := FromElements(x), FromElements(y)
				a.Add(b)
				for i := 0; i < n; i++ {
					require.Equal(t, x[i]^y[i], a.Get(i), "n=%d i=%d", n, i)
				}
			}
		})
	}
}

func TestArrayMultiply(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, k := range kernels {
		withKernel(t, k, func(t *testing.T) {
			for _, n := range testLengths {
				x := randomElements(rng, n)
				for _, c := range all {
					a := FromElements(x)
					a.Multiply(c)
					for i := 0; i < n; i++ {
						require.Equal(t, mulTable[x[i]][c], a.Get(i), "n=%d c=%v i=%d", n, c, i)
					}
				}
			}
		})
	}
}

func TestArrayMultiplyAdd(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for _, k := range kernels {
		withKernel(t, k, func(t *testing.T) {
			for _, n := range testLengths {
				x, y := randomElements(rng, n), randomElements(rng, n)
				for _, c := range all {
					a, b := FromElements(x), FromElements(y)
					a.MultiplyAdd(b, c)

					ref := FromElements(y)
					ref.Multiply(c)
					ref.Add(FromElements(x))
					require.True(t, a.Equal(ref), "n=%d c=%v", n, c)

					for i := 0; i < n; i++ {
						require.Equal(t, x[i]^mulTable[y[i]][c], a.Get(i), "n=%d c=%v i=%d", n, c, i)
					}
				}
			}
		})
	}
}

func TestKernelsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for _, n := range []int{1, 3, 5, 7, 11, 1000} {
		src := make([]uint64, n)
		dst := make([]uint64, n)
		for i := range src {
			src[i], dst[i] = rng.Uint64(), rng.Uint64()
		}
		for _, c := range all {
			a := append([]uint64(nil), dst...)
			b := append([]uint64(nil), dst...)
			scalarKernel{}.multiplyAdd(a, src, c)
			wideKernel{}.multiplyAdd(b, src, c)
			require.Equal(t, a, b, "multiplyAdd words=%d c=%v", n, c)

			scalarKernel{}.multiply(a, c)
			wideKernel{}.multiply(b, c)
			require.Equal(t, a, b, "multiply words=%d c=%v", n, c)
		}
	}
}

func TestArraySetGet(t *testing.T) {
	a := NewArray(70)
	a.Set(0, AlphaSq)
	a.Set(31, Alpha)
	a.Set(32, One)
	a.Set(69, AlphaSq)
	a.Set(0, One)

	require.Equal(t, One, a.Get(0))
	require.Equal(t, Alpha, a.Get(31))
	require.Equal(t, One, a.Get(32))
	require.Equal(t, AlphaSq, a.Get(69))
	require.Equal(t, Zero, a.Get(33))
	require.False(t, a.IsZero())

	c := a.Clone()
	a.Clear()
	require.True(t, a.IsZero())
	require.Equal(t, Alpha, c.Get(31))

	a.CopyFrom(c)
	require.True(t, a.Equal(c))
}

func TestArrayLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		NewArray(10).Add(NewArray(11))
	})
}

func TestArrayString(t *testing.T) {
	a := FromElements([]Element{One, Zero, Alpha, AlphaSq})
	require.Equal(t, "1 0 a a^2", a.String())
}
