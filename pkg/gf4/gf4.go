package gf4

import "fmt"

// Element is a GF(4) value in its two-bit encoding.
type Element uint8

const (
	Zero    Element = 0
	One     Element = 1
	Alpha   Element = 2
	AlphaSq Element = 3
)

var inverse = [4]Element{0, One, AlphaSq, Alpha}

// String returns "0", "1", "a" or "a^2".
func (e Element) String() string {
	switch e {
	case Zero:
		return "0"
	case One:
		return "1"
	case Alpha:
		return "a"
	case AlphaSq:
		return "a^2"
	}
	return fmt.Sprintf("gf4(%d)", uint8(e))
}

// Add returns x + y. Addition and subtraction coincide in characteristic 2.
func Add(x, y Element) Element {
	return x ^ y
}

// Multiply returns x·y.
func Multiply(x, y Element) Element {
	y2 := second(y)
	return ((x & 1) * y) ^ (((x >> 1) & 1) * y2)
}

// Inverse returns the multiplicative inverse of x. It panics for Zero.
func Inverse(x Element) Element {
	if x == Zero || x > AlphaSq {
		panic(fmt.Sprintf("gf4: no inverse for %v", x))
	}
	return inverse[x]
}

// Divide returns num / den. It panics when den is Zero.
func Divide(num, den Element) Element {
	if den == Zero {
		panic("gf4: division by zero")
	}
	return Multiply(num, inverse[den])
}

// second returns α·c, the factor applied to the high bit of an element.
func second(c Element) Element {
	c2 := c << 1
	if c >= 2 {
		c2 ^= 7
	}
	return c2
}
