package value

import (
	"strconv"
	"strings"
)

// Shape is an ordered sequence of non-negative dimension sizes, outermost
// first. A nil or empty Shape is a scalar.
type Shape []int

// ScalarShape returns the shape of a rank-0 array.
func ScalarShape() Shape { return nil }

// VectorShape returns the shape of a rank-1 array of n elements.
func VectorShape(n int) Shape { return Shape{n} }

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// Elements returns the total element count, the product of all dimensions.
func (s Shape) Elements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// RowCount returns the size of the leading dimension, or 1 for a scalar.
func (s Shape) RowCount() int {
	if len(s) == 0 {
		return 1
	}
	return s[0]
}

// RowLen returns the element count of one row, the product of all dimensions
// after the first. A scalar's row is itself.
func (s Shape) RowLen() int {
	if len(s) == 0 {
		return 1
	}
	n := 1
	for _, d := range s[1:] {
		n *= d
	}
	return n
}

// RowShape returns the shape of one row.
func (s Shape) RowShape() Shape {
	if len(s) == 0 {
		return nil
	}
	return s[1:].Clone()
}

// Eq reports whether two shapes have identical dimensions.
func (s Shape) Eq(t Shape) bool {
	if len(s) != len(t) {
		return false
	}
	for i, d := range s {
		if d != t[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p matches the leading dimensions of s.
func (s Shape) HasPrefix(p Shape) bool {
	if len(p) > len(s) {
		return false
	}
	for i, d := range p {
		if d != s[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// WithRows returns the shape with its leading dimension replaced by n,
// adding one for a scalar.
func (s Shape) WithRows(n int) Shape {
	if len(s) == 0 {
		return Shape{n}
	}
	c := s.Clone()
	c[0] = n
	return c
}

// String renders the shape as "[2 3]"; a scalar renders as "[]".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(d))
	}
	b.WriteByte(']')
	return b.String()
}
