package value

import (
	"strings"

	"github.com/Jacob-Lockwood/uiua/errors"
)

// Array is an immutable shaped collection of elements in row-major order.
// Invariant: shape.Elements() == len(data). Arrays are value types: nothing
// in this package (or outside it) mutates shape or data after construction,
// so arrays may be freely shared, including across concurrent evaluations.
type Array struct {
	shape Shape
	data  []Elem
}

// New constructs an array from a shape and flat row-major elements.
// Fails with ShapeMismatch if the element count does not match the shape.
func New(shape Shape, data []Elem) (*Array, error) {
	if shape.Elements() != len(data) {
		return nil, errors.New(errors.PhaseExec, errors.KindShapeMismatch).
			Detail("shape %s wants %d element(s), have %d", shape, shape.Elements(), len(data)).
			Build()
	}
	return &Array{shape: shape.Clone(), data: data}, nil
}

// NewScalar constructs a rank-0 array holding one element.
func NewScalar(e Elem) *Array {
	return &Array{data: []Elem{e}}
}

// NewNum constructs a numeric scalar.
func NewNum(f float64) *Array { return NewScalar(Num(f)) }

// NewVector constructs a rank-1 array from elements.
func NewVector(data []Elem) *Array {
	return &Array{shape: Shape{len(data)}, data: data}
}

// FromNums constructs a numeric vector.
func FromNums(ns ...float64) *Array {
	data := make([]Elem, len(ns))
	for i, n := range ns {
		data[i] = Num(n)
	}
	return NewVector(data)
}

// FromString constructs a rank-1 character array from a string.
func FromString(s string) *Array {
	runes := []rune(s)
	data := make([]Elem, len(runes))
	for i, r := range runes {
		data[i] = Char(r)
	}
	return NewVector(data)
}

// Boxed wraps an array in a scalar box.
func Boxed(a *Array) *Array { return NewScalar(Box{Array: a}) }

// Range constructs the incrementing array of a given shape: 0 through
// shape.Elements()-1 laid out row-major.
func Range(shape Shape) *Array {
	n := shape.Elements()
	data := make([]Elem, n)
	for i := range data {
		data[i] = Num(i)
	}
	return &Array{shape: shape.Clone(), data: data}
}

// Shape returns the array's shape. Callers must not modify it.
func (a *Array) Shape() Shape { return a.shape }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return a.shape.Rank() }

// Elems returns the flat row-major elements. Callers must not modify them.
func (a *Array) Elems() []Elem { return a.data }

// Len returns the total element count.
func (a *Array) Len() int { return len(a.data) }

// RowCount returns the size of the leading dimension, 1 for a scalar.
func (a *Array) RowCount() int { return a.shape.RowCount() }

// Row returns row i as an array of rank one less. For a rank-0 or rank-1
// array the row is a scalar. Fails with a domain error when out of bounds.
func (a *Array) Row(i int) (*Array, error) {
	rows := a.RowCount()
	if i < 0 || i >= rows {
		return nil, errors.New(errors.PhaseExec, errors.KindDomain).
			Detail("index %d out of bounds for %d row(s)", i, rows).
			Build()
	}
	rl := a.shape.RowLen()
	return &Array{shape: a.shape.RowShape(), data: a.data[i*rl : (i+1)*rl]}, nil
}

// WithRow returns a copy of the array with row i replaced. The replacement
// must have the row shape; fails with ShapeMismatch otherwise.
func (a *Array) WithRow(i int, row *Array) (*Array, error) {
	if i < 0 || i >= a.RowCount() {
		return nil, errors.New(errors.PhaseExec, errors.KindDomain).
			Detail("index %d out of bounds for %d row(s)", i, a.RowCount()).
			Build()
	}
	if !row.shape.Eq(a.shape.RowShape()) {
		return nil, errors.ShapeMismatch(errors.PhaseExec, row.shape.String(), a.shape.RowShape().String())
	}
	rl := a.shape.RowLen()
	data := make([]Elem, len(a.data))
	copy(data, a.data)
	copy(data[i*rl:], row.data)
	return &Array{shape: a.shape.Clone(), data: data}, nil
}

// FromRows assembles an array from rows of identical shape along a new
// leading axis. An empty row list yields an empty vector.
func FromRows(rows []*Array) (*Array, error) {
	if len(rows) == 0 {
		return NewVector(nil), nil
	}
	rs := rows[0].shape
	data := make([]Elem, 0, len(rows)*rs.Elements())
	for _, r := range rows {
		if !r.shape.Eq(rs) {
			return nil, errors.ShapeMismatch(errors.PhaseExec, r.shape.String(), rs.String())
		}
		data = append(data, r.data...)
	}
	shape := append(Shape{len(rows)}, rs...)
	return &Array{shape: shape, data: data}, nil
}

// Reshape returns the array with a new shape. Fails with ShapeMismatch
// unless the total element count is preserved.
func Reshape(a *Array, shape Shape) (*Array, error) {
	if shape.Elements() != len(a.data) {
		return nil, errors.New(errors.PhaseExec, errors.KindShapeMismatch).
			Prim("reshape").
			Detail("cannot reshape %d element(s) into %s", len(a.data), shape).
			Build()
	}
	return &Array{shape: shape.Clone(), data: a.data}, nil
}

// ReshapeCyclic returns the array reshaped with cyclic fill: elements repeat
// or truncate to fit the target shape. Fails with a domain error when asked
// to fill a non-empty shape from an empty array.
func ReshapeCyclic(a *Array, shape Shape) (*Array, error) {
	n := shape.Elements()
	if n > 0 && len(a.data) == 0 {
		return nil, errors.Domain(errors.PhaseExec, "reshape", "cannot cycle an empty array")
	}
	data := make([]Elem, n)
	for i := range data {
		data[i] = a.data[i%len(a.data)]
	}
	return &Array{shape: shape.Clone(), data: data}, nil
}

// Equal reports structural equality: identical shapes and pairwise equal
// elements, recursing through boxes.
func Equal(a, b *Array) bool {
	if !a.shape.Eq(b.shape) {
		return false
	}
	for i, e := range a.data {
		if !ElemEqual(e, b.data[i]) {
			return false
		}
	}
	return true
}

// IsCharVector reports whether the array is a rank-1 array of characters,
// i.e. a string.
func (a *Array) IsCharVector() bool {
	if a.Rank() != 1 {
		return false
	}
	for _, e := range a.data {
		if _, ok := e.(Char); !ok {
			return false
		}
	}
	return true
}

// Text returns the array's textual content: the raw characters for a string,
// the display form otherwise. Used when interleaving fields into templates.
func (a *Array) Text() string {
	if a.IsCharVector() || a.Rank() == 0 {
		var b strings.Builder
		for _, e := range a.data {
			e.appendText(&b)
		}
		return b.String()
	}
	return a.String()
}

// String renders the array for display: scalars bare, strings quoted,
// vectors and higher ranks bracketed, boxes with a leading marker.
func (a *Array) String() string {
	var b strings.Builder
	a.render(&b)
	return b.String()
}

func (a *Array) render(b *strings.Builder) {
	switch {
	case a.Rank() == 0:
		if box, ok := a.data[0].(Box); ok {
			b.WriteRune('□')
			box.Array.render(b)
			return
		}
		a.data[0].appendText(b)
	case a.IsCharVector():
		b.WriteByte('"')
		for _, e := range a.data {
			e.appendText(b)
		}
		b.WriteByte('"')
	default:
		b.WriteByte('[')
		for i := 0; i < a.RowCount(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			row, _ := a.Row(i)
			row.render(b)
		}
		b.WriteByte(']')
	}
}
