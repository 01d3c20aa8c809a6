package value

import "github.com/Jacob-Lockwood/uiua/errors"

// DyadicOp is an elementwise operation over two elements.
type DyadicOp func(a, b Elem) (Elem, error)

// MonadicOp is an elementwise operation over one element.
type MonadicOp func(e Elem) (Elem, error)

// Pervade applies op elementwise across two arrays under leading-axis
// agreement: the lower-rank array's shape must be a prefix of the higher-rank
// array's shape, and each of its elements pairs with the whole corresponding
// cell of the other. Scalars pair with every element. The result takes the
// higher-rank shape. A disagreeing shared dimension fails with ShapeMismatch;
// shapes are never silently truncated.
func Pervade(op DyadicOp, a, b *Array) (*Array, error) {
	switch {
	case a.Rank() == b.Rank():
		if !a.shape.Eq(b.shape) {
			return nil, errors.ShapeMismatch(errors.PhasePervade, a.shape.String(), b.shape.String())
		}
		data := make([]Elem, len(a.data))
		for i := range a.data {
			e, err := pervadeElem(op, a.data[i], b.data[i])
			if err != nil {
				return nil, err
			}
			data[i] = e
		}
		return &Array{shape: a.shape.Clone(), data: data}, nil

	case a.Rank() < b.Rank():
		if !b.shape.HasPrefix(a.shape) {
			return nil, errors.ShapeMismatch(errors.PhasePervade, a.shape.String(), b.shape.String())
		}
		data := make([]Elem, len(b.data))
		cell := cellSize(len(b.data), len(a.data))
		for i := range a.data {
			for j := 0; j < cell; j++ {
				e, err := pervadeElem(op, a.data[i], b.data[i*cell+j])
				if err != nil {
					return nil, err
				}
				data[i*cell+j] = e
			}
		}
		return &Array{shape: b.shape.Clone(), data: data}, nil

	default:
		if !a.shape.HasPrefix(b.shape) {
			return nil, errors.ShapeMismatch(errors.PhasePervade, a.shape.String(), b.shape.String())
		}
		data := make([]Elem, len(a.data))
		cell := cellSize(len(a.data), len(b.data))
		for i := range b.data {
			for j := 0; j < cell; j++ {
				e, err := pervadeElem(op, a.data[i*cell+j], b.data[i])
				if err != nil {
					return nil, err
				}
				data[i*cell+j] = e
			}
		}
		return &Array{shape: a.shape.Clone(), data: data}, nil
	}
}

// PervadeUnary applies op to every element, recursing through boxes.
func PervadeUnary(op MonadicOp, a *Array) (*Array, error) {
	data := make([]Elem, len(a.data))
	for i, e := range a.data {
		if box, ok := e.(Box); ok {
			inner, err := PervadeUnary(op, box.Array)
			if err != nil {
				return nil, err
			}
			data[i] = Box{Array: inner}
			continue
		}
		r, err := op(e)
		if err != nil {
			return nil, err
		}
		data[i] = r
	}
	return &Array{shape: a.shape.Clone(), data: data}, nil
}

// pervadeElem applies op to one element pair, recursing into boxed
// sub-arrays so that scaling nested structures works one axis at a time.
func pervadeElem(op DyadicOp, x, y Elem) (Elem, error) {
	bx, xok := x.(Box)
	by, yok := y.(Box)
	switch {
	case xok && yok:
		inner, err := Pervade(op, bx.Array, by.Array)
		if err != nil {
			return nil, err
		}
		return Box{Array: inner}, nil
	case xok:
		inner, err := Pervade(op, bx.Array, NewScalar(y))
		if err != nil {
			return nil, err
		}
		return Box{Array: inner}, nil
	case yok:
		inner, err := Pervade(op, NewScalar(x), by.Array)
		if err != nil {
			return nil, err
		}
		return Box{Array: inner}, nil
	default:
		return op(x, y)
	}
}

// cellSize is the element count each lower-rank element pairs with.
func cellSize(total, outer int) int {
	if outer == 0 {
		return 0
	}
	return total / outer
}
