package engine

import (
	"math"

	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// registerPervasive adds the broadcasting elementwise primitives. The top
// stack value is the first argument a, the one below it b; non-commutative
// operations compute b OP a, so `push 10, push 3, prim sub` yields 7.
func (t *Table) registerPervasive() {
	dyadic := func(name string, op value.DyadicOp) {
		t.register(name, 2, 1, func(m *Machine) error {
			a, err := m.popArray()
			if err != nil {
				return err
			}
			b, err := m.popArray()
			if err != nil {
				return err
			}
			r, err := value.Pervade(op, b, a)
			if err != nil {
				return err
			}
			m.Push(r)
			return nil
		})
	}

	monadic := func(name string, op value.MonadicOp) {
		t.register(name, 1, 1, func(m *Machine) error {
			a, err := m.popArray()
			if err != nil {
				return err
			}
			r, err := value.PervadeUnary(op, a)
			if err != nil {
				return err
			}
			m.Push(r)
			return nil
		})
	}

	dyadic("add", addElems)
	dyadic("sub", subElems)
	dyadic("mul", numDyadic("mul", func(x, y float64) (float64, error) { return x * y, nil }))
	dyadic("div", numDyadic("div", func(x, y float64) (float64, error) { return x / y, nil }))
	dyadic("mod", numDyadic("mod", modNum))
	dyadic("pow", numDyadic("pow", func(x, y float64) (float64, error) { return math.Pow(x, y), nil }))
	dyadic("min", numDyadic("min", func(x, y float64) (float64, error) { return math.Min(x, y), nil }))
	dyadic("max", numDyadic("max", func(x, y float64) (float64, error) { return math.Max(x, y), nil }))

	dyadic("eq", func(x, y value.Elem) (value.Elem, error) { return boolNum(value.ElemEqual(x, y)), nil })
	dyadic("ne", func(x, y value.Elem) (value.Elem, error) { return boolNum(!value.ElemEqual(x, y)), nil })
	dyadic("lt", cmpElems("lt", func(c int) bool { return c < 0 }))
	dyadic("le", cmpElems("le", func(c int) bool { return c <= 0 }))
	dyadic("gt", cmpElems("gt", func(c int) bool { return c > 0 }))
	dyadic("ge", cmpElems("ge", func(c int) bool { return c >= 0 }))

	monadic("neg", negElem)
	monadic("not", numMonadic("not", func(x float64) (float64, error) { return 1 - x, nil }))
	monadic("abs", numMonadic("abs", func(x float64) (float64, error) { return math.Abs(x), nil }))
	monadic("sign", numMonadic("sign", signNum))
	monadic("floor", numMonadic("floor", func(x float64) (float64, error) { return math.Floor(x), nil }))
	monadic("ceil", numMonadic("ceil", func(x float64) (float64, error) { return math.Ceil(x), nil }))
	monadic("round", numMonadic("round", func(x float64) (float64, error) { return math.Round(x), nil }))
	monadic("sqrt", sqrtElem)
}

func boolNum(b bool) value.Elem {
	if b {
		return value.Num(1)
	}
	return value.Num(0)
}

// numDyadic lifts a float operation to elements, rejecting characters.
func numDyadic(name string, op func(x, y float64) (float64, error)) value.DyadicOp {
	return func(x, y value.Elem) (value.Elem, error) {
		xn, xok := x.(value.Num)
		yn, yok := y.(value.Num)
		if !xok || !yok {
			return nil, errors.Domain(errors.PhasePervade, name, "expects numbers")
		}
		r, err := op(float64(xn), float64(yn))
		if err != nil {
			return nil, err
		}
		return value.Num(r), nil
	}
}

func numMonadic(name string, op func(x float64) (float64, error)) value.MonadicOp {
	return func(e value.Elem) (value.Elem, error) {
		n, ok := e.(value.Num)
		if !ok {
			return nil, errors.Domain(errors.PhasePervade, name, "expects numbers")
		}
		r, err := op(float64(n))
		if err != nil {
			return nil, err
		}
		return value.Num(r), nil
	}
}

// addElems adds numbers, and shifts a character by a number.
func addElems(x, y value.Elem) (value.Elem, error) {
	switch x := x.(type) {
	case value.Num:
		switch y := y.(type) {
		case value.Num:
			return x + y, nil
		case value.Char:
			return value.Char(rune(float64(x)) + rune(y)), nil
		}
	case value.Char:
		if y, ok := y.(value.Num); ok {
			return value.Char(rune(x) + rune(float64(y))), nil
		}
	}
	return nil, errors.Domain(errors.PhasePervade, "add", "cannot add these element kinds")
}

// subElems subtracts numbers, shifts a character back by a number, and
// yields the distance between two characters.
func subElems(x, y value.Elem) (value.Elem, error) {
	switch x := x.(type) {
	case value.Num:
		if y, ok := y.(value.Num); ok {
			return x - y, nil
		}
	case value.Char:
		switch y := y.(type) {
		case value.Num:
			return value.Char(rune(x) - rune(float64(y))), nil
		case value.Char:
			return value.Num(rune(x) - rune(y)), nil
		}
	}
	return nil, errors.Domain(errors.PhasePervade, "sub", "cannot subtract these element kinds")
}

func negElem(e value.Elem) (value.Elem, error) {
	n, ok := e.(value.Num)
	if !ok {
		return nil, errors.Domain(errors.PhasePervade, "neg", "expects numbers")
	}
	return -n, nil
}

func sqrtElem(e value.Elem) (value.Elem, error) {
	n, ok := e.(value.Num)
	if !ok {
		return nil, errors.Domain(errors.PhasePervade, "sqrt", "expects numbers")
	}
	if n < 0 {
		return nil, errors.Domain(errors.PhasePervade, "sqrt", "negative argument")
	}
	return value.Num(math.Sqrt(float64(n))), nil
}

func signNum(x float64) (float64, error) {
	switch {
	case x > 0:
		return 1, nil
	case x < 0:
		return -1, nil
	}
	return 0, nil
}

// modNum is the flooring modulus: the result takes the divisor's sign.
func modNum(x, y float64) (float64, error) {
	if y == 0 {
		return 0, errors.Domain(errors.PhasePervade, "mod", "modulus by zero")
	}
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r, nil
}

// cmpElems compares like element kinds, numbers by value and characters by
// code point.
func cmpElems(name string, keep func(int) bool) value.DyadicOp {
	return func(x, y value.Elem) (value.Elem, error) {
		switch x := x.(type) {
		case value.Num:
			if y, ok := y.(value.Num); ok {
				return boolNum(keep(cmpFloat(float64(x), float64(y)))), nil
			}
		case value.Char:
			if y, ok := y.(value.Char); ok {
				return boolNum(keep(cmpFloat(float64(x), float64(y)))), nil
			}
		}
		return nil, errors.Domain(errors.PhasePervade, name, "cannot compare differing element kinds")
	}
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
