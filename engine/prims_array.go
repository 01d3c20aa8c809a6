package engine

import (
	"math"

	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// Saved under-contexts, one type per primitive that threads context from its
// do leg to its undo leg.
type (
	savedRotate struct{ n int }
	savedPick struct {
		arr *value.Array
		i   int
	}
	savedTake struct {
		rest *value.Array
		n    int
	}
	savedDrop struct {
		dropped *value.Array
		n       int
	}
	savedReshape struct{ shape value.Shape }
)

// registerArray adds the structural array primitives.
func (t *Table) registerArray() {
	t.register("len", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		m.Push(value.NewNum(float64(a.RowCount())))
		return nil
	})

	t.register("shape", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		dims := make([]float64, a.Rank())
		for i, d := range a.Shape() {
			dims[i] = float64(d)
		}
		m.Push(value.FromNums(dims...))
		return nil
	})

	t.register("first", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		row, err := a.Row(0)
		if err != nil {
			return err
		}
		m.Push(row)
		return nil
	})

	t.register("reverse", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		m.Push(value.Reverse(a))
		return nil
	})

	t.register("deshape", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		m.Push(value.Deshape(a))
		return nil
	})

	t.register("box", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		m.Push(value.Boxed(a))
		return nil
	})

	t.register("unbox", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		if a.Rank() == 0 {
			if box, ok := a.Elems()[0].(value.Box); ok {
				m.Push(box.Array)
				return nil
			}
		}
		m.Push(a)
		return nil
	})

	t.register("match", 2, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		b, err := m.popArray()
		if err != nil {
			return err
		}
		m.Push(value.NewNum(bool01(value.Equal(b, a))))
		return nil
	})

	t.register("couple", 2, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		b, err := m.popArray()
		if err != nil {
			return err
		}
		r, err := value.Couple(b, a)
		if err != nil {
			return err
		}
		m.Push(r)
		return nil
	})

	// All rows identical: the array matches itself rotated by one row.
	t.register("equalrows", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		m.Push(value.NewNum(bool01(value.Equal(a, value.Rotate(1, a)))))
		return nil
	})

	t.register("range", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		shape, err := toShape(a, "range")
		if err != nil {
			return err
		}
		m.Push(value.Range(shape))
		return nil
	})

	rotate := t.register("rotate", 2, 1, func(m *Machine) error {
		n, a, err := popIntAndArray(m, "rotate")
		if err != nil {
			return err
		}
		m.Push(value.Rotate(n, a))
		return nil
	})
	rotate.undo = &undoPair{
		do: func(m *Machine) error {
			n, a, err := popIntAndArray(m, "rotate")
			if err != nil {
				return err
			}
			m.saveCtx(savedRotate{n: n})
			m.Push(value.Rotate(n, a))
			return nil
		},
		undo: func(m *Machine) error {
			ctx, err := popCtxAs[savedRotate](m)
			if err != nil {
				return err
			}
			a, err := m.popArray()
			if err != nil {
				return err
			}
			m.Push(value.Rotate(-ctx.n, a))
			return nil
		},
	}

	pick := t.register("pick", 2, 1, func(m *Machine) error {
		i, a, err := popIntAndArray(m, "pick")
		if err != nil {
			return err
		}
		row, err := a.Row(i)
		if err != nil {
			return err
		}
		m.Push(row)
		return nil
	})
	pick.undo = &undoPair{
		do: func(m *Machine) error {
			i, a, err := popIntAndArray(m, "pick")
			if err != nil {
				return err
			}
			row, err := a.Row(i)
			if err != nil {
				return err
			}
			m.saveCtx(savedPick{arr: a, i: i})
			m.Push(row)
			return nil
		},
		undo: func(m *Machine) error {
			ctx, err := popCtxAs[savedPick](m)
			if err != nil {
				return err
			}
			row, err := m.popArray()
			if err != nil {
				return err
			}
			whole, err := ctx.arr.WithRow(ctx.i, row)
			if err != nil {
				return err
			}
			m.Push(whole)
			return nil
		},
	}

	take := t.register("take", 2, 1, func(m *Machine) error {
		n, a, err := popIntAndArray(m, "take")
		if err != nil {
			return err
		}
		r, err := value.Take(n, a)
		if err != nil {
			return err
		}
		m.Push(r)
		return nil
	})
	take.undo = &undoPair{
		do: func(m *Machine) error {
			n, a, err := popIntAndArray(m, "take")
			if err != nil {
				return err
			}
			taken, err := value.Take(n, a)
			if err != nil {
				return err
			}
			rest, err := value.Drop(n, a)
			if err != nil {
				return err
			}
			m.saveCtx(savedTake{rest: rest, n: n})
			m.Push(taken)
			return nil
		},
		undo: func(m *Machine) error {
			ctx, err := popCtxAs[savedTake](m)
			if err != nil {
				return err
			}
			edited, err := m.popArray()
			if err != nil {
				return err
			}
			whole, err := spliceBack(edited, ctx.rest, ctx.n >= 0)
			if err != nil {
				return err
			}
			m.Push(whole)
			return nil
		},
	}

	drop := t.register("drop", 2, 1, func(m *Machine) error {
		n, a, err := popIntAndArray(m, "drop")
		if err != nil {
			return err
		}
		r, err := value.Drop(n, a)
		if err != nil {
			return err
		}
		m.Push(r)
		return nil
	})
	drop.undo = &undoPair{
		do: func(m *Machine) error {
			n, a, err := popIntAndArray(m, "drop")
			if err != nil {
				return err
			}
			kept, err := value.Drop(n, a)
			if err != nil {
				return err
			}
			dropped, err := takeClamped(n, a)
			if err != nil {
				return err
			}
			m.saveCtx(savedDrop{dropped: dropped, n: n})
			m.Push(kept)
			return nil
		},
		undo: func(m *Machine) error {
			ctx, err := popCtxAs[savedDrop](m)
			if err != nil {
				return err
			}
			edited, err := m.popArray()
			if err != nil {
				return err
			}
			whole, err := spliceBack(ctx.dropped, edited, ctx.n >= 0)
			if err != nil {
				return err
			}
			m.Push(whole)
			return nil
		},
	}

	reshape := t.register("reshape", 2, 1, func(m *Machine) error {
		shapeArr, err := m.popArray()
		if err != nil {
			return err
		}
		shape, err := toShape(shapeArr, "reshape")
		if err != nil {
			return err
		}
		a, err := m.popArray()
		if err != nil {
			return err
		}
		r, err := value.Reshape(a, shape)
		if err != nil {
			return err
		}
		m.Push(r)
		return nil
	})
	reshape.undo = &undoPair{
		do: func(m *Machine) error {
			shapeArr, err := m.popArray()
			if err != nil {
				return err
			}
			shape, err := toShape(shapeArr, "reshape")
			if err != nil {
				return err
			}
			a, err := m.popArray()
			if err != nil {
				return err
			}
			r, err := value.Reshape(a, shape)
			if err != nil {
				return err
			}
			m.saveCtx(savedReshape{shape: a.Shape().Clone()})
			m.Push(r)
			return nil
		},
		undo: func(m *Machine) error {
			ctx, err := popCtxAs[savedReshape](m)
			if err != nil {
				return err
			}
			a, err := m.popArray()
			if err != nil {
				return err
			}
			// the action may have changed the element count; cycle back
			r, err := value.ReshapeCyclic(a, ctx.shape)
			if err != nil {
				return err
			}
			m.Push(r)
			return nil
		},
	}
}

func bool01(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// popIntAndArray pops the integer first argument and the array second
// argument shared by rotate, pick, take and drop.
func popIntAndArray(m *Machine, prim string) (int, *value.Array, error) {
	nArr, err := m.popArray()
	if err != nil {
		return 0, nil, err
	}
	n, err := toInt(nArr, prim)
	if err != nil {
		return 0, nil, err
	}
	a, err := m.popArray()
	if err != nil {
		return 0, nil, err
	}
	return n, a, nil
}

// toInt requires a scalar integer.
func toInt(a *value.Array, prim string) (int, error) {
	if a.Rank() != 0 {
		return 0, errors.Domain(errors.PhaseExec, prim, "expects a scalar amount")
	}
	n, ok := a.Elems()[0].(value.Num)
	if !ok || float64(n) != math.Trunc(float64(n)) {
		return 0, errors.Domain(errors.PhaseExec, prim, "expects an integer amount")
	}
	return int(n), nil
}

// toShape converts a scalar or numeric vector into a shape of non-negative
// dimensions.
func toShape(a *value.Array, prim string) (value.Shape, error) {
	if a.Rank() > 1 {
		return nil, errors.Domain(errors.PhaseExec, prim, "shape must be a scalar or a vector")
	}
	shape := make(value.Shape, 0, a.Len())
	for _, e := range a.Elems() {
		n, ok := e.(value.Num)
		if !ok || float64(n) != math.Trunc(float64(n)) || n < 0 {
			return nil, errors.Domain(errors.PhaseExec, prim, "dimensions must be non-negative integers")
		}
		shape = append(shape, int(n))
	}
	return shape, nil
}

// spliceBack reassembles a whole array from its leading and trailing parts,
// honoring which end the forward operation worked from.
func spliceBack(front, back *value.Array, fromStart bool) (*value.Array, error) {
	if fromStart {
		return value.Concat(front, back)
	}
	return value.Concat(back, front)
}

// takeClamped is take with overrun clamped to the row count, for saving the
// region a drop removed.
func takeClamped(n int, a *value.Array) (*value.Array, error) {
	rows := a.RowCount()
	if n > rows {
		n = rows
	}
	if n < -rows {
		n = -rows
	}
	return value.Take(n, a)
}

// popCtxAs pops a typed under-context from the side stack.
func popCtxAs[T any](m *Machine) (T, error) {
	var zero T
	v, err := m.popCtx()
	if err != nil {
		return zero, err
	}
	ctx, ok := v.(T)
	if !ok {
		return zero, errors.New(errors.PhaseExec, errors.KindNotInvertible).
			Prim(m.current).
			Detail("mismatched under context").
			Build()
	}
	return ctx, nil
}
