package engine

import (
	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// registerRuns adds the contiguous-run grouping primitives. All of them are
// lossy (run boundaries are not recoverable from the output alone), so none
// registers an inverse.
func (t *Table) registerRuns() {
	t.register("runs", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		out, err := groupRuns(a, func(prev, cur *value.Array) (bool, error) {
			return value.Equal(prev, cur), nil
		})
		if err != nil {
			return err
		}
		m.Push(out)
		return nil
	})

	t.register("runsby", 2, 1, func(m *Machine) error {
		pred, err := m.popFunction()
		if err != nil {
			return err
		}
		a, err := m.popArray()
		if err != nil {
			return err
		}
		out, err := groupRuns(a, func(prev, cur *value.Array) (bool, error) {
			m.Push(prev)
			m.Push(cur)
			if err := m.invoke(pred); err != nil {
				return false, err
			}
			return popTruthy(m, "runsby")
		})
		if err != nil {
			return err
		}
		m.Push(out)
		return nil
	})

	t.register("partition", 2, 1, func(m *Machine) error {
		sep, err := m.Pop()
		if err != nil {
			return err
		}
		a, err := m.popArray()
		if err != nil {
			return err
		}
		switch sep := sep.(type) {
		case *Function:
			out, err := partitionByPredicate(m, sep, a)
			if err != nil {
				return err
			}
			m.Push(out)
			return nil
		case *value.Array:
			out, err := partitionByLiteral(sep, a)
			if err != nil {
				return err
			}
			m.Push(out)
			return nil
		default:
			return errors.Domain(errors.PhaseExec, "partition", "separator must be a predicate function or a literal array")
		}
	})
}

// groupRuns partitions rows into maximal runs of pairwise-"equal" neighbors
// in one left-to-right pass, emitting boxed runs in encounter order. Empty
// input yields an empty vector, never an error.
func groupRuns(a *value.Array, same func(prev, cur *value.Array) (bool, error)) (*value.Array, error) {
	rows := a.RowCount()
	if a.Rank() == 0 {
		rows = 1
	}
	if a.Rank() > 0 && a.RowCount() == 0 {
		return value.NewVector(nil), nil
	}

	var (
		boxes []value.Elem
		run   []*value.Array
	)
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		grouped, err := value.FromRows(run)
		if err != nil {
			return err
		}
		boxes = append(boxes, value.Box{Array: grouped})
		run = nil
		return nil
	}

	for i := 0; i < rows; i++ {
		row, err := a.Row(i)
		if err != nil {
			return nil, err
		}
		if len(run) > 0 {
			ok, err := same(run[len(run)-1], row)
			if err != nil {
				return nil, err
			}
			if !ok {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
		run = append(run, row)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return value.NewVector(boxes), nil
}

// partitionByPredicate drops rows the unary predicate marks as separators
// and boxes the runs between them.
func partitionByPredicate(m *Machine, pred *Function, a *value.Array) (*value.Array, error) {
	var (
		boxes []value.Elem
		field []*value.Array
	)
	flush := func() error {
		if len(field) == 0 {
			return nil
		}
		grouped, err := value.FromRows(field)
		if err != nil {
			return err
		}
		boxes = append(boxes, value.Box{Array: grouped})
		field = nil
		return nil
	}

	for i := 0; i < a.RowCount(); i++ {
		row, err := a.Row(i)
		if err != nil {
			return nil, err
		}
		m.Push(row)
		if err := m.invoke(pred); err != nil {
			return nil, err
		}
		isSep, err := popTruthy(m, "partition")
		if err != nil {
			return nil, err
		}
		if isSep {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		field = append(field, row)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return value.NewVector(boxes), nil
}

// partitionByLiteral treats every window of rows matching the separator
// sequence as a field boundary.
func partitionByLiteral(sep, a *value.Array) (*value.Array, error) {
	sepRows := make([]*value.Array, 0, sep.RowCount())
	if sep.Rank() == 0 {
		sepRows = append(sepRows, sep)
	} else {
		for i := 0; i < sep.RowCount(); i++ {
			row, err := sep.Row(i)
			if err != nil {
				return nil, err
			}
			sepRows = append(sepRows, row)
		}
	}
	if len(sepRows) == 0 {
		return nil, errors.Domain(errors.PhaseExec, "partition", "empty separator")
	}

	var (
		boxes []value.Elem
		field []*value.Array
	)
	flush := func() error {
		if len(field) == 0 {
			return nil
		}
		grouped, err := value.FromRows(field)
		if err != nil {
			return err
		}
		boxes = append(boxes, value.Box{Array: grouped})
		field = nil
		return nil
	}

	rows := a.RowCount()
	for i := 0; i < rows; {
		if matchWindow(a, i, sepRows) {
			if err := flush(); err != nil {
				return nil, err
			}
			i += len(sepRows)
			continue
		}
		row, err := a.Row(i)
		if err != nil {
			return nil, err
		}
		field = append(field, row)
		i++
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return value.NewVector(boxes), nil
}

func matchWindow(a *value.Array, at int, sepRows []*value.Array) bool {
	if at+len(sepRows) > a.RowCount() {
		return false
	}
	for j, want := range sepRows {
		row, err := a.Row(at + j)
		if err != nil || !value.Equal(row, want) {
			return false
		}
	}
	return true
}

// popTruthy pops a predicate result, requiring a numeric scalar.
func popTruthy(m *Machine, prim string) (bool, error) {
	a, err := m.popArray()
	if err != nil {
		return false, err
	}
	if a.Rank() != 0 {
		return false, errors.Domain(errors.PhaseExec, prim, "predicate must return a scalar")
	}
	n, ok := a.Elems()[0].(value.Num)
	if !ok {
		return false, errors.Domain(errors.PhaseExec, prim, "predicate must return a number")
	}
	return n != 0, nil
}
