package engine

import (
	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// registerStack adds the stack-shuffling primitives.
func (t *Table) registerStack() {
	t.register("identity", 1, 1, func(m *Machine) error {
		if m.Depth() == 0 {
			return errors.Underflow("identity", 1, 0)
		}
		return nil
	})

	t.register("pop", 1, 0, func(m *Machine) error {
		_, err := m.Pop()
		return err
	})

	t.register("flip", 2, 2, func(m *Machine) error {
		a, err := m.Pop()
		if err != nil {
			return err
		}
		b, err := m.Pop()
		if err != nil {
			return err
		}
		m.Push(a)
		m.Push(b)
		return nil
	})

	dup := t.register("dup", 1, 2, func(m *Machine) error {
		v, err := m.Pop()
		if err != nil {
			return err
		}
		m.Push(v)
		m.Push(v)
		return nil
	})

	// Duplication-then-combine is lossy in general, so dup's inverse
	// demands its two inputs still be equal and fails loudly otherwise.
	dup.inverse = derivedFn("un dup", 2, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		b, err := m.popArray()
		if err != nil {
			return err
		}
		if !value.Equal(a, b) {
			return errors.Domain(errors.PhaseExec, "un dup", "the duplicated values have diverged")
		}
		m.Push(b)
		return nil
	})
	dup.inverse.inverse = dup
}
