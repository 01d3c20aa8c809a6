package engine

import (
	"github.com/Jacob-Lockwood/uiua/errors"
)

// applyModifier pops the function operand(s) a modifier transforms and
// pushes the derived function. Derived functions are plain values; OpCall
// executes them.
func (m *Machine) applyModifier(name string) error {
	prev := m.current
	m.current = name
	defer func() { m.current = prev }()

	switch name {
	case "compose":
		g, err := m.popFunction()
		if err != nil {
			return err
		}
		f, err := m.popFunction()
		if err != nil {
			return err
		}
		m.Push(composeFns(f, g))
		return nil

	case "invert":
		f, err := m.popFunction()
		if err != nil {
			return err
		}
		inv, err := m.table.invert(f)
		if err != nil {
			return err
		}
		m.Push(inv)
		return nil

	case "under":
		g, err := m.popFunction()
		if err != nil {
			return err
		}
		f, err := m.popFunction()
		if err != nil {
			return err
		}
		u, err := m.table.under(f, g)
		if err != nil {
			return err
		}
		m.Push(u)
		return nil

	case "on":
		f, err := m.popFunction()
		if err != nil {
			return err
		}
		m.Push(onFn(f))
		return nil

	case "by":
		f, err := m.popFunction()
		if err != nil {
			return err
		}
		m.Push(byFn(f))
		return nil

	case "reduce":
		f, err := m.popFunction()
		if err != nil {
			return err
		}
		m.Push(reduceFn(f))
		return nil

	default:
		return errors.NotFound("modifier", name)
	}
}

// invert derives the inverse of a function: the registered inverse for a
// primitive, pop-and-verify for a literal, and for a composition the
// reversed chain with each leg inverted — except that a constant feeding an
// operand-paired primitive stays in front of the paired inverse, with the
// operand transformed (rotate negates its amount, join turns into split with
// the same template).
func (t *Table) invert(f *Function) (*Function, error) {
	if f.inverse != nil {
		return f.inverse, nil
	}
	if f.lit != nil {
		return popVerifyFn(f.lit), nil
	}
	if f.chain != nil {
		legs := make([]*Function, 0, len(f.chain))
		for i := len(f.chain) - 1; i >= 0; i-- {
			g := f.chain[i]
			if g.pair != nil && i > 0 && f.chain[i-1].lit != nil {
				c, err := g.pair.mapOperand(f.chain[i-1].lit)
				if err != nil {
					return nil, err
				}
				paired, err := t.Lookup(g.pair.prim)
				if err != nil {
					return nil, err
				}
				legs = append(legs, litFn(c), paired)
				i-- // the constant leg is consumed by the pairing
				continue
			}
			gi, err := t.invert(g)
			if err != nil {
				return nil, err
			}
			legs = append(legs, gi)
		}
		inv := composeFns(legs...)
		if inv.chain != nil {
			inv.inverse = f
		}
		return inv, nil
	}
	return nil, errors.NotInvertible(errors.PhaseInvert, f.name)
}

// under builds the function that applies f, applies g to the transformed
// view, then restores the surrounding context through f's inverse with g's
// result spliced in. Compositions decompose right to left:
// under(compose(f1, f2), g) = under(f1, under(f2, g)). Literals just push;
// a primitive contributes its do/undo pair, or failing that its plain
// inverse; anything else is not invertible.
func (t *Table) under(f, g *Function) (*Function, error) {
	if f.chain != nil {
		u := g
		for i := len(f.chain) - 1; i >= 0; i-- {
			var err error
			u, err = t.under(f.chain[i], u)
			if err != nil {
				return nil, err
			}
		}
		return u, nil
	}
	if f.lit != nil {
		return composeFns(f, g), nil
	}
	if f.undo != nil {
		do, un := f.undo.do, f.undo.undo
		name := "under " + f.name
		return derivedFn(name, f.in, f.out, func(m *Machine) error {
			if err := do(m); err != nil {
				return err
			}
			if err := m.invoke(g); err != nil {
				return err
			}
			return un(m)
		}), nil
	}
	if f.inverse != nil {
		return composeFns(f, g, f.inverse), nil
	}
	return nil, errors.NotInvertible(errors.PhaseInvert, f.name)
}

// onFn preserves f's top operand, re-pushing it above the result.
func onFn(f *Function) *Function {
	return derivedFn("on "+f.name, max(f.in, 1), f.out+1, func(m *Machine) error {
		if m.Depth() == 0 {
			return errors.Underflow("on "+f.name, 1, 0)
		}
		kept := m.stack[len(m.stack)-1]
		if err := m.invoke(f); err != nil {
			return err
		}
		m.Push(kept)
		return nil
	})
}

// byFn preserves f's deepest operand, re-inserting it below the result.
func byFn(f *Function) *Function {
	args := max(f.in, 1)
	return derivedFn("by "+f.name, args, f.out+1, func(m *Machine) error {
		if m.Depth() < args {
			return errors.Underflow("by "+f.name, args, m.Depth())
		}
		kept := m.stack[len(m.stack)-args]
		if err := m.invoke(f); err != nil {
			return err
		}
		outs := make([]Value, f.out)
		for i := f.out - 1; i >= 0; i-- {
			v, err := m.Pop()
			if err != nil {
				return err
			}
			outs[i] = v
		}
		m.Push(kept)
		for _, v := range outs {
			m.Push(v)
		}
		return nil
	})
}

// reduceFn folds f pairwise across the rows of an array, left to right. An
// empty array yields f's identity element when it declares one and fails
// with a domain error otherwise.
func reduceFn(f *Function) *Function {
	name := "reduce " + f.name
	return derivedFn(name, 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		if a.Rank() == 0 {
			m.Push(a)
			return nil
		}
		rows := a.RowCount()
		if rows == 0 {
			if f.identity == nil {
				return errors.Domain(errors.PhaseExec, name, "empty array and no identity element")
			}
			m.Push(f.identity)
			return nil
		}
		acc, err := a.Row(0)
		if err != nil {
			return err
		}
		for i := 1; i < rows; i++ {
			row, err := a.Row(i)
			if err != nil {
				return err
			}
			m.Push(acc)
			m.Push(row)
			if err := m.invoke(f); err != nil {
				return err
			}
			v, err := m.popArray()
			if err != nil {
				return err
			}
			acc = v
		}
		m.Push(acc)
		return nil
	})
}
