package engine

import (
	"math"

	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// registerFactor adds prime factorization and its multiplicative inverse.
// The inverse wiring (primes inverts to the separately useful product
// primitive) happens in linkInverses.
func (t *Table) registerFactor() {
	t.register("primes", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		if a.Rank() == 0 {
			if n, ok := a.Elems()[0].(value.Num); ok {
				factors, err := factorize(float64(n))
				if err != nil {
					return err
				}
				m.Push(factors)
				return nil
			}
		}
		r, err := value.PervadeUnary(func(e value.Elem) (value.Elem, error) {
			n, ok := e.(value.Num)
			if !ok {
				return nil, errors.Domain(errors.PhaseExec, "primes", "expects numbers")
			}
			factors, err := factorize(float64(n))
			if err != nil {
				return nil, err
			}
			return value.Box{Array: factors}, nil
		}, a)
		if err != nil {
			return err
		}
		m.Push(r)
		return nil
	})

	t.register("product", 1, 1, func(m *Machine) error {
		a, err := m.popArray()
		if err != nil {
			return err
		}
		p := 1.0
		for _, e := range a.Elems() {
			n, ok := e.(value.Num)
			if !ok {
				return errors.Domain(errors.PhaseExec, "product", "expects numbers")
			}
			p *= float64(n)
		}
		m.Push(value.NewNum(p))
		return nil
	})
}

// factorize decomposes a positive integer into its ascending prime factors
// by trial division. 1 factorizes to the empty vector, whose product is 1.
func factorize(f float64) (*value.Array, error) {
	if f < 1 || f != math.Trunc(f) {
		return nil, errors.New(errors.PhaseExec, errors.KindDomain).
			Prim("primes").
			Detail("cannot factorize %v", f).
			Build()
	}
	n := int64(f)
	var factors []float64
	for d := int64(2); d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, float64(d))
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, float64(n))
	}
	return value.FromNums(factors...), nil
}
