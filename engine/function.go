package engine

import (
	"strings"

	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// Function is an opaque, composable unit of computation with a declared
// stack signature. Invertibility is a tagged capability, not a hierarchy:
// a function may carry a plain inverse, an operand-paired inverse, an under
// do/undo pair, or none of these, and the modifiers recurse structurally
// over the tags.
type Function struct {
	name string
	in   int
	out  int
	body func(*Machine) error

	inverse  *Function    // plain inverse, nil if absent
	pair     *operandPair // inverse reusing the leading constant operand
	undo     *undoPair    // contextual inverse for under
	chain    []*Function  // composition parts in execution order, nil otherwise
	lit      *value.Array // literal constant, nil otherwise
	identity *value.Array // reduce identity element, nil if none
}

// operandPair records that compose(push c, f) inverts to
// compose(push mapOperand(c), prim). rotate maps the operand to its
// negation; join and split keep it and swap primitives.
type operandPair struct {
	prim       string
	mapOperand func(*value.Array) (*value.Array, error)
}

// undoPair is a contextual forward/backward pair for under: do saves context
// on the machine's side stack, undo consumes it and splices the (possibly
// modified) view back.
type undoPair struct {
	do   func(*Machine) error
	undo func(*Machine) error
}

// Name returns the function's display name.
func (f *Function) Name() string { return f.name }

// In returns the number of stack values the function consumes.
func (f *Function) In() int { return f.in }

// Out returns the number of stack values the function produces.
func (f *Function) Out() int { return f.out }

// Invertible reports whether invert can derive an inverse without running it.
func (f *Function) Invertible() bool {
	return f.inverse != nil || f.lit != nil || f.chain != nil
}

func (f *Function) call(m *Machine) error {
	if f.chain != nil {
		for _, g := range f.chain {
			if err := m.invoke(g); err != nil {
				return err
			}
		}
		return nil
	}
	return f.body(m)
}

// litFn wraps a constant array as a 0-in 1-out function.
func litFn(a *value.Array) *Function {
	return &Function{
		name: a.String(),
		out:  1,
		body: func(m *Machine) error {
			m.Push(a)
			return nil
		},
		lit: a,
	}
}

// popVerifyFn is the inverse of a literal push: it pops a value and requires
// it to equal the constant, so that inverted compositions consume exactly
// what the forward direction produced.
func popVerifyFn(c *value.Array) *Function {
	f := &Function{
		name: "un " + c.String(),
		in:   1,
		body: func(m *Machine) error {
			a, err := m.popArray()
			if err != nil {
				return err
			}
			if !value.Equal(a, c) {
				return errors.New(errors.PhaseExec, errors.KindDomain).
					Prim("un " + c.String()).
					Detail("expected %v, found %v", c, a).
					Build()
			}
			return nil
		},
	}
	f.inverse = litFn(c)
	return f
}

// composeFns builds the sequential composition of the given functions,
// flattening nested chains. A single part passes through unchanged.
func composeFns(fs ...*Function) *Function {
	flat := make([]*Function, 0, len(fs))
	for _, f := range fs {
		if f.chain != nil {
			flat = append(flat, f.chain...)
			continue
		}
		flat = append(flat, f)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	in, out := chainSignature(flat)
	names := make([]string, len(flat))
	for i, f := range flat {
		names[i] = f.name
	}
	return &Function{
		name:  "(" + strings.Join(names, " ") + ")",
		in:    in,
		out:   out,
		chain: flat,
	}
}

// chainSignature derives a composition's net stack signature from its parts.
func chainSignature(fs []*Function) (in, out int) {
	need, depth := 0, 0
	for _, f := range fs {
		if want := f.in - depth; want > need {
			need = want
		}
		depth += f.out - f.in
	}
	return need, depth + need
}

// derivedFn builds a function around an explicit body.
func derivedFn(name string, in, out int, body func(*Machine) error) *Function {
	return &Function{name: name, in: in, out: out, body: body}
}
