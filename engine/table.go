package engine

import (
	"sync"

	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// Table is the primitive registry: an immutable map from stable string
// identifiers to Function values, constructed once and passed by reference
// into every evaluation. Nothing mutates a Table after NewTable returns.
type Table struct {
	prims map[string]*Function
}

// NewTable builds the full primitive table.
func NewTable() *Table {
	t := &Table{prims: make(map[string]*Function)}
	t.registerStack()
	t.registerPervasive()
	t.registerArray()
	t.registerFactor()
	t.registerRuns()
	t.registerFormat()
	t.linkInverses()
	return t
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns the shared process-wide table, built on first use.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// Lookup resolves a primitive by name.
func (t *Table) Lookup(name string) (*Function, error) {
	f, ok := t.prims[name]
	if !ok {
		return nil, errors.NotFound("primitive", name)
	}
	return f, nil
}

// Names returns all registered primitive names, unordered.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.prims))
	for name := range t.prims {
		names = append(names, name)
	}
	return names
}

// register adds a primitive with the given signature and body.
func (t *Table) register(name string, in, out int, body func(*Machine) error) *Function {
	f := &Function{name: name, in: in, out: out, body: body}
	t.prims[name] = f
	return f
}

// linkInverses wires the inverse relationships between registered
// primitives. Mutual links are set both ways; one-directional links (primes
// inverts to product, but product is lossy) only forward.
func (t *Table) linkInverses() {
	selfInverse := []string{"neg", "not", "reverse", "flip", "identity"}
	for _, name := range selfInverse {
		f := t.prims[name]
		f.inverse = f
	}

	t.prims["box"].inverse = t.prims["unbox"]
	t.prims["unbox"].inverse = t.prims["box"]

	// primes inverts to an already-existing, different primitive
	t.prims["primes"].inverse = t.prims["product"]

	negateOperand := func(c *value.Array) (*value.Array, error) {
		return value.PervadeUnary(negElem, c)
	}
	keepOperand := func(c *value.Array) (*value.Array, error) { return c, nil }

	t.prims["rotate"].pair = &operandPair{prim: "rotate", mapOperand: negateOperand}
	t.prims["join"].pair = &operandPair{prim: "split", mapOperand: keepOperand}
	t.prims["split"].pair = &operandPair{prim: "join", mapOperand: keepOperand}

	// arithmetic with a constant operand inverts to the opposite operation
	// with the same operand
	t.prims["add"].pair = &operandPair{prim: "sub", mapOperand: keepOperand}
	t.prims["sub"].pair = &operandPair{prim: "add", mapOperand: keepOperand}
	t.prims["mul"].pair = &operandPair{prim: "div", mapOperand: keepOperand}
	t.prims["div"].pair = &operandPair{prim: "mul", mapOperand: keepOperand}

	t.prims["add"].identity = value.NewNum(0)
	t.prims["mul"].identity = value.NewNum(1)
	t.prims["min"].identity = value.NewNum(posInf)
	t.prims["max"].identity = value.NewNum(negInf)
}

// Compile turns a function immediate into a Function value. A body holding
// only pushes and primitive invokes compiles structurally into a composition
// chain, which keeps it transparent to invert and under; anything else
// becomes an opaque closure with the declared signature.
func (t *Table) Compile(imm FuncImm) (*Function, error) {
	parts := make([]*Function, 0, len(imm.Body))
	structural := true
	for _, ins := range imm.Body {
		switch ins.Op {
		case OpPush:
			parts = append(parts, litFn(ins.Imm.(PushImm).Value))
		case OpPrim:
			f, err := t.Lookup(ins.Imm.(PrimImm).Name)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseCompile, errors.KindNotFound, err, "compile "+imm.Name)
			}
			parts = append(parts, f)
		default:
			structural = false
		}
		if !structural {
			break
		}
	}

	if structural {
		if len(parts) == 0 {
			return t.prims["identity"], nil
		}
		f := composeFns(parts...)
		if imm.Name != "" {
			named := *f
			named.name = imm.Name
			return &named, nil
		}
		return f, nil
	}

	body := imm.Body
	return derivedFn(imm.Name, imm.In, imm.Out, func(m *Machine) error {
		return m.Run(body)
	}), nil
}
