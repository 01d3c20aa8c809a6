package engine

import (
	"go.uber.org/zap"

	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// Value is one operand stack entry: a *value.Array or a *Function.
type Value interface{}

// Machine executes instruction sequences against an operand stack. A machine
// is exclusively owned by one evaluation and must not be shared; the values
// flowing through it are immutable and may be.
type Machine struct {
	table    *Table
	stack    []Value
	saved    []Value // under-context side stack
	log      *zap.Logger
	current  string // primitive being executed, for error context
	limit    int    // max elements per array result, 0 = unlimited
	limitErr error
}

// Option configures a Machine.
type Option func(*Machine)

// WithLimit caps the element count of any array pushed during evaluation.
// Exceeding it fails the evaluation with ResourceExceeded.
func WithLimit(n int) Option {
	return func(m *Machine) { m.limit = n }
}

// WithLogger sets a per-machine logger, overriding the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// NewMachine creates a machine over the given primitive table.
func NewMachine(table *Table, opts ...Option) *Machine {
	m := &Machine{table: table, log: Logger()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push pushes a value onto the operand stack.
func (m *Machine) Push(v Value) {
	if m.limit > 0 && m.limitErr == nil {
		if a, ok := v.(*value.Array); ok && a.Len() > m.limit {
			m.limitErr = errors.Resource(m.current, a.Len(), m.limit)
		}
	}
	m.stack = append(m.stack, v)
}

// Pop removes and returns the top of the stack, failing with StackUnderflow
// when empty.
func (m *Machine) Pop() (Value, error) {
	if len(m.stack) == 0 {
		return nil, errors.Underflow(m.current, 1, 0)
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

// Depth returns the number of values on the stack.
func (m *Machine) Depth() int { return len(m.stack) }

// Stack returns a snapshot of the stack, bottom first.
func (m *Machine) Stack() []Value {
	out := make([]Value, len(m.stack))
	copy(out, m.stack)
	return out
}

// popArray pops the top value and requires it to be an array.
func (m *Machine) popArray() (*value.Array, error) {
	v, err := m.Pop()
	if err != nil {
		return nil, err
	}
	a, ok := v.(*value.Array)
	if !ok {
		return nil, errors.Domain(errors.PhaseExec, m.current, "expected an array operand")
	}
	return a, nil
}

// popFunction pops the top value and requires it to be a function.
func (m *Machine) popFunction() (*Function, error) {
	v, err := m.Pop()
	if err != nil {
		return nil, err
	}
	f, ok := v.(*Function)
	if !ok {
		return nil, errors.Domain(errors.PhaseExec, m.current, "expected a function operand")
	}
	return f, nil
}

// saveCtx pushes a value onto the under-context side stack.
func (m *Machine) saveCtx(v Value) { m.saved = append(m.saved, v) }

// popCtx pops the most recently saved under context.
func (m *Machine) popCtx() (Value, error) {
	if len(m.saved) == 0 {
		return nil, errors.New(errors.PhaseExec, errors.KindNotInvertible).
			Prim(m.current).
			Detail("undo executed without matching do").
			Build()
	}
	v := m.saved[len(m.saved)-1]
	m.saved = m.saved[:len(m.saved)-1]
	return v, nil
}

// Run executes an instruction sequence to completion, strictly sequentially.
func (m *Machine) Run(instrs []Instruction) error {
	if m.limitErr != nil {
		return m.limitErr
	}
	for _, ins := range instrs {
		if err := m.step(ins); err != nil {
			return err
		}
		if m.limitErr != nil {
			return m.limitErr
		}
	}
	return nil
}

func (m *Machine) step(ins Instruction) error {
	if ce := m.log.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(zap.Stringer("instr", ins), zap.Int("depth", m.Depth()))
	}

	switch ins.Op {
	case OpPush:
		m.Push(ins.Imm.(PushImm).Value)
		return nil

	case OpFunc:
		f, err := m.table.Compile(ins.Imm.(FuncImm))
		if err != nil {
			return err
		}
		m.Push(f)
		return nil

	case OpPrim:
		name := ins.Imm.(PrimImm).Name
		f, err := m.table.Lookup(name)
		if err != nil {
			return err
		}
		return m.invoke(f)

	case OpMod:
		return m.applyModifier(ins.Imm.(ModImm).Name)

	case OpCall:
		f, err := m.popFunction()
		if err != nil {
			return err
		}
		return m.invoke(f)

	default:
		return errors.New(errors.PhaseExec, errors.KindDomain).
			Detail("unknown opcode %d", ins.Op).
			Build()
	}
}

// invoke runs a function body with the machine's error context pointing at it.
func (m *Machine) invoke(f *Function) error {
	prev := m.current
	m.current = f.name
	err := f.call(m)
	m.current = prev
	return err
}

// Evaluate runs an instruction sequence on a fresh machine seeded with the
// given initial stack (bottom first) and returns the final stack. This is
// the subsystem's external interface; errors are explicit results and a
// failed evaluation has no observable side effects.
func Evaluate(table *Table, instrs []Instruction, initial []Value, opts ...Option) ([]Value, error) {
	m := NewMachine(table, opts...)
	for _, v := range initial {
		m.Push(v)
	}
	if err := m.Run(instrs); err != nil {
		return nil, err
	}
	return m.Stack(), nil
}
