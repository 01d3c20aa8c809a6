package engine

import (
	"fmt"

	"github.com/Jacob-Lockwood/uiua/value"
)

// Opcode identifies an instruction kind.
type Opcode byte

const (
	// OpPush pushes a literal array. Imm is PushImm.
	OpPush Opcode = iota
	// OpFunc pushes an anonymous function value. Imm is FuncImm.
	OpFunc
	// OpPrim invokes a table primitive: it pops the primitive's declared
	// in-arity and pushes its out-arity. Imm is PrimImm.
	OpPrim
	// OpMod applies a modifier: it pops the function operand(s) the
	// modifier transforms and pushes the derived function. Imm is ModImm.
	OpMod
	// OpCall pops a function value and executes it against the stack.
	OpCall
)

// Instruction is one decoded evaluator instruction.
type Instruction struct {
	Imm interface{}
	Op  Opcode
}

// PushImm holds the literal array for OpPush.
type PushImm struct {
	Value *value.Array
}

// FuncImm holds the body and declared signature for OpFunc. In and Out are
// only consulted when the body cannot be compiled structurally (it contains
// modifier or call instructions); structural bodies derive their signature
// from their parts.
type FuncImm struct {
	Name string
	Body []Instruction
	In   int
	Out  int
}

// PrimImm names the table primitive for OpPrim.
type PrimImm struct {
	Name string
}

// ModImm names the modifier for OpMod: compose, invert, under, on, by
// or reduce.
type ModImm struct {
	Name string
}

// Convenience constructors used by front ends and tests.

// Push returns a literal-push instruction.
func Push(a *value.Array) Instruction {
	return Instruction{Op: OpPush, Imm: PushImm{Value: a}}
}

// PushNum returns a literal-push of a numeric scalar.
func PushNum(f float64) Instruction { return Push(value.NewNum(f)) }

// PushStr returns a literal-push of a string.
func PushStr(s string) Instruction { return Push(value.FromString(s)) }

// Prim returns a primitive-invoke instruction.
func Prim(name string) Instruction {
	return Instruction{Op: OpPrim, Imm: PrimImm{Name: name}}
}

// Mod returns a modifier-apply instruction.
func Mod(name string) Instruction {
	return Instruction{Op: OpMod, Imm: ModImm{Name: name}}
}

// Call returns a call instruction.
func Call() Instruction { return Instruction{Op: OpCall} }

// Fn returns a function-push instruction whose body is the given sequence.
func Fn(name string, body ...Instruction) Instruction {
	return Instruction{Op: OpFunc, Imm: FuncImm{Name: name, Body: body}}
}

func (i Instruction) String() string {
	switch i.Op {
	case OpPush:
		return fmt.Sprintf("push %v", i.Imm.(PushImm).Value)
	case OpFunc:
		return fmt.Sprintf("fn %s", i.Imm.(FuncImm).Name)
	case OpPrim:
		return fmt.Sprintf("prim %s", i.Imm.(PrimImm).Name)
	case OpMod:
		return fmt.Sprintf("mod %s", i.Imm.(ModImm).Name)
	case OpCall:
		return "call"
	}
	return fmt.Sprintf("op(%d)", i.Op)
}
