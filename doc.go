// Package uiua provides the evaluator core of a stack-based, array-oriented
// language: pervasive (broadcasting) array primitives, a composition-modifier
// layer with automatic function inversion, a bidirectional template codec,
// and contiguous-run grouping.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	uiua/            Root package with the top-level Evaluate entry point
//	├── engine/      Stack machine, primitive table, modifiers, format codec
//	├── value/       Immutable array values, shapes, and the broadcast engine
//	├── errors/      Structured error types for debugging
//	└── cmd/uiua/    Instruction-listing front end with an interactive TUI
//
// # Quick Start
//
// A front end produces instructions; the evaluator runs them:
//
//	out, err := uiua.Evaluate([]engine.Instruction{
//		engine.Push(value.FromNums(1, 2, 3, 4, 5)),
//		engine.PushNum(1),
//		engine.Prim("rotate"),
//	}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out[0]) // [2 3 4 5 1]
//
// All values are immutable; a failed evaluation has no observable side
// effects. Errors are structured (see the errors package) and explicit:
// shape disagreements, domain violations, stack underflow, non-invertible
// functions, template mismatches, and resource limits are never silent.
package uiua
