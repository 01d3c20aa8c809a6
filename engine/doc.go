// Package engine implements the stack-based evaluator core.
//
// A front end (out of scope here) produces a flat []Instruction; Evaluate
// executes it against an operand stack. Each instruction pushes a literal
// array, pushes an anonymous function, invokes a named primitive from the
// Table, applies a modifier to function operands on the stack, or calls a
// function value.
//
// Functions carry structural capability tags rather than a type hierarchy: an
// optional plain inverse, an operand-paired inverse (the inverse reuses the
// same leading constant, possibly transformed, e.g. rotate negates it and
// join becomes split), and an under do/undo pair that threads saved context
// through the machine's side stack. The invert and under modifiers are pure
// structural recursions over these tags; a function with none of them fails
// with NotInvertible instead of guessing.
//
// The table also registers the format codec (join/split over templates with
// "_" placeholders) and the run-grouping primitives (runs, runsby,
// partition) as ordinary invertible or documented-lossy primitives.
//
// Evaluation is strictly sequential with no internal concurrency. Arrays and
// functions are immutable, so values may be shared across machines; the
// operand stack belongs to exactly one machine.
package engine
