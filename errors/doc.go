// Package errors provides structured error types for the evaluator.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the offending primitive or
// modifier name, a template position for format errors, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseExec, errors.KindShapeMismatch).
//		Prim("add").
//		Detail("shapes [2 3] and [4] do not agree").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ShapeMismatch(errors.PhasePervade, "[2 3]", "[4]")
//	err := errors.NotInvertible(errors.PhaseInvert, "runs")
//
// All errors implement the standard error interface and support errors.Is/As.
// A target constructed with Kinded matches on Kind alone, so sentinel checks
// work regardless of where the error arose.
package errors
