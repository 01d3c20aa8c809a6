package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in evaluation the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // function literal compilation
	PhaseExec    Phase = "exec"    // instruction execution
	PhasePervade Phase = "pervade" // broadcasting elementwise application
	PhaseInvert  Phase = "invert"  // inverse derivation
	PhaseFormat  Phase = "format"  // template join/split
)

// Kind categorizes the error
type Kind string

const (
	KindShapeMismatch  Kind = "shape_mismatch"
	KindDomain         Kind = "domain"
	KindStackUnderflow Kind = "stack_underflow"
	KindNotInvertible  Kind = "not_invertible"
	KindFormatMismatch Kind = "format_mismatch"
	KindResource       Kind = "resource_exceeded"
	KindNotFound       Kind = "not_found"
)

// Error is a structured evaluator error
type Error struct {
	Cause  error  // underlying error, if any
	Phase  Phase  // where the error occurred
	Kind   Kind   // error category
	Prim   string // offending primitive or modifier name
	Detail string // human-readable context
	Pos    int    // template position for format errors, -1 otherwise
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Prim != "" {
		b.WriteString(" in ")
		b.WriteString(e.Prim)
	}

	if e.Pos >= 0 {
		b.WriteString(" at position ")
		b.WriteString(strconv.Itoa(e.Pos))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty Phase
// matches on Kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Kinded returns a sentinel error matching any error of the given kind,
// for use with errors.Is.
func Kinded(kind Kind) *Error {
	return &Error{Kind: kind, Pos: -1}
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Pos:   -1,
		},
	}
}

// Prim sets the offending primitive or modifier name
func (b *Builder) Prim(name string) *Builder {
	b.err.Prim = name
	return b
}

// Pos sets the template position
func (b *Builder) Pos(pos int) *Builder {
	b.err.Pos = pos
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ShapeMismatch creates a shape mismatch error for two shapes that do not agree
func ShapeMismatch(phase Phase, shapeA, shapeB string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShapeMismatch,
		Detail: fmt.Sprintf("shapes %s and %s do not agree", shapeA, shapeB),
		Pos:    -1,
	}
}

// Domain creates a domain error
func Domain(phase Phase, prim, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDomain,
		Prim:   prim,
		Detail: detail,
		Pos:    -1,
	}
}

// Underflow creates a stack underflow error
func Underflow(prim string, want, have int) *Error {
	return &Error{
		Phase:  PhaseExec,
		Kind:   KindStackUnderflow,
		Prim:   prim,
		Detail: fmt.Sprintf("need %d value(s), stack holds %d", want, have),
		Pos:    -1,
	}
}

// NotInvertible creates an error for an inverse requested on a function lacking one
func NotInvertible(phase Phase, prim string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindNotInvertible,
		Prim:  prim,
		Pos:   -1,
	}
}

// FormatMismatch creates a template matching error naming the template position
func FormatMismatch(pos int, literal, detail string) *Error {
	return &Error{
		Phase:  PhaseFormat,
		Kind:   KindFormatMismatch,
		Detail: fmt.Sprintf("literal %q %s", literal, detail),
		Pos:    pos,
	}
}

// Resource creates a resource limit error
func Resource(prim string, elems, limit int) *Error {
	return &Error{
		Phase:  PhaseExec,
		Kind:   KindResource,
		Prim:   prim,
		Detail: fmt.Sprintf("result of %d elements exceeds limit %d", elems, limit),
		Pos:    -1,
	}
}

// NotFound creates an unknown primitive or modifier error
func NotFound(what, name string) *Error {
	return &Error{
		Phase:  PhaseExec,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Pos:    -1,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Pos:    -1,
	}
}
