package uiua

import (
	"github.com/Jacob-Lockwood/uiua/engine"
)

// Evaluate runs an instruction sequence against the default primitive table,
// seeded with the given initial stack (bottom first), and returns the final
// stack. Options configure per-evaluation limits and logging.
func Evaluate(instrs []engine.Instruction, initial []engine.Value, opts ...engine.Option) ([]engine.Value, error) {
	return engine.Evaluate(engine.DefaultTable(), instrs, initial, opts...)
}
