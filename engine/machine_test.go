package engine_test

import (
	"errors"
	"testing"

	"github.com/Jacob-Lockwood/uiua/engine"
	uerr "github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// mustRun evaluates instructions on the default table and fails the test on
// error.
func mustRun(t *testing.T, initial []engine.Value, instrs ...engine.Instruction) []engine.Value {
	t.Helper()
	out, err := engine.Evaluate(engine.DefaultTable(), instrs, initial)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return out
}

// topArray returns the top of a result stack as an array.
func topArray(t *testing.T, stack []engine.Value) *value.Array {
	t.Helper()
	if len(stack) == 0 {
		t.Fatal("empty result stack")
	}
	a, ok := stack[len(stack)-1].(*value.Array)
	if !ok {
		t.Fatalf("top of stack is %T, want array", stack[len(stack)-1])
	}
	return a
}

func TestEvaluateLiteralPush(t *testing.T) {
	out := mustRun(t, nil, engine.Push(value.FromNums(1, 2, 3)))
	if len(out) != 1 {
		t.Fatalf("stack depth = %d, want 1", len(out))
	}
	if !value.Equal(topArray(t, out), value.FromNums(1, 2, 3)) {
		t.Errorf("top = %v", out[0])
	}
}

func TestEvaluateInitialStack(t *testing.T) {
	initial := []engine.Value{value.FromNums(1, 2, 3)}
	out := mustRun(t, initial, engine.PushNum(1), engine.Prim("rotate"))
	if !value.Equal(topArray(t, out), value.FromNums(2, 3, 1)) {
		t.Errorf("top = %v", out[len(out)-1])
	}
}

func TestStackUnderflow(t *testing.T) {
	_, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{engine.Prim("add")}, nil)
	if !errors.Is(err, uerr.Kinded(uerr.KindStackUnderflow)) {
		t.Fatalf("expected stack underflow, got %v", err)
	}
}

func TestUnknownPrimitive(t *testing.T) {
	_, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{engine.Prim("frobnicate")}, nil)
	if !errors.Is(err, uerr.Kinded(uerr.KindNotFound)) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResourceLimit(t *testing.T) {
	instrs := []engine.Instruction{engine.PushNum(1000), engine.Prim("range")}
	_, err := engine.Evaluate(engine.DefaultTable(), instrs, nil, engine.WithLimit(100))
	if !errors.Is(err, uerr.Kinded(uerr.KindResource)) {
		t.Fatalf("expected resource exceeded, got %v", err)
	}

	// under the limit is fine
	if _, err := engine.Evaluate(engine.DefaultTable(), instrs, nil, engine.WithLimit(2000)); err != nil {
		t.Fatalf("within limit: %v", err)
	}
}

func TestFunctionPushAndCall(t *testing.T) {
	out := mustRun(t, nil,
		engine.Push(value.FromNums(1, 2, 3)),
		engine.Fn("negate", engine.Prim("neg")),
		engine.Call(),
	)
	if !value.Equal(topArray(t, out), value.FromNums(-1, -2, -3)) {
		t.Errorf("top = %v", out[len(out)-1])
	}
}

func TestCallNonFunction(t *testing.T) {
	_, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{
		engine.PushNum(1),
		engine.Call(),
	}, nil)
	if !errors.Is(err, uerr.Kinded(uerr.KindDomain)) {
		t.Fatalf("expected domain error, got %v", err)
	}
}

func TestOpaqueFunctionBody(t *testing.T) {
	// a body containing a modifier cannot compile structurally but still runs
	out := mustRun(t, nil,
		engine.Push(value.FromNums(2, 2, 3, 7)),
		engine.Fn("prod",
			engine.Fn("", engine.Prim("mul")),
			engine.Mod("reduce"),
			engine.Call(),
		),
		engine.Call(),
	)
	if !value.Equal(topArray(t, out), value.NewNum(84)) {
		t.Errorf("top = %v", out[len(out)-1])
	}
}

func TestFailedEvaluationLeavesNoResult(t *testing.T) {
	out, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{
		engine.PushNum(1),
		engine.Prim("add"), // underflow: one operand
	}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if out != nil {
		t.Errorf("failed evaluation returned a stack: %v", out)
	}
}
