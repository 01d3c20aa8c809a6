package engine_test

import (
	"errors"
	"testing"

	"github.com/Jacob-Lockwood/uiua/engine"
	uerr "github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

func TestPervasiveArgumentOrder(t *testing.T) {
	tests := []struct {
		name string
		prim string
		b, a float64
		want float64
	}{
		{"sub", "sub", 10, 3, 7},
		{"div", "div", 10, 4, 2.5},
		{"pow", "pow", 2, 3, 8},
		{"mod", "mod", 10, 3, 1},
		{"lt true", "lt", 3, 5, 1},
		{"lt false", "lt", 5, 3, 0},
		{"min", "min", 2, 5, 2},
		{"max", "max", 2, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, nil, engine.PushNum(tt.b), engine.PushNum(tt.a), engine.Prim(tt.prim))
			if got := topArray(t, out); !value.Equal(got, value.NewNum(tt.want)) {
				t.Errorf("%s(%v, %v) = %v, want %v", tt.prim, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPervasiveBroadcast(t *testing.T) {
	matrix, _ := value.Reshape(value.FromNums(1, 2, 3, 4), value.Shape{2, 2})
	out := mustRun(t, nil,
		engine.Push(matrix),
		engine.PushNum(2),
		engine.Prim("mul"),
	)
	want, _ := value.Reshape(value.FromNums(2, 4, 6, 8), value.Shape{2, 2})
	if got := topArray(t, out); !value.Equal(got, want) {
		t.Errorf("scaling = %v", got)
	}
}

func TestPervasiveShapeMismatch(t *testing.T) {
	_, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{
		engine.Push(value.FromNums(1, 2)),
		engine.Push(value.FromNums(1, 2, 3)),
		engine.Prim("add"),
	}, nil)
	if !errors.Is(err, uerr.Kinded(uerr.KindShapeMismatch)) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
}

func TestCharArithmetic(t *testing.T) {
	out := mustRun(t, nil, engine.PushStr("abc"), engine.PushNum(1), engine.Prim("add"))
	if got := topArray(t, out); !value.Equal(got, value.FromString("bcd")) {
		t.Errorf("char shift = %v", got)
	}

	out = mustRun(t, nil, engine.PushStr("b"), engine.PushStr("a"), engine.Prim("sub"))
	want := value.NewVector([]value.Elem{value.Num(1)})
	if got := topArray(t, out); !value.Equal(got, want) {
		t.Errorf("char distance = %v", got)
	}

	_, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{
		engine.PushStr("ab"), engine.PushStr("cd"), engine.Prim("mul"),
	}, nil)
	if !errors.Is(err, uerr.Kinded(uerr.KindDomain)) {
		t.Fatalf("char mul should be a domain error, got %v", err)
	}
}

func TestArrayPrims(t *testing.T) {
	v := value.FromNums(1, 2, 3, 4, 5)
	matrix, _ := value.Reshape(value.FromNums(1, 2, 3, 4, 5, 6), value.Shape{2, 3})

	tests := []struct {
		name   string
		instrs []engine.Instruction
		want   *value.Array
	}{
		{"len", []engine.Instruction{engine.Push(v), engine.Prim("len")}, value.NewNum(5)},
		{"shape", []engine.Instruction{engine.Push(matrix), engine.Prim("shape")}, value.FromNums(2, 3)},
		{"first", []engine.Instruction{engine.Push(matrix), engine.Prim("first")}, value.FromNums(1, 2, 3)},
		{"reverse", []engine.Instruction{engine.Push(v), engine.Prim("reverse")}, value.FromNums(5, 4, 3, 2, 1)},
		{"deshape", []engine.Instruction{engine.Push(matrix), engine.Prim("deshape")}, value.FromNums(1, 2, 3, 4, 5, 6)},
		{"rotate", []engine.Instruction{engine.Push(v), engine.PushNum(2), engine.Prim("rotate")}, value.FromNums(3, 4, 5, 1, 2)},
		{"take", []engine.Instruction{engine.Push(v), engine.PushNum(3), engine.Prim("take")}, value.FromNums(1, 2, 3)},
		{"drop", []engine.Instruction{engine.Push(v), engine.PushNum(3), engine.Prim("drop")}, value.FromNums(4, 5)},
		{"pick", []engine.Instruction{engine.Push(matrix), engine.PushNum(1), engine.Prim("pick")}, value.FromNums(4, 5, 6)},
		{"range", []engine.Instruction{engine.PushNum(4), engine.Prim("range")}, value.FromNums(0, 1, 2, 3)},
		{"box-unbox", []engine.Instruction{engine.Push(v), engine.Prim("box"), engine.Prim("unbox")}, v},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, nil, tt.instrs...)
			if got := topArray(t, out); !value.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReshapePrim(t *testing.T) {
	out := mustRun(t, nil,
		engine.Push(value.FromNums(1, 2, 3, 4, 5, 6)),
		engine.Push(value.FromNums(2, 3)),
		engine.Prim("reshape"),
	)
	if got := topArray(t, out); !got.Shape().Eq(value.Shape{2, 3}) {
		t.Errorf("shape = %v", got.Shape())
	}

	_, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{
		engine.Push(value.FromNums(1, 2, 3)),
		engine.Push(value.FromNums(2, 2)),
		engine.Prim("reshape"),
	}, nil)
	if !errors.Is(err, uerr.Kinded(uerr.KindShapeMismatch)) {
		t.Fatalf("strict reshape should fail, got %v", err)
	}
}

func TestRangeWithShape(t *testing.T) {
	out := mustRun(t, nil, engine.Push(value.FromNums(2, 3)), engine.Prim("range"))
	got := topArray(t, out)
	if !got.Shape().Eq(value.Shape{2, 3}) {
		t.Fatalf("shape = %v", got.Shape())
	}
	if !value.Equal(value.Deshape(got), value.FromNums(0, 1, 2, 3, 4, 5)) {
		t.Errorf("range = %v", got)
	}
}

func TestEqualRows(t *testing.T) {
	tests := []struct {
		name string
		a    *value.Array
		want float64
	}{
		{"all equal", value.FromNums(5, 5, 5), 1},
		{"distinct", value.FromNums(1, 2, 3), 0},
		{"single", value.FromNums(9), 1},
		{"empty", value.FromNums(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, nil, engine.Push(tt.a), engine.Prim("equalrows"))
			if got := topArray(t, out); !value.Equal(got, value.NewNum(tt.want)) {
				t.Errorf("equalrows(%v) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestEqualRowsMatrix(t *testing.T) {
	same, _ := value.Reshape(value.FromNums(5, 6, 5, 6, 5, 6), value.Shape{3, 2})
	out := mustRun(t, nil, engine.Push(same), engine.Prim("equalrows"))
	if got := topArray(t, out); !value.Equal(got, value.NewNum(1)) {
		t.Errorf("identical rows = %v, want 1", got)
	}

	diff, _ := value.Reshape(value.FromNums(5, 6, 5, 7, 5, 6), value.Shape{3, 2})
	out = mustRun(t, nil, engine.Push(diff), engine.Prim("equalrows"))
	if got := topArray(t, out); !value.Equal(got, value.NewNum(0)) {
		t.Errorf("differing rows = %v, want 0", got)
	}
}

func TestMatch(t *testing.T) {
	out := mustRun(t, nil,
		engine.Push(value.FromNums(1, 2)),
		engine.Push(value.FromNums(1, 2)),
		engine.Prim("match"),
	)
	if got := topArray(t, out); !value.Equal(got, value.NewNum(1)) {
		t.Errorf("match = %v", got)
	}
}

func TestPrimes(t *testing.T) {
	out := mustRun(t, nil, engine.PushNum(84), engine.Prim("primes"))
	if got := topArray(t, out); !value.Equal(got, value.FromNums(2, 2, 3, 7)) {
		t.Errorf("primes(84) = %v", got)
	}

	out = mustRun(t, nil, engine.PushNum(1), engine.Prim("primes"))
	if got := topArray(t, out); got.Len() != 0 {
		t.Errorf("primes(1) = %v, want empty", got)
	}

	// elementwise over an array, boxed per element
	out = mustRun(t, nil, engine.Push(value.FromNums(4, 6)), engine.Prim("primes"))
	want := value.NewVector([]value.Elem{
		value.Box{Array: value.FromNums(2, 2)},
		value.Box{Array: value.FromNums(2, 3)},
	})
	if got := topArray(t, out); !value.Equal(got, want) {
		t.Errorf("primes([4 6]) = %v", got)
	}

	_, err := engine.Evaluate(engine.DefaultTable(), []engine.Instruction{
		engine.PushNum(-3), engine.Prim("primes"),
	}, nil)
	if !errors.Is(err, uerr.Kinded(uerr.KindDomain)) {
		t.Fatalf("primes(-3) should be a domain error, got %v", err)
	}
}

func TestProductInvertsPrimes(t *testing.T) {
	for _, n := range []float64{2, 12, 84, 97, 360} {
		out := mustRun(t, nil, engine.PushNum(n), engine.Prim("primes"), engine.Prim("product"))
		if got := topArray(t, out); !value.Equal(got, value.NewNum(n)) {
			t.Errorf("product(primes(%v)) = %v", n, got)
		}
	}
}

func TestStackPrims(t *testing.T) {
	out := mustRun(t, nil, engine.PushNum(1), engine.PushNum(2), engine.Prim("flip"))
	if len(out) != 2 || !value.Equal(out[0].(*value.Array), value.NewNum(2)) {
		t.Errorf("flip bottom = %v", out[0])
	}

	out = mustRun(t, nil, engine.PushNum(7), engine.Prim("dup"))
	if len(out) != 2 {
		t.Fatalf("dup depth = %d", len(out))
	}

	out = mustRun(t, nil, engine.PushNum(1), engine.PushNum(2), engine.Prim("pop"))
	if len(out) != 1 || !value.Equal(out[0].(*value.Array), value.NewNum(1)) {
		t.Errorf("pop result = %v", out)
	}
}
