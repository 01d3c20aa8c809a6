package value_test

import (
	"errors"
	"testing"

	uerr "github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

func numAdd(a, b value.Elem) (value.Elem, error) {
	return value.Num(a.(value.Num) + b.(value.Num)), nil
}

func numMul(a, b value.Elem) (value.Elem, error) {
	return value.Num(a.(value.Num) * b.(value.Num)), nil
}

func TestPervadeSameShape(t *testing.T) {
	got, err := value.Pervade(numAdd, value.FromNums(1, 2, 3), value.FromNums(10, 20, 30))
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.FromNums(11, 22, 33)) {
		t.Errorf("got %v", got)
	}
}

func TestPervadeScalar(t *testing.T) {
	m, _ := value.Reshape(value.FromNums(1, 2, 3, 4), value.Shape{2, 2})

	got, err := value.Pervade(numMul, value.NewNum(2), m)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := value.Reshape(value.FromNums(2, 4, 6, 8), value.Shape{2, 2})
	if !value.Equal(got, want) {
		t.Errorf("scaling by 2 = %v, want %v", got, want)
	}

	// downsampling factor on the other side
	got, err = value.Pervade(numMul, m, value.NewNum(0.5))
	if err != nil {
		t.Fatal(err)
	}
	want, _ = value.Reshape(value.FromNums(0.5, 1, 1.5, 2), value.Shape{2, 2})
	if !value.Equal(got, want) {
		t.Errorf("scaling by 0.5 = %v, want %v", got, want)
	}
}

func TestPervadeLeadingAxis(t *testing.T) {
	// Each element of the rank-1 factor scales a whole row of the matrix.
	m, _ := value.Reshape(value.FromNums(1, 2, 3, 4, 5, 6), value.Shape{2, 3})

	got, err := value.Pervade(numMul, value.FromNums(10, 100), m)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := value.Reshape(value.FromNums(10, 20, 30, 400, 500, 600), value.Shape{2, 3})
	if !value.Equal(got, want) {
		t.Errorf("row scaling = %v, want %v", got, want)
	}

	// argument order is preserved when the higher-rank array is on the left
	got, err = value.Pervade(numAdd, m, value.FromNums(10, 100))
	if err != nil {
		t.Fatal(err)
	}
	want, _ = value.Reshape(value.FromNums(11, 12, 13, 104, 105, 106), value.Shape{2, 3})
	if !value.Equal(got, want) {
		t.Errorf("flipped row add = %v, want %v", got, want)
	}
}

func TestPervadeShapeMismatch(t *testing.T) {
	m, _ := value.Reshape(value.FromNums(1, 2, 3, 4, 5, 6), value.Shape{2, 3})

	tests := []struct {
		name string
		a, b *value.Array
	}{
		{"vectors of different length", value.FromNums(1, 2), value.FromNums(1, 2, 3)},
		{"bad leading dimension", value.FromNums(1, 2, 3), m},
		{"equal rank different shape", m, value.Range(value.Shape{3, 2})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := value.Pervade(numAdd, tt.a, tt.b); !errors.Is(err, uerr.Kinded(uerr.KindShapeMismatch)) {
				t.Errorf("expected shape mismatch, got %v", err)
			}
		})
	}
}

func TestPervadeBoxes(t *testing.T) {
	// Scaling recurses into nested sub-arrays.
	nested := value.NewVector([]value.Elem{
		value.Box{Array: value.FromNums(1, 2)},
		value.Box{Array: value.FromNums(3)},
	})
	got, err := value.Pervade(numMul, value.NewNum(2), nested)
	if err != nil {
		t.Fatal(err)
	}
	want := value.NewVector([]value.Elem{
		value.Box{Array: value.FromNums(2, 4)},
		value.Box{Array: value.FromNums(6)},
	})
	if !value.Equal(got, want) {
		t.Errorf("nested scaling = %v, want %v", got, want)
	}
}

func TestPervadeUnary(t *testing.T) {
	neg := func(e value.Elem) (value.Elem, error) {
		return value.Num(-e.(value.Num)), nil
	}
	got, err := value.PervadeUnary(neg, value.FromNums(1, -2, 3))
	if err != nil || !value.Equal(got, value.FromNums(-1, 2, -3)) {
		t.Errorf("unary pervade = %v, %v", got, err)
	}

	boxed := value.Boxed(value.FromNums(1, 2))
	got, err = value.PervadeUnary(neg, boxed)
	if err != nil || !value.Equal(got, value.Boxed(value.FromNums(-1, -2))) {
		t.Errorf("boxed unary pervade = %v, %v", got, err)
	}
}

func TestPervadeEmpty(t *testing.T) {
	got, err := value.Pervade(numAdd, value.FromNums(), value.FromNums())
	if err != nil || got.Len() != 0 {
		t.Errorf("empty pervade = %v, %v", got, err)
	}
}
