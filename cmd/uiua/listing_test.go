package main

import (
	"errors"
	"testing"

	"github.com/Jacob-Lockwood/uiua/engine"
	"github.com/Jacob-Lockwood/uiua/value"
)

func TestParseListing(t *testing.T) {
	src := `
# doubles every element
push 1 2 3
fn double (
  push 2
  prim mul
)
call
`
	instrs, err := parseListing(src)
	if err != nil {
		t.Fatal(err)
	}
	out, err := engine.Evaluate(engine.DefaultTable(), instrs, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := out[len(out)-1].(*value.Array)
	if !value.Equal(got, value.FromNums(2, 4, 6)) {
		t.Errorf("result = %v, want [2 4 6]", got)
	}
}

func TestParseListingStrings(t *testing.T) {
	instrs, err := parseListing(`str "a # b"  # trailing comment`)
	if err != nil {
		t.Fatal(err)
	}
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	got := instrs[0].Imm.(engine.PushImm).Value
	if !value.Equal(got, value.FromString("a # b")) {
		t.Errorf("string literal = %v", got)
	}
}

func TestParseListingErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown directive", "drop 1"},
		{"bad number", "push 1 x"},
		{"unmatched close", ")"},
		{"missing open", "fn double"},
		{"bad string", `str unquoted`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseListing(tt.src); err == nil {
				t.Errorf("parseListing(%q) succeeded", tt.src)
			}
		})
	}
}

func TestParseListingOpenBlock(t *testing.T) {
	_, err := parseListing("fn (\nprim neg")
	if !errors.Is(err, errOpenBlock) {
		t.Fatalf("expected open-block sentinel, got %v", err)
	}
}
