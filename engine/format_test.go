package engine

import (
	stderrors "errors"
	"testing"

	uerr "github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		src  string
		lits []string
	}{
		{"_,_", []string{"", ",", ""}},
		{"<_>", []string{"<", ">"}},
		{"_ - _ - _", []string{"", " - ", " - ", ""}},
		{"a__b_c", []string{"a_b", "c"}},
		{"plain", []string{"plain"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		got := parseTemplate(tt.src)
		if len(got.lits) != len(tt.lits) {
			t.Errorf("parseTemplate(%q).lits = %v, want %v", tt.src, got.lits, tt.lits)
			continue
		}
		for i := range got.lits {
			if got.lits[i] != tt.lits[i] {
				t.Errorf("parseTemplate(%q).lits[%d] = %q, want %q", tt.src, i, got.lits[i], tt.lits[i])
			}
		}
	}
}

func TestTemplateSeparator(t *testing.T) {
	tests := []struct {
		src string
		sep string
		ok  bool
	}{
		{"_,_", ",", true},
		{"_ - _ - _", " - ", true},
		{"<_>", "", false},
		{"_", "", false},
		{"__,_", "", false}, // escaped underscore leaves one field
	}
	for _, tt := range tests {
		sep, ok := parseTemplate(tt.src).separator()
		if sep != tt.sep || ok != tt.ok {
			t.Errorf("separator(%q) = %q, %v; want %q, %v", tt.src, sep, ok, tt.sep, tt.ok)
		}
	}
}

func TestTemplateJoinSplit(t *testing.T) {
	tests := []struct {
		tmpl   string
		fields []string
		text   string
	}{
		{"_,_", []string{"a", "bc"}, "a,bc"},
		// the repeating form stretches to any field count
		{"_,_", []string{"a", "bc", "d"}, "a,bc,d"},
		{"_ - _", []string{"1", "2", "3"}, "1 - 2 - 3"},
		{"<_>", []string{"x"}, "<x>"},
		{"_=_;", []string{"key", "val"}, "key=val;"},
		{"_,_", []string{"", ""}, ","},
	}
	for _, tt := range tests {
		tmpl := parseTemplate(tt.tmpl)
		text, err := tmpl.join(tt.fields)
		if err != nil {
			t.Errorf("join(%q, %v): %v", tt.tmpl, tt.fields, err)
			continue
		}
		if text != tt.text {
			t.Errorf("join(%q, %v) = %q, want %q", tt.tmpl, tt.fields, text, tt.text)
		}
		back, err := tmpl.split(text)
		if err != nil {
			t.Errorf("split(%q, %q): %v", tt.tmpl, text, err)
			continue
		}
		if len(back) != len(tt.fields) {
			t.Errorf("split(%q, %q) = %v, want %v", tt.tmpl, text, back, tt.fields)
			continue
		}
		for i := range back {
			if back[i] != tt.fields[i] {
				t.Errorf("split(%q, %q)[%d] = %q, want %q", tt.tmpl, text, i, back[i], tt.fields[i])
			}
		}
	}
}

func TestTemplateSplitGreedy(t *testing.T) {
	// each literal matches at its earliest position
	fields, err := parseTemplate("<_:_>").split("<a:b:c>")
	if err != nil {
		t.Fatal(err)
	}
	if fields[0] != "a" || fields[1] != "b:c" {
		t.Errorf("greedy split = %v, want [a b:c]", fields)
	}
}

func TestTemplateSplitMismatch(t *testing.T) {
	tests := []struct {
		tmpl string
		text string
		pos  int
	}{
		{"<_>", "x>", 0},   // missing prefix
		{"<_>", "<x", 1},   // missing closer
		{"_=_;", "k=v", 2}, // missing trailing literal
	}
	for _, tt := range tests {
		_, err := parseTemplate(tt.tmpl).split(tt.text)
		var e *uerr.Error
		if !stderrors.As(err, &e) || e.Kind != uerr.KindFormatMismatch {
			t.Errorf("split(%q, %q): expected format mismatch, got %v", tt.tmpl, tt.text, err)
			continue
		}
		if e.Pos != tt.pos {
			t.Errorf("split(%q, %q): pos = %d, want %d", tt.tmpl, tt.text, e.Pos, tt.pos)
		}
	}
}

func TestJoinSplitPrims(t *testing.T) {
	// join pops the template from the top, the fields below it
	out, err := Evaluate(DefaultTable(), []Instruction{
		Push(boxFields([]string{"usr", "local", "bin"})),
		PushStr("_/_"),
		Prim("join"),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := out[len(out)-1].(*value.Array)
	if !value.Equal(got, value.FromString("usr/local/bin")) {
		t.Errorf("join = %v", got)
	}

	out, err = Evaluate(DefaultTable(), []Instruction{
		PushStr("usr/local/bin"),
		PushStr("_/_"),
		Prim("split"),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got = out[len(out)-1].(*value.Array)
	want := boxFields([]string{"usr", "local", "bin"})
	if !value.Equal(got, want) {
		t.Errorf("split = %v, want %v", got, want)
	}
}

func TestSplitIsJoinInverse(t *testing.T) {
	// invert(join template) splits with the same template
	out, err := Evaluate(DefaultTable(), []Instruction{
		PushStr("a,b,c"),
		Fn("", PushStr("_,_"), Prim("join")),
		Mod("invert"),
		Call(),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := out[len(out)-1].(*value.Array)
	want := boxFields([]string{"a", "b", "c"})
	if !value.Equal(got, want) {
		t.Errorf("invert(join) = %v, want %v", got, want)
	}
}

func TestUnderSplitEditsFields(t *testing.T) {
	// split, reverse the fields, join back with the same template
	out, err := Evaluate(DefaultTable(), []Instruction{
		PushStr("a-b-c"),
		Fn("", PushStr("_-_"), Prim("split")),
		Fn("", Prim("reverse")),
		Mod("under"),
		Call(),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := out[len(out)-1].(*value.Array)
	if !value.Equal(got, value.FromString("c-b-a")) {
		t.Errorf("under split = %v, want \"c-b-a\"", got)
	}
}

func TestJoinFieldCountMismatch(t *testing.T) {
	_, err := Evaluate(DefaultTable(), []Instruction{
		Push(boxFields([]string{"a", "b", "c"})),
		PushStr("<_>"),
		Prim("join"),
	}, nil)
	if !stderrors.Is(err, uerr.Kinded(uerr.KindFormatMismatch)) {
		t.Fatalf("expected format mismatch, got %v", err)
	}
}
