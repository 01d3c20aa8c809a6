package engine

import (
	"strings"

	"github.com/Jacob-Lockwood/uiua/errors"
	"github.com/Jacob-Lockwood/uiua/value"
)

// A template is an ordered alternation of literal text and field
// placeholders. The textual form uses '_' for a placeholder and "__" for a
// literal underscore; this syntax is a compatibility contract with existing
// idiom text. Internally the template is the n+1 literals surrounding its n
// fields, any of which may be empty.
type template struct {
	lits []string
}

type savedTemplate struct{ t template }

const placeholder = '_'

// parseTemplate decodes the textual template form.
func parseTemplate(s string) template {
	var (
		lits []string
		cur  strings.Builder
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != placeholder {
			cur.WriteRune(runes[i])
			continue
		}
		if i+1 < len(runes) && runes[i+1] == placeholder {
			cur.WriteRune(placeholder)
			i++
			continue
		}
		lits = append(lits, cur.String())
		cur.Reset()
	}
	lits = append(lits, cur.String())
	return template{lits: lits}
}

// fields returns the number of field placeholders.
func (t template) fields() int { return len(t.lits) - 1 }

// separator returns the repeated interior literal and true when the template
// is of the repeating form "_<sep>_...": empty outer literals and identical
// non-empty interior ones. A repeating template generalizes to any field
// count, which is how a scalar separator joins or splits N fields.
func (t template) separator() (string, bool) {
	if t.fields() < 2 || t.lits[0] != "" || t.lits[len(t.lits)-1] != "" {
		return "", false
	}
	sep := t.lits[1]
	if sep == "" {
		return "", false
	}
	for _, lit := range t.lits[1 : len(t.lits)-1] {
		if lit != sep {
			return "", false
		}
	}
	return sep, true
}

// join interleaves literals and field texts into one string.
func (t template) join(fields []string) (string, error) {
	lits := t.lits
	if len(fields) != t.fields() {
		sep, ok := t.separator()
		if !ok {
			return "", errors.New(errors.PhaseFormat, errors.KindFormatMismatch).
				Detail("template has %d field(s), got %d", t.fields(), len(fields)).
				Pos(0).
				Build()
		}
		return strings.Join(fields, sep), nil
	}
	var b strings.Builder
	for i, f := range fields {
		b.WriteString(lits[i])
		b.WriteString(f)
	}
	b.WriteString(lits[len(lits)-1])
	return b.String(), nil
}

// split is join's inverse: literals are matched greedily left to right as
// exact substrings and the text between consecutive matches becomes the
// fields. A literal that cannot be located at its expected position fails
// with FormatMismatch naming the template position.
func (t template) split(s string) ([]string, error) {
	if sep, ok := t.separator(); ok {
		return strings.Split(s, sep), nil
	}

	if !strings.HasPrefix(s, t.lits[0]) {
		return nil, errors.FormatMismatch(0, t.lits[0], "does not start the subject")
	}
	pos := len(t.lits[0])
	fields := make([]string, 0, t.fields())
	for i := 1; i < len(t.lits); i++ {
		lit := t.lits[i]
		if lit == "" {
			if i != len(t.lits)-1 {
				return nil, errors.FormatMismatch(i, lit, "is empty between fields")
			}
			fields = append(fields, s[pos:])
			pos = len(s)
			continue
		}
		idx := strings.Index(s[pos:], lit)
		if idx < 0 {
			return nil, errors.FormatMismatch(i, lit, "not found in subject")
		}
		fields = append(fields, s[pos:pos+idx])
		pos += idx + len(lit)
	}
	if pos != len(s) {
		return nil, errors.FormatMismatch(len(t.lits)-1, t.lits[len(t.lits)-1], "leaves trailing text")
	}
	return fields, nil
}

// registerFormat adds the bidirectional template codec. join and split are
// operand-paired inverses of each other (the template constant carries
// over), wired in linkInverses; their do/undo pairs thread the template
// through under.
func (t *Table) registerFormat() {
	join := t.register("join", 2, 1, func(m *Machine) error {
		tmpl, fields, err := popTemplateAnd(m)
		if err != nil {
			return err
		}
		s, err := tmpl.join(fieldTexts(fields))
		if err != nil {
			return err
		}
		m.Push(value.FromString(s))
		return nil
	})
	join.undo = &undoPair{
		do: func(m *Machine) error {
			tmpl, fields, err := popTemplateAnd(m)
			if err != nil {
				return err
			}
			s, err := tmpl.join(fieldTexts(fields))
			if err != nil {
				return err
			}
			m.saveCtx(savedTemplate{t: tmpl})
			m.Push(value.FromString(s))
			return nil
		},
		undo: func(m *Machine) error {
			ctx, err := popCtxAs[savedTemplate](m)
			if err != nil {
				return err
			}
			subject, err := m.popArray()
			if err != nil {
				return err
			}
			fields, err := ctx.t.split(subject.Text())
			if err != nil {
				return err
			}
			m.Push(boxFields(fields))
			return nil
		},
	}

	split := t.register("split", 2, 1, func(m *Machine) error {
		tmpl, subject, err := popTemplateAnd(m)
		if err != nil {
			return err
		}
		fields, err := tmpl.split(subject.Text())
		if err != nil {
			return err
		}
		m.Push(boxFields(fields))
		return nil
	})
	split.undo = &undoPair{
		do: func(m *Machine) error {
			tmpl, subject, err := popTemplateAnd(m)
			if err != nil {
				return err
			}
			fields, err := tmpl.split(subject.Text())
			if err != nil {
				return err
			}
			m.saveCtx(savedTemplate{t: tmpl})
			m.Push(boxFields(fields))
			return nil
		},
		undo: func(m *Machine) error {
			ctx, err := popCtxAs[savedTemplate](m)
			if err != nil {
				return err
			}
			fields, err := m.popArray()
			if err != nil {
				return err
			}
			s, err := ctx.t.join(fieldTexts(fields))
			if err != nil {
				return err
			}
			m.Push(value.FromString(s))
			return nil
		},
	}
}

// popTemplateAnd pops the template argument (on top) and the array below it.
func popTemplateAnd(m *Machine) (template, *value.Array, error) {
	tmplArr, err := m.popArray()
	if err != nil {
		return template{}, nil, err
	}
	a, err := m.popArray()
	if err != nil {
		return template{}, nil, err
	}
	return parseTemplate(tmplArr.Text()), a, nil
}

// fieldTexts converts an array into its ordered field texts: a string or
// scalar is one field, otherwise each row is one, unboxed when boxed.
func fieldTexts(a *value.Array) []string {
	if a.Rank() == 0 || a.IsCharVector() {
		return []string{a.Text()}
	}
	out := make([]string, 0, a.RowCount())
	for i := 0; i < a.RowCount(); i++ {
		row, _ := a.Row(i)
		if row.Rank() == 0 {
			if box, ok := row.Elems()[0].(value.Box); ok {
				out = append(out, box.Array.Text())
				continue
			}
		}
		out = append(out, row.Text())
	}
	return out
}

// boxFields wraps field strings as a vector of boxed strings.
func boxFields(fields []string) *value.Array {
	elems := make([]value.Elem, len(fields))
	for i, f := range fields {
		elems[i] = value.Box{Array: value.FromString(f)}
	}
	return value.NewVector(elems)
}
