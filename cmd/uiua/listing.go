package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Jacob-Lockwood/uiua/engine"
	"github.com/Jacob-Lockwood/uiua/value"
)

// errOpenBlock marks a listing that ends inside an unterminated fn body. The
// REPL uses it to keep reading lines instead of reporting a parse error.
var errOpenBlock = errors.New("unterminated fn body")

// parseListing decodes the textual instruction form, one instruction per
// line:
//
//	push 1 2 3     literal number or numeric vector
//	str "text"     literal string
//	prim add       primitive invoke
//	mod reduce     modifier apply
//	call           call the function on top of the stack
//	fn name (      function literal; the body runs until the matching )
//	  prim mul
//	)
//
// The name after fn is optional. '#' starts a comment outside string
// literals; blank lines are ignored.
func parseListing(src string) ([]engine.Instruction, error) {
	p := &listingParser{lines: strings.Split(src, "\n")}
	instrs, err := p.block(false)
	if err != nil {
		return nil, err
	}
	return instrs, nil
}

type listingParser struct {
	lines []string
	pos   int
}

func (p *listingParser) block(nested bool) ([]engine.Instruction, error) {
	var out []engine.Instruction
	for p.pos < len(p.lines) {
		lineNo := p.pos + 1
		line := strings.TrimSpace(stripComment(p.lines[p.pos]))
		p.pos++
		if line == "" {
			continue
		}
		if line == ")" {
			if !nested {
				return nil, fmt.Errorf("line %d: unmatched )", lineNo)
			}
			return out, nil
		}

		op, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch op {
		case "push":
			a, err := parseNums(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			out = append(out, engine.Push(a))

		case "str":
			s, err := strconv.Unquote(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad string literal %s", lineNo, rest)
			}
			out = append(out, engine.PushStr(s))

		case "prim":
			if rest == "" {
				return nil, fmt.Errorf("line %d: prim requires a name", lineNo)
			}
			out = append(out, engine.Prim(rest))

		case "mod":
			if rest == "" {
				return nil, fmt.Errorf("line %d: mod requires a name", lineNo)
			}
			out = append(out, engine.Mod(rest))

		case "call":
			out = append(out, engine.Call())

		case "fn":
			if !strings.HasSuffix(rest, "(") {
				return nil, fmt.Errorf("line %d: fn requires an opening (", lineNo)
			}
			name := strings.TrimSpace(strings.TrimSuffix(rest, "("))
			body, err := p.block(true)
			if err != nil {
				return nil, err
			}
			out = append(out, engine.Fn(name, body...))

		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNo, op)
		}
	}
	if nested {
		return nil, errOpenBlock
	}
	return out, nil
}

// stripComment removes a trailing '#' comment, leaving '#' inside string
// literals alone.
func stripComment(line string) string {
	inStr := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inStr {
				i++
			}
		case '"':
			inStr = !inStr
		case '#':
			if !inStr {
				return line[:i]
			}
		}
	}
	return line
}

func parseNums(s string) (*value.Array, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("push requires at least one number")
	}
	nums := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		nums[i] = v
	}
	if len(nums) == 1 {
		return value.NewNum(nums[0]), nil
	}
	return value.FromNums(nums...), nil
}
