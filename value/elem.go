package value

import (
	"math"
	"strconv"
	"strings"
)

// Elem is one array element: a number, a character, or a boxed sub-array.
// The union is closed; consumers switch exhaustively over the three types.
type Elem interface {
	isElem()
	appendText(b *strings.Builder)
}

// Num is a numeric element.
type Num float64

// Char is a character element.
type Char rune

// Box is a boxed sub-array element.
type Box struct {
	Array *Array
}

func (Num) isElem()  {}
func (Char) isElem() {}
func (Box) isElem()  {}

func (n Num) appendText(b *strings.Builder) {
	b.WriteString(formatNum(float64(n)))
}

func (c Char) appendText(b *strings.Builder) {
	b.WriteRune(rune(c))
}

func (x Box) appendText(b *strings.Builder) {
	b.WriteString(x.Array.String())
}

// ElemEqual reports structural equality of two elements. Boxes compare their
// contents; a Num never equals a Char.
func ElemEqual(x, y Elem) bool {
	switch x := x.(type) {
	case Num:
		y, ok := y.(Num)
		return ok && x == y
	case Char:
		y, ok := y.(Char)
		return ok && x == y
	case Box:
		y, ok := y.(Box)
		return ok && Equal(x.Array, y.Array)
	}
	return false
}

// formatNum renders a number the way the display expects: integers without a
// decimal point, everything else in shortest round-trip form.
func formatNum(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
