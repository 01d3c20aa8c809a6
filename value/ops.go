package value

import "github.com/Jacob-Lockwood/uiua/errors"

// Rotate returns the array with its rows rotated left by n; negative n
// rotates right. Rotating a scalar or an empty array is the identity.
func Rotate(n int, a *Array) *Array {
	rows := a.RowCount()
	if a.Rank() == 0 || rows == 0 {
		return a
	}
	n = ((n % rows) + rows) % rows
	if n == 0 {
		return a
	}
	rl := a.shape.RowLen()
	cut := n * rl
	data := make([]Elem, 0, len(a.data))
	data = append(data, a.data[cut:]...)
	data = append(data, a.data[:cut]...)
	return &Array{shape: a.shape.Clone(), data: data}
}

// Reverse returns the array with its rows in reverse order.
func Reverse(a *Array) *Array {
	if a.Rank() == 0 {
		return a
	}
	rows := a.RowCount()
	rl := a.shape.RowLen()
	data := make([]Elem, 0, len(a.data))
	for i := rows - 1; i >= 0; i-- {
		data = append(data, a.data[i*rl:(i+1)*rl]...)
	}
	return &Array{shape: a.shape.Clone(), data: data}
}

// Take returns the first n rows of the array; negative n takes from the end.
// Fails with a domain error when |n| exceeds the row count.
func Take(n int, a *Array) (*Array, error) {
	rows := a.RowCount()
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if a.Rank() == 0 || abs > rows {
		return nil, errors.New(errors.PhaseExec, errors.KindDomain).
			Prim("take").
			Detail("cannot take %d row(s) from %d", n, rows).
			Build()
	}
	rl := a.shape.RowLen()
	data := a.data[:abs*rl]
	if n < 0 {
		data = a.data[(rows-abs)*rl:]
	}
	return &Array{shape: a.shape.WithRows(abs), data: data}, nil
}

// Drop returns the array without its first n rows; negative n drops from the
// end. Dropping more rows than exist yields an empty array.
func Drop(n int, a *Array) (*Array, error) {
	if a.Rank() == 0 {
		return nil, errors.Domain(errors.PhaseExec, "drop", "cannot drop rows from a scalar")
	}
	rows := a.RowCount()
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs > rows {
		abs = rows
	}
	rl := a.shape.RowLen()
	data := a.data[abs*rl:]
	if n < 0 {
		data = a.data[:(rows-abs)*rl]
	}
	return &Array{shape: a.shape.WithRows(rows - abs), data: data}, nil
}

// Concat joins two arrays along the leading axis. The row shapes must agree;
// a scalar or single row concatenates as one row. Fails with ShapeMismatch
// when the row shapes differ.
func Concat(a, b *Array) (*Array, error) {
	ra, rb := a.rowsView(), b.rowsView()
	if !ra.shape.RowShape().Eq(rb.shape.RowShape()) {
		return nil, errors.ShapeMismatch(errors.PhaseExec,
			ra.shape.RowShape().String(), rb.shape.RowShape().String())
	}
	data := make([]Elem, 0, len(ra.data)+len(rb.data))
	data = append(data, ra.data...)
	data = append(data, rb.data...)
	shape := ra.shape.WithRows(ra.RowCount() + rb.RowCount())
	return &Array{shape: shape, data: data}, nil
}

// rowsView lifts a scalar to a one-row vector so it can take part in
// row-wise assembly; arrays of rank >= 1 pass through.
func (a *Array) rowsView() *Array {
	if a.Rank() > 0 {
		return a
	}
	return &Array{shape: Shape{1}, data: a.data}
}

// Couple stacks two arrays of identical shape along a new leading axis.
func Couple(a, b *Array) (*Array, error) {
	if !a.shape.Eq(b.shape) {
		return nil, errors.ShapeMismatch(errors.PhaseExec, a.shape.String(), b.shape.String())
	}
	data := make([]Elem, 0, len(a.data)+len(b.data))
	data = append(data, a.data...)
	data = append(data, b.data...)
	shape := append(Shape{2}, a.shape...)
	return &Array{shape: shape, data: data}, nil
}

// Deshape flattens the array into a vector of all its elements.
func Deshape(a *Array) *Array {
	return &Array{shape: Shape{len(a.data)}, data: a.data}
}
