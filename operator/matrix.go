// SPDX-License-Identifier: MIT

package operator

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/slhnet/hilbert"
)

// Matrix is a row-major dense matrix of Operator values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// Zero-sized matrices are valid (a 0-channel circuit has a 0×0 S).
// A Matrix is never mutated after construction.
type Matrix struct {
	r, c int        // number of rows and columns
	data []Operator // flat backing storage, length == r*c
}

// NewMatrix creates an r×c matrix filled with Zero.
// Stage 1 (Validate): ensure rows and cols ≥ 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c).
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opNewMatrix, ErrBadShape)
	}

	return filled(rows, cols, Zero()), nil
}

func filled(rows, cols int, v Operator) *Matrix {
	data := make([]Operator, rows*cols)
	for i := range data {
		data[i] = v
	}

	return &Matrix{r: rows, c: cols, data: data}
}

// FromRows builds a matrix from row slices. All rows must share one length.
// Complexity: O(r*c).
func FromRows(rows [][]Operator) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}
	c := len(rows[0])
	data := make([]Operator, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(opFromRows, errors.Wrapf(ErrBadShape, "row %d has %d columns, want %d", i, len(row), c))
		}
		for _, v := range row {
			if v == nil {
				v = Zero()
			}
			data = append(data, v)
		}
	}

	return &Matrix{r: len(rows), c: c, data: data}, nil
}

// MustFromRows is like FromRows but panics on error.
func MustFromRows(rows [][]Operator) *Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}

	return m
}

// Column builds an n×1 matrix.
func Column(vals ...Operator) *Matrix {
	data := make([]Operator, len(vals))
	for i, v := range vals {
		if v == nil {
			v = Zero()
		}
		data[i] = v
	}

	return &Matrix{r: len(vals), c: 1, data: data}
}

// ZeroMatrix returns an r×c matrix of Zero. Negative sizes are clamped to 0.
func ZeroMatrix(rows, cols int) *Matrix {
	return filled(max(rows, 0), max(cols, 0), Zero())
}

// IdentityMatrix returns the n×n identity.
func IdentityMatrix(n int) *Matrix {
	m := ZeroMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = One()
	}

	return m
}

// PermutationMatrix returns the matrix P with P[perm[i], i] = 1, routing
// input i to output perm[i]. perm must already be a valid permutation.
// Complexity: O(n²).
func PermutationMatrix(perm []int) *Matrix {
	n := len(perm)
	m := ZeroMatrix(n, n)
	for i, p := range perm {
		m.data[p*n+i] = One()
	}

	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.c }

// At retrieves the element at (row, col).
func (m *Matrix) At(row, col int) (Operator, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return nil, matrixErrorf(opAt, errors.Wrapf(ErrOutOfRange, "(%d,%d) in %dx%d", row, col, m.r, m.c))
	}

	return m.data[row*m.c+col], nil
}

// at is the unchecked accessor used by kernels that already validated shapes.
func (m *Matrix) at(row, col int) Operator { return m.data[row*m.c+col] }

// Mul returns a·b.
// Stage 1 (Validate): a.Cols must equal b.Rows.
// Stage 2 (Execute): naive triple loop; operands are non-commutative so
// the order a[i,k]·b[k,j] is preserved.
// Complexity: O(r·k·c) operator products.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.c != b.r {
		return nil, matrixErrorf(opMul, errors.Wrapf(ErrDimensionMismatch, "%dx%d · %dx%d", a.r, a.c, b.r, b.c))
	}
	out := ZeroMatrix(a.r, b.c)
	for i := 0; i < a.r; i++ {
		for j := 0; j < b.c; j++ {
			var acc Operator = Zero()
			for k := 0; k < a.c; k++ {
				x := a.at(i, k)
				y := b.at(k, j)
				if x.IsZero() || y.IsZero() {
					continue // skip structural zeros
				}
				acc = acc.Add(x.Mul(y))
			}
			out.data[i*out.c+j] = acc
		}
	}

	return out, nil
}

// Add returns the element-wise sum a+b.
// Complexity: O(r*c).
func Add(a, b *Matrix) (*Matrix, error) {
	if a.r != b.r || a.c != b.c {
		return nil, matrixErrorf(opAdd, errors.Wrapf(ErrDimensionMismatch, "%dx%d + %dx%d", a.r, a.c, b.r, b.c))
	}
	out := &Matrix{r: a.r, c: a.c, data: make([]Operator, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i].Add(b.data[i])
	}

	return out, nil
}

// Sub returns the element-wise difference a-b.
// Complexity: O(r*c).
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.r != b.r || a.c != b.c {
		return nil, matrixErrorf(opSub, errors.Wrapf(ErrDimensionMismatch, "%dx%d - %dx%d", a.r, a.c, b.r, b.c))
	}

	return Add(a, b.Scale(-1))
}

// Scale multiplies every element by c.
func (m *Matrix) Scale(c complex128) *Matrix {
	out := &Matrix{r: m.r, c: m.c, data: make([]Operator, len(m.data))}
	for i, v := range m.data {
		out.data[i] = v.Scale(c)
	}

	return out
}

// Adjoint returns the conjugate transpose.
// Complexity: O(r*c).
func (m *Matrix) Adjoint() *Matrix {
	out := &Matrix{r: m.c, c: m.r, data: make([]Operator, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*out.c+i] = m.at(i, j).Adjoint()
		}
	}

	return out
}

// Expand expands every element.
func (m *Matrix) Expand() *Matrix {
	out := &Matrix{r: m.r, c: m.c, data: make([]Operator, len(m.data))}
	for i, v := range m.data {
		out.data[i] = v.Expand()
	}

	return out
}

// Map applies f to every element.
func (m *Matrix) Map(f func(Operator) Operator) *Matrix {
	out := &Matrix{r: m.r, c: m.c, data: make([]Operator, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v)
	}

	return out
}

// BlockDiag returns [[a, 0], [0, b]].
// Complexity: O((ra+rb)·(ca+cb)).
func BlockDiag(a, b *Matrix) *Matrix {
	out := ZeroMatrix(a.r+b.r, a.c+b.c)
	for i := 0; i < a.r; i++ {
		for j := 0; j < a.c; j++ {
			out.data[i*out.c+j] = a.at(i, j)
		}
	}
	for i := 0; i < b.r; i++ {
		for j := 0; j < b.c; j++ {
			out.data[(a.r+i)*out.c+a.c+j] = b.at(i, j)
		}
	}

	return out
}

// VStack stacks a on top of b. Column counts must agree.
func VStack(a, b *Matrix) (*Matrix, error) {
	if a.c != b.c {
		return nil, matrixErrorf(opVStack, errors.Wrapf(ErrDimensionMismatch, "%d vs %d columns", a.c, b.c))
	}
	data := make([]Operator, 0, len(a.data)+len(b.data))
	data = append(data, a.data...)
	data = append(data, b.data...)

	return &Matrix{r: a.r + b.r, c: a.c, data: data}, nil
}

// Slice returns the sub-matrix rows [r0,r1) × cols [c0,c1).
func (m *Matrix) Slice(r0, r1, c0, c1 int) (*Matrix, error) {
	if r0 < 0 || r1 > m.r || r0 > r1 || c0 < 0 || c1 > m.c || c0 > c1 {
		return nil, matrixErrorf(opSlice, errors.Wrapf(ErrOutOfRange, "[%d:%d, %d:%d] of %dx%d", r0, r1, c0, c1, m.r, m.c))
	}
	out := ZeroMatrix(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		for j := c0; j < c1; j++ {
			out.data[(i-r0)*out.c+(j-c0)] = m.at(i, j)
		}
	}

	return out, nil
}

// Equal reports element-wise structural equality including shape.
func Equal(a, b *Matrix) bool {
	if a.r != b.r || a.c != b.c {
		return false
	}
	for i := range a.data {
		if !a.data[i].Equal(b.data[i]) {
			return false
		}
	}

	return true
}

// IsZero reports whether every element is zero.
func (m *Matrix) IsZero() bool {
	for _, v := range m.data {
		if !v.IsZero() {
			return false
		}
	}

	return true
}

// Space is the tensor product of the spaces of all elements.
func (m *Matrix) Space() hilbert.Space {
	spaces := make([]hilbert.Space, len(m.data))
	for i, v := range m.data {
		spaces[i] = v.Space()
	}

	return hilbert.Tensor(spaces...)
}

// String renders the matrix as nested brackets: [[1, 0], [0, 1]].
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.r; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.at(i, j).String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("]")

	return sb.String()
}
