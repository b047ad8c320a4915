// Package matrix provides the operand matrices the generator works from.
//
// The generator only needs the dimension N; the values are kept so callers
// can compute a reference product or feed the same data to hardware.
package matrix

import (
	"errors"
	"fmt"
)

// ErrShape is returned when a pair of matrices is not two N x N squares.
var ErrShape = errors.New("matrix: operands must be square and of equal size")

// Matrix is a row-major grid of integers.
type Matrix [][]int

// New creates an n x n matrix of zeros.
func New(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}

	return m
}

// Dim returns the number of rows.
func (m Matrix) Dim() int {
	return len(m)
}

// IsSquare reports whether every row has Dim columns.
func (m Matrix) IsSquare() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}

	return true
}

// Flatten returns the matrix in row-major order.
func (m Matrix) Flatten() []int {
	flat := make([]int, 0, len(m)*len(m))
	for _, row := range m {
		flat = append(flat, row...)
	}

	return flat
}

// Pair is the input of one generation run.
type Pair struct {
	N int
	A Matrix
	B Matrix
}

// NewPair checks the shapes of a and b and wraps them.
func NewPair(a, b Matrix) (*Pair, error) {
	if a.Dim() == 0 || a.Dim() != b.Dim() || !a.IsSquare() || !b.IsSquare() {
		return nil, fmt.Errorf("%w: A is %d rows, B is %d rows",
			ErrShape, a.Dim(), b.Dim())
	}

	return &Pair{N: a.Dim(), A: a, B: b}, nil
}

// Source provides the matrices for a generation run.
type Source interface {
	Load() (*Pair, error)
}

// StaticSource serves matrices that are already in memory.
type StaticSource struct {
	A Matrix
	B Matrix
}

// Load returns the wrapped matrices.
func (s StaticSource) Load() (*Pair, error) {
	return NewPair(s.A, s.B)
}

// Multiply returns the product a x b.
func Multiply(a, b Matrix) Matrix {
	size := a.Dim()
	result := New(size)
	for i := range result {
		for j := range result[i] {
			for k := 0; k < size; k++ {
				result[i][j] += a[i][k] * b[k][j]
			}
		}
	}

	return result
}
