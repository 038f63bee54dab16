package matrix

import (
	"fmt"
	"strings"
)

// Matrix is a square matrix of non-negative path lengths, indexed [row][col].
//
// Entry [i][j] is the length of the longest known path from i to j, or 0
// when j is unreachable from i. Diagonal entries are always 0.
type Matrix [][]int

// New returns a dim×dim zero matrix.
func New(dim int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]int, dim)
	}
	return m
}

// Dim returns the number of rows.
func (m Matrix) Dim() int { return len(m) }

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether m and o have the same shape and entries.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// RowMax returns the largest entry in row i.
func (m Matrix) RowMax(i int) int {
	best := 0
	for _, v := range m[i] {
		if v > best {
			best = v
		}
	}
	return best
}

// String formats m one row per line, for debug logging.
func (m Matrix) String() string {
	var b strings.Builder
	for _, row := range m {
		fmt.Fprintln(&b, row)
	}
	return b.String()
}
