// Package rank converts longest-path lengths into a total order.
//
// A character whose longest outgoing precedence chain has length d has d
// characters transitively after it along that chain, so in an alphabet of
// dim characters it must sit at rank dim-d-1. Characters that point nowhere
// (d = 0) take the last rank. Two characters landing on the same rank means
// the evidence does not pin down a single order, and a chain of length dim
// or more is only possible around a cycle.
package rank

import (
	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/matrix"
)

// Slot is one position of a [Table]. Filled is false until a character
// index is placed there.
type Slot struct {
	Index  int
	Filled bool
}

// Table maps rank to character index while ranks are being assigned.
type Table []Slot

// NewTable returns a table of dim empty slots.
func NewTable(dim int) Table {
	return make(Table, dim)
}

// Place puts index at rank. It returns a *errors.RankCollisionError if the
// slot already holds a different index.
func (t Table) Place(rank, index int) error {
	if s := t[rank]; s.Filled && s.Index != index {
		return &errors.RankCollisionError{Rank: rank, Index: index, Existing: s.Index}
	}
	t[rank] = Slot{Index: index, Filled: true}
	return nil
}

// Complete reports whether every slot is filled.
func (t Table) Complete() bool {
	for _, s := range t {
		if !s.Filled {
			return false
		}
	}
	return true
}

// Indices returns the character indices in rank order. It must only be
// called on a complete table.
func (t Table) Indices() []int {
	out := make([]int, len(t))
	for r, s := range t {
		out[r] = s.Index
	}
	return out
}

// Of returns the rank for a character whose longest outgoing chain has
// length maxDist, in an alphabet of dim characters. It returns a
// *errors.CycleError naming index when maxDist >= dim.
func Of(index, maxDist, dim int) (int, error) {
	if maxDist >= dim {
		return 0, &errors.CycleError{Index: index}
	}
	return dim - maxDist - 1, nil
}

// Extract ranks every character of a closure matrix and returns the
// character indices ordered from first to last.
//
// Characters are visited in index order and the first failure is returned:
// a *errors.CycleError when a row maximum reaches dim, or a
// *errors.RankCollisionError when a rank is already taken. Nothing is
// returned unless all dim ranks end up filled.
func Extract(closure matrix.Matrix) ([]int, error) {
	dim := closure.Dim()
	table := NewTable(dim)
	for i := 0; i < dim; i++ {
		r, err := Of(i, closure.RowMax(i), dim)
		if err != nil {
			return nil, err
		}
		if err := table.Place(r, i); err != nil {
			return nil, err
		}
	}
	if !table.Complete() {
		// unreachable: dim placements into dim slots without collision fill them all
		return nil, errors.New(errors.ErrCodeInternal, "rank table incomplete")
	}
	return table.Indices(), nil
}
