// Package lexorder infers the character order of an unknown alphabet from a
// word list already sorted by that order.
//
// # Pipeline
//
// [Infer] runs four stages, each owning the data it produces:
//
//  1. [alphabet.Index] assigns dense indices to characters in first-seen order
//  2. [precedence.Build] derives one edge per adjacent word pair
//  3. [matrix.Closure] computes longest precedence chains by max-plus squaring
//  4. [rank.Extract] places every character at a unique rank
//
// The ranks are then mapped back to characters. [Order] is the short form
// that returns only the characters.
//
// # Failures
//
// Inconsistent evidence fails the whole computation. A cycle surfaces as
// *errors.CycleError and an ambiguous order (including two characters that
// never appear in an edge) as *errors.RankCollisionError. Both name dense
// alphabet indices; [Explain] rewrites them with the literal characters.
//
// # Example
//
//	order, err := lexorder.Order(ctx, []string{"bca", "aaa", "acb"}, lexorder.Options{})
//	// order == []rune{'b', 'a', 'c'}
//
// [alphabet.Index]: github.com/matzehuels/lexorder/pkg/alphabet
// [precedence.Build]: github.com/matzehuels/lexorder/pkg/precedence
// [matrix.Closure]: github.com/matzehuels/lexorder/pkg/matrix
// [rank.Extract]: github.com/matzehuels/lexorder/pkg/rank
package lexorder
