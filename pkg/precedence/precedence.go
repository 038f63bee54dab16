// Package precedence turns a sorted word list into direct ordering evidence
// between characters.
//
// Two adjacent words in a sorted list only say something about the first
// position where they differ: the character in the earlier word precedes
// the character in the later one. Everything after that position, and any
// pair where one word is a prefix of the other, carries no evidence.
package precedence

import (
	"github.com/matzehuels/lexorder/pkg/alphabet"
	"github.com/matzehuels/lexorder/pkg/matrix"
)

// Edge is one direct precedence: From comes before To.
type Edge struct {
	From, To int
}

// Build returns the dim×dim adjacency matrix of the precedence graph.
//
// For every consecutive pair (pred, succ) it sets adj[pred[k]][succ[k]] = 1
// at the first position k where the words differ, then moves on to the next
// pair. A pair with no differing position before the shorter word ends adds
// no edge. words is assumed sorted; Build does not check it.
func Build(words []alphabet.Word, dim int) matrix.Matrix {
	adj := matrix.New(dim)
	for i := 1; i < len(words); i++ {
		if e, ok := FirstDifference(words[i-1], words[i]); ok {
			adj[e.From][e.To] = 1
		}
	}
	return adj
}

// FirstDifference returns the edge implied by a sorted pair, or false when
// the shorter word is a prefix of the longer one.
func FirstDifference(pred, succ alphabet.Word) (Edge, bool) {
	n := min(len(pred), len(succ))
	for k := 0; k < n; k++ {
		if pred[k] != succ[k] {
			return Edge{From: pred[k], To: succ[k]}, true
		}
	}
	return Edge{}, false
}

// Edges lists the nonzero entries of adj in row-major order.
func Edges(adj matrix.Matrix) []Edge {
	var edges []Edge
	for i, row := range adj {
		for j, v := range row {
			if v != 0 {
				edges = append(edges, Edge{From: i, To: j})
			}
		}
	}
	return edges
}
