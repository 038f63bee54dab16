// Package matrix computes longest-path lengths over a small directed graph
// by repeated max-plus squaring of its adjacency matrix.
//
// # Overview
//
// In the max-plus semiring, max plays the role of addition and + plays the
// role of multiplication. Squaring a distance matrix under that semiring
// combines every pair of paths i→k and k→j into a candidate path i→j and
// keeps the longest. Starting from a 0/1 adjacency matrix, each squaring
// doubles the longest path length the matrix can represent, so after
// ⌈log2(dim)⌉ squarings every entry holds the true longest path between
// its endpoints (a simple path in a dim-node graph has at most dim-1 edges).
//
// This avoids an explicit topological sort. It costs O(dim³ log dim)
// instead of O(dim²), which is fine when dim is an alphabet size.
//
// # Zero Entries
//
// A zero entry means "no path". Self entries are never computed and stay
// zero, and every real path has at least one edge, so a zero can never be
// confused with a path of length zero.
//
// # Cycles
//
// Nothing here rejects cycles. On a cyclic graph the squarings keep
// stretching paths around the cycle, and entries grow to dim or beyond.
// Callers detect that afterwards (see package rank).
//
// # Parallelism
//
// [Square] partitions the output rows into contiguous spans with
// [Partition] and computes each span in its own goroutine, reading the
// previous matrix without locks. Spans never overlap, so no row is written
// twice. [Closure] waits for every span of a step before starting the next
// one. The number of workers is configurable; one worker gives fully
// sequential execution.
package matrix
