package matrix

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lexorder/pkg/observability"
)

// Options configures [Closure].
type Options struct {
	// Workers is the number of goroutines per squaring step.
	// Zero or negative means runtime.NumCPU(). One runs every step on a
	// single goroutine, which is useful for deterministic tests.
	Workers int

	// Logger receives per-step debug output. Nil discards it.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Span is a half-open range [Start, End) of matrix rows.
type Span struct {
	Start, End int
}

// Partition splits dim rows into contiguous spans of ceil(dim/workers) rows.
// The last span may be shorter, and fewer than workers spans are returned
// when dim is small. Every row belongs to exactly one span. Returns nil for
// dim == 0.
func Partition(dim, workers int) []Span {
	if dim <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	size := (dim + workers - 1) / workers
	spans := make([]Span, 0, workers)
	for start := 0; start < dim; start += size {
		spans = append(spans, Span{Start: start, End: min(start+size, dim)})
	}
	return spans
}

// MaxPlusRow returns row i of the max-plus square of dist.
//
// For every j != i the entry is the larger of dist[i][j] and the best
// dist[i][k]+dist[k][j] over all k where both terms are nonzero. The
// diagonal entry is left at 0. dist is only read.
func MaxPlusRow(dist Matrix, i int) []int {
	dim := dist.Dim()
	src := dist[i]
	row := make([]int, dim)
	for j := 0; j < dim; j++ {
		if j == i {
			continue
		}
		best := src[j]
		for k := 0; k < dim; k++ {
			if src[k] == 0 || dist[k][j] == 0 {
				continue
			}
			if sum := src[k] + dist[k][j]; sum > best {
				best = sum
			}
		}
		row[j] = best
	}
	return row
}

// Square returns the max-plus square of dist as a new matrix.
//
// Rows are computed by one goroutine per [Partition] span. All goroutines
// read dist concurrently and write disjoint rows of the result; Square
// returns only after every one of them has finished. dist is not modified.
// The only possible error is cancellation of ctx.
func Square(ctx context.Context, dist Matrix, workers int) (Matrix, error) {
	dim := dist.Dim()
	out := make(Matrix, dim)

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range Partition(dim, workers) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := s.Start; i < s.End; i++ {
				out[i] = MaxPlusRow(dist, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Steps returns how many squarings [Closure] performs for a dim×dim matrix:
// the number of doublings of 1 needed to reach dim, i.e. ⌈log2(dim)⌉, and
// zero for dim <= 1.
func Steps(dim int) int {
	n := 0
	for pow := 1; pow < dim; pow <<= 1 {
		n++
	}
	return n
}

// Closure squares adj under max-plus until the doubling exponent reaches
// dim, yielding longest path lengths between every pair of nodes.
//
// Steps are strictly sequential: step n+1 reads the fully assembled output
// of step n. adj is never modified and the returned matrix never aliases it.
// For dim 0 or 1 no work is issued and a copy of adj is returned.
//
// ctx is checked before each step; a cancelled context aborts with
// ctx.Err(). Each completed step is reported to
// [observability.ClosureHooks.OnSquare].
func Closure(ctx context.Context, adj Matrix, opts Options) (Matrix, error) {
	opts.setDefaults()
	dim := adj.Dim()
	dist := adj.Clone()
	hooks := observability.Closure()

	step := 0
	for pow := 1; pow < dim; pow <<= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		next, err := Square(ctx, dist, opts.Workers)
		if err != nil {
			return nil, err
		}
		step++
		elapsed := time.Since(start)
		hooks.OnSquare(ctx, step, dim, opts.Workers, elapsed)
		opts.Logger.Debug("max-plus square", "step", step, "dim", dim, "workers", opts.Workers, "elapsed", elapsed)
		dist = next
	}
	return dist, nil
}
