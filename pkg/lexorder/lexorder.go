package lexorder

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lexorder/pkg/alphabet"
	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/matrix"
	"github.com/matzehuels/lexorder/pkg/precedence"
	"github.com/matzehuels/lexorder/pkg/rank"
)

// Options configures an inference run.
type Options struct {
	// Workers is the parallelism degree of each closure step.
	// Zero means runtime.NumCPU().
	Workers int

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Result holds every intermediate product of a run. Fields after the
// failing stage are left zero.
type Result struct {
	Alphabet  alphabet.Alphabet
	Adjacency matrix.Matrix
	Closure   matrix.Matrix
	Steps     int   // max-plus squarings performed
	Ranks     []int // character indices in rank order
	Order     []rune
}

// Dim returns the alphabet size.
func (r *Result) Dim() int { return r.Alphabet.Dim() }

// Edges returns the direct precedence edges.
func (r *Result) Edges() []precedence.Edge { return precedence.Edges(r.Adjacency) }

// Infer runs the full pipeline over words and returns the result.
//
// On failure the partially filled result is returned together with the
// error, so callers can still render the precedence graph or translate the
// error with [Explain]. Errors from the rank stage are returned unchanged.
func Infer(ctx context.Context, words []string, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger := opts.Logger

	indexed, chars := alphabet.Index(words)
	res := &Result{Alphabet: chars}
	dim := chars.Dim()
	logger.Debug("indexed alphabet", "words", len(words), "dim", dim)

	res.Adjacency = precedence.Build(indexed, dim)
	logger.Debug("built precedence graph", "edges", len(res.Edges()))

	closure, err := matrix.Closure(ctx, res.Adjacency, matrix.Options{
		Workers: opts.Workers,
		Logger:  logger,
	})
	if err != nil {
		return res, fmt.Errorf("closure: %w", err)
	}
	res.Closure = closure
	res.Steps = matrix.Steps(dim)

	ranks, err := rank.Extract(closure)
	if err != nil {
		return res, err
	}
	res.Ranks = ranks
	res.Order = chars.Restore(ranks)
	return res, nil
}

// Order returns the characters of words in their inferred order.
func Order(ctx context.Context, words []string, opts Options) ([]rune, error) {
	res, err := Infer(ctx, words, opts)
	if err != nil {
		return nil, err
	}
	return res.Order, nil
}

// Explain returns a message for err with alphabet indices replaced by the
// characters they stand for. Errors that carry no indices are returned as
// their user message.
func Explain(err error, chars alphabet.Alphabet) string {
	var cycle *errors.CycleError
	if stderrors.As(err, &cycle) {
		return fmt.Sprintf("cycle detected at %s", quote(chars, cycle.Index))
	}
	var coll *errors.RankCollisionError
	if stderrors.As(err, &coll) {
		return fmt.Sprintf("rank %d of %s already assigned to %s",
			coll.Rank, quote(chars, coll.Index), quote(chars, coll.Existing))
	}
	return errors.UserMessage(err)
}

func quote(chars alphabet.Alphabet, i int) string {
	if i < 0 || i >= chars.Dim() {
		return fmt.Sprintf("index %d", i)
	}
	return fmt.Sprintf("%q", chars.Rune(i))
}
