package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/lexorder/pkg/cache"
	lexio "github.com/matzehuels/lexorder/pkg/io"
	"github.com/matzehuels/lexorder/pkg/lexorder"
	"github.com/matzehuels/lexorder/pkg/observability"
	"github.com/matzehuels/lexorder/pkg/render/nodelink"
)

// Runner executes runs with caching.
//
// The Runner is stateless except for the cache and logger; it does not
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Order infers the character order of words.
//
// Invalid input fails before any work with an INVALID_INPUT error and a nil
// result. Inference failures return the partial result alongside the
// error, so callers can translate it with [lexorder.Explain]. Failures are
// never cached.
func (r *Runner) Order(ctx context.Context, words []string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(words); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString()}
	res.Stats.WordCount = len(words)
	res.CacheInfo.Key = r.Keyer.OrderKey(words)
	logger := opts.Logger.With("run", res.RunID[:8])

	if data, ok := r.lookup(ctx, kindOrder, res.CacheInfo.Key, opts, logger); ok {
		doc, err := lexio.ReadJSON(bytes.NewReader(data))
		if err == nil {
			res.Document = doc
			res.CacheInfo.Hit = true
			res.Stats.Dim = len(doc.Alphabet)
			res.Stats.EdgeCount = len(doc.Edges)
			res.Stats.Steps = doc.Steps
			logger.Debug("order from cache", "chars", len(doc.Order))
			return res, nil
		}
		logger.Warn("discarding unreadable cache entry", "err", err)
	}

	inf, elapsed, err := r.infer(ctx, res.RunID, words, opts, logger)
	res.Inference = inf
	res.Stats.Dim = inf.Dim()
	res.Stats.EdgeCount = len(inf.Edges())
	res.Stats.Steps = inf.Steps
	res.Stats.InferTime = elapsed
	if err != nil {
		return res, err
	}

	res.Document = lexio.NewDocument(inf)
	var buf bytes.Buffer
	if err := lexio.WriteJSON(res.Document, &buf); err == nil {
		r.store(ctx, kindOrder, res.CacheInfo.Key, buf.Bytes(), opts, logger)
	}

	logger.Info("inferred order",
		"words", len(words),
		"chars", res.Stats.Dim,
		"edges", res.Stats.EdgeCount,
		"steps", res.Stats.Steps,
		"duration", elapsed)
	return res, nil
}

// Graph renders the precedence graph of words. Inconsistent input is not
// an error here: the graph is rendered with the offending characters
// highlighted, the inference error is reported in GraphResult.Failure and
// GraphResult.Message, and the rendering is not cached.
func (r *Runner) Graph(ctx context.Context, words []string, opts Options) (*GraphResult, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.ValidateForGraph(words); err != nil {
		return nil, err
	}

	res := &GraphResult{RunID: uuid.NewString(), Format: opts.Format}
	res.CacheInfo.Key = r.Keyer.GraphKey(words, opts.Format, opts.Detailed)
	logger := opts.Logger.With("run", res.RunID[:8])

	if data, ok := r.lookup(ctx, kindGraph, res.CacheInfo.Key, opts, logger); ok {
		res.Data = data
		res.CacheInfo.Hit = true
		return res, nil
	}

	inf, _, failure := r.infer(ctx, res.RunID, words, opts, logger)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if failure != nil {
		res.Failure = failure
		res.Message = lexorder.Explain(failure, inf.Alphabet)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := render(ctx, inf, opts, failure)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	res.Data = data
	if failure == nil {
		r.store(ctx, kindGraph, res.CacheInfo.Key, data, opts, logger)
	}

	logger.Info("rendered graph", "format", opts.Format, "bytes", len(data), "duration", time.Since(start))
	return res, nil
}

func render(ctx context.Context, inf *lexorder.Result, opts Options, failure error) ([]byte, error) {
	dot := nodelink.ToDOT(inf, nodelink.Options{Detailed: opts.Detailed, Failure: failure})
	if opts.Format == FormatSVG {
		return nodelink.RenderSVG(ctx, dot)
	}
	return []byte(dot), nil
}

func (r *Runner) infer(ctx context.Context, runID string, words []string, opts Options, logger *log.Logger) (*lexorder.Result, time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnInferStart(ctx, runID, len(words))
	start := time.Now()

	inf, err := lexorder.Infer(ctx, words, lexorder.Options{
		Workers: opts.Workers,
		Logger:  logger,
	})

	elapsed := time.Since(start)
	hooks.OnInferComplete(ctx, runID, inf.Dim(), elapsed, err)
	if err != nil {
		logger.Debug("inference failed", "err", err, "duration", elapsed)
	}
	return inf, elapsed, err
}

// Cache kinds reported to observability hooks.
const (
	kindOrder = "order"
	kindGraph = "graph"
)

// lookup reads key from the cache. Backend errors are logged and treated
// as misses.
func (r *Runner) lookup(ctx context.Context, kind, key string, opts Options, logger *log.Logger) ([]byte, bool) {
	if opts.NoCache || opts.Refresh {
		return nil, false
	}
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, kind)
		return nil, false
	}
	hooks.OnCacheHit(ctx, kind)
	return data, true
}

// store writes data under key. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, kind, key string, data []byte, opts Options, logger *log.Logger) {
	if opts.NoCache {
		return
	}
	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
