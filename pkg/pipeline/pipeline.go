// Package pipeline runs lexical-order inference for the CLI and the HTTP
// server.
//
// A [Runner] wraps [lexorder.Infer] with input validation, result caching,
// run IDs, timing and logging, so both entry points behave identically.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Order(ctx, words, pipeline.Options{Workers: 4})
//	if err != nil {
//	    if res != nil && res.Inference != nil {
//	        fmt.Println(lexorder.Explain(err, res.Inference.Alphabet))
//	    }
//	    return err
//	}
//	fmt.Println(string(res.Document.Runes()))
//
// Render the precedence graph:
//
//	g, err := runner.Graph(ctx, words, pipeline.Options{Format: pipeline.FormatSVG})
//	os.WriteFile("graph.svg", g.Data, 0644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lexorder/pkg/errors"
	lexio "github.com/matzehuels/lexorder/pkg/io"
	"github.com/matzehuels/lexorder/pkg/lexorder"
)

// Graph output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// GraphFormats lists every supported graph format.
var GraphFormats = []string{FormatDOT, FormatSVG}

// Options configures a single run.
type Options struct {
	// Workers is the closure parallelism. Zero means one per CPU.
	Workers int `json:"workers,omitempty"`

	// Format is the graph format for [Runner.Graph]. Ignored by Order.
	Format string `json:"format,omitempty"`

	// Detailed adds each character's index and longest chain to graph
	// nodes. Ignored by Order.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// NoCache disables cache reads and writes.
	NoCache bool `json:"no_cache,omitempty"`

	// TTL is the lifetime of cache entries written by this run. Zero
	// means entries never expire.
	TTL time.Duration `json:"-"`

	// Limits bounds the accepted word list.
	Limits errors.Limits `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of an order run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID string

	// Document is the serializable order. Nil on failure.
	Document *lexio.Document

	// Inference holds every intermediate product. It is nil when the
	// document came from the cache, and partial on failure.
	Inference *lexorder.Result

	Stats     Stats
	CacheInfo CacheInfo
}

// GraphResult contains a rendered precedence graph.
type GraphResult struct {
	RunID  string
	Format string
	Data   []byte

	// Failure is the inference error shown in the graph, if any, and
	// Message its translation into literal characters. Graphs of
	// inconsistent input are never cached, so a hit has neither.
	Failure error
	Message string

	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	WordCount int
	Dim       int
	EdgeCount int
	Steps     int
	InferTime time.Duration
}

// CacheInfo records whether the output came from the cache.
type CacheInfo struct {
	Key string
	Hit bool
}

// SetDefaults fills zero values.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = FormatDOT
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges and validates words against the limits.
func (o *Options) Validate(words []string) error {
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be >= 0, got %d", o.Workers)
	}
	return errors.ValidateWords(words, o.Limits)
}

// ValidateForGraph additionally checks the graph format.
func (o *Options) ValidateForGraph(words []string) error {
	if err := errors.ValidateFormat(o.Format, GraphFormats...); err != nil {
		return err
	}
	return o.Validate(words)
}
