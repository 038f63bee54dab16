package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lexorder/pkg/errors"
	lexio "github.com/matzehuels/lexorder/pkg/io"
	"github.com/matzehuels/lexorder/pkg/lexorder"
	"github.com/matzehuels/lexorder/pkg/pipeline"
)

// orderOpts holds the command-line flags for the order command.
type orderOpts struct {
	format  string // text, json or debug
	output  string // write to file instead of stdout
	workers int    // closure parallelism, 0 = NumCPU
	noCache bool
	refresh bool // skip the cache lookup but store the result
	explain bool // list precedence edges on stderr
}

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var opts orderOpts

	cmd := &cobra.Command{
		Use:   "order [file]",
		Short: "Infer the character order of a sorted word list",
		Long: `Read words, one per line, from file or stdin and print the order of their
characters. Blank lines count as words. Fails when the words contain a
contradiction or do not pin down a single order.`,
		Example: `  printf 'baa\nabcd\nabca\ncab\ncad\n' | lexorder order
  lexorder order words.txt --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = c.Config().Format
			}
			if err := errors.ValidateFormat(opts.format, lexio.Formats...); err != nil {
				return err
			}
			words, err := readWords(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return c.runOrder(cmd.Context(), cmd.OutOrStdout(), words, c.pipelineOptions(cmd, opts.workers), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text (default), json, debug")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel workers per closure step (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite the cached order")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "print the precedence edges")

	return cmd
}

func (c *CLI) runOrder(ctx context.Context, out io.Writer, words []string, popts pipeline.Options, opts orderOpts) error {
	logger := loggerFromContext(ctx)
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	popts.NoCache = opts.noCache
	popts.Refresh = opts.refresh
	res, err := runner.Order(ctx, words, popts)
	if err != nil {
		if res == nil || res.Inference == nil {
			return err
		}
		if opts.explain {
			printInferenceEdges(res.Inference)
		}
		return errors.Wrap(errors.GetCode(err), err, "%s", lexorder.Explain(err, res.Inference.Alphabet))
	}

	doc := res.Document
	if opts.explain {
		printInfo("Precedence edges")
		for _, e := range doc.Edges {
			printEdge(e.From, e.To)
		}
	}

	if opts.output != "" {
		if err := lexio.ExportOrder(doc, opts.output, opts.format); err != nil {
			return err
		}
		printSuccess("Wrote order of %d characters", len(doc.Order))
		printFile(opts.output)
	} else if err := lexio.WriteOrder(out, doc, opts.format); err != nil {
		return err
	}

	logger.Debug("run", "id", res.RunID, "cache_key", res.CacheInfo.Key)
	if logger.GetLevel() <= LogDebug {
		printStats(len(doc.Order), len(doc.Edges), res.CacheInfo.Hit)
	}
	prog.done(fmt.Sprintf("Inferred order of %d characters", len(doc.Order)))
	return nil
}

// printInferenceEdges lists the edges of a failed run, which has no document.
func printInferenceEdges(res *lexorder.Result) {
	printInfo("Precedence edges")
	for _, e := range res.Edges() {
		printEdge(string(res.Alphabet.Rune(e.From)), string(res.Alphabet.Rune(e.To)))
	}
}

// readWords reads from the file named in args, or from stdin when args is
// empty or "-".
func readWords(stdin io.Reader, args []string) ([]string, error) {
	if len(args) == 0 || args[0] == "-" {
		return lexio.ReadWords(stdin)
	}
	return lexio.ImportWords(args[0])
}
