package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format   string // dot or svg
	output   string
	workers  int
	noCache  bool
	refresh  bool
	detailed bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: pipeline.FormatDOT}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render the precedence graph of a word list",
		Long: `Render the characters of a word list and their direct precedence edges.
Characters carry their rank when the order is unique; characters involved
in a contradiction are highlighted instead.`,
		Example: `  lexorder graph words.txt | dot -Tpng > graph.png
  lexorder graph words.txt --format svg -o graph.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format, pipeline.GraphFormats...); err != nil {
				return err
			}
			words, err := readWords(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			popts := c.pipelineOptions(cmd, opts.workers)
			popts.Format = opts.format
			popts.NoCache = opts.noCache
			popts.Refresh = opts.refresh
			popts.Detailed = opts.detailed
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), words, popts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel workers per closure step (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite the cached graph")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with their index and longest chain")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, out io.Writer, words []string, popts pipeline.Options, opts graphOpts) error {
	logger := loggerFromContext(ctx)
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	var spinner *Spinner
	if opts.output != "" {
		spinner = newSpinnerWithContext(ctx, "Rendering graph...")
		spinner.Start()
	}

	prog := newProgress(logger)
	res, err := runner.Graph(ctx, words, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if res.Failure != nil {
		logger.Warn("word list is inconsistent", "err", res.Message)
	}

	if opts.output == "" {
		_, err := out.Write(res.Data)
		return err
	}
	if err := os.WriteFile(opts.output, res.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %s graph", res.Format)
	printFile(opts.output)
	prog.done("Rendered graph")
	return nil
}
