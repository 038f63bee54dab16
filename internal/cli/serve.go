package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lexorder/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve POST /v1/order, POST /v1/graph and GET /healthz until interrupted.
The listen address defaults to [server] addr from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			popts := c.pipelineOptions(cmd, workers)

			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			srv := server.New(runner, server.Options{
				Workers:      popts.Workers,
				Limits:       popts.Limits,
				TTL:          popts.TTL,
				ReadTimeout:  cfg.Server.ReadTimeout.Duration,
				WriteTimeout: cfg.Server.WriteTimeout.Duration,
				Logger:       loggerFromContext(ctx),
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel workers per closure step (0 = one per CPU)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
