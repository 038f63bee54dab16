package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lexorder/pkg/buildinfo"
	"github.com/matzehuels/lexorder/pkg/cache"
	"github.com/matzehuels/lexorder/pkg/config"
	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "lexorder"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Infer the alphabet order of a sorted word list",
		Long: `lexorder reads words that are sorted under an unknown alphabet and prints
the unique ordering of their characters consistent with that sort.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvPath+" or ~/.config/lexorder/config.toml)")

	root.AddCommand(c.orderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ReportError prints err for the user, with codes stripped.
func ReportError(err error) {
	printError("%s", errors.UserMessage(err))
}

// Config returns the loaded configuration, or defaults before loading.
func (c *CLI) Config() *config.Config {
	if c.config == nil {
		return config.Default()
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the configured cache backend.
// A backend that cannot be opened degrades to no caching.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	cfg := c.Config()
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(c.newCache(ctx, noCache), keyer, c.Logger)
}

func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	cc, err := cache.Open(ctx, c.Config().CacheOptions(dir))
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config().Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return cc
}

// pipelineOptions merges config values with per-command flags.
func (c *CLI) pipelineOptions(cmd *cobra.Command, workers int) pipeline.Options {
	cfg := c.Config()
	if !cmd.Flags().Changed("workers") {
		workers = cfg.Workers
	}
	return pipeline.Options{
		Workers: workers,
		TTL:     cfg.Cache.TTL.Duration,
		Limits:  cfg.WordLimits(),
		Logger:  loggerFromContext(cmd.Context()),
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one, or the
// XDG standard (~/.cache/lexorder/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.Config().Cache.Dir; dir != "" {
		return dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
