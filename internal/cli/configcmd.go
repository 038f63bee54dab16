package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lexorder/pkg/cache"
	"github.com/matzehuels/lexorder/pkg/config"
)

// configCommand creates the "config" command, which prints the effective
// configuration after file and environment lookup.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config()
			path := c.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			dir, _ := c.cacheDir()

			printKeyValue("file", path)
			printKeyValue("workers", workersLabel(cfg.Workers))
			printKeyValue("format", cfg.Format)
			printKeyValue("max words", limitLabel(cfg.Limits.MaxWords))
			printKeyValue("max word len", limitLabel(cfg.Limits.MaxWordLen))
			printKeyValue("cache", cfg.Cache.Backend)
			printKeyValue("cache ttl", cfg.Cache.TTL.String())
			switch cfg.Cache.Backend {
			case cache.BackendFile:
				printKeyValue("cache dir", dir)
			case cache.BackendRedis:
				printKeyValue("redis", fmt.Sprintf("%s db=%d", cfg.Redis.Addr, cfg.Redis.DB))
			case cache.BackendMongo:
				printKeyValue("mongo", fmt.Sprintf("%s %s.%s", cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection))
			}
			printKeyValue("server", cfg.Server.Addr)
			return nil
		},
	}
}

func workersLabel(n int) string {
	if n == 0 {
		return "auto"
	}
	return strconv.Itoa(n)
}

func limitLabel(n int) string {
	if n == 0 {
		return "none"
	}
	return strconv.Itoa(n)
}
