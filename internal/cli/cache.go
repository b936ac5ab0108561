package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rotacheck/internal/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear memoized validation and bounds results",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. Only the redis
// backend outlives a single process; a running server's memory cache is
// cleared over HTTP instead.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete cached results under the configured redis prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config

			switch cfg.Cache.Backend {
			case config.BackendNone:
				printInfo("Caching is disabled, nothing to clear")
				return nil
			case config.BackendMemory:
				printWarning("The memory cache lives inside each rotacheck process")
				addr := cfg.Server.Addr
				if strings.HasPrefix(addr, ":") {
					addr = "localhost" + addr
				}
				printDetail("Clear a running server with: curl -X DELETE http://%s/v1/cache", addr)
				return nil
			}

			eng, closeEngine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			n, err := eng.ClearCache(ctx)
			if err != nil {
				return err
			}
			printSuccess("Cleared %s", plural(n, "cached result"))
			printDetail("Redis: %s db %d, prefix %q", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Prefix)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured cache backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config

			printKeyValue("backend", cfg.Cache.Backend)
			switch cfg.Cache.Backend {
			case config.BackendMemory:
				printKeyValue("size", fmt.Sprintf("%d entries", cfg.Cache.Size))
			case config.BackendRedis:
				printKeyValue("addr", cfg.Redis.Addr)
				printKeyValue("db", fmt.Sprint(cfg.Redis.DB))
				printKeyValue("prefix", fmt.Sprintf("%q", cfg.Redis.Prefix))
			}
			if cfg.Cache.Backend != config.BackendNone {
				printKeyValue("ttl", cfg.Cache.TTL.String())
			}
			if cfg.File != "" {
				printKeyValue("config", cfg.File)
			}
			return nil
		},
	}
}
