// Package cli implements the rotacheck command-line interface.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rotacheck/internal/config"
	"github.com/matzehuels/rotacheck/pkg/buildinfo"
	"github.com/matzehuels/rotacheck/pkg/cache"
	"github.com/matzehuels/rotacheck/pkg/engine"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "rotacheck"

	// redisDialTimeout bounds connecting to redis, retries included.
	redisDialTimeout  = 5 * time.Second
	redisPingAttempts = 3
)

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
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Rotacheck checks volleyball rotations for overlap faults",
		Long: `Rotacheck validates player positions at the moment of serve against the
overlap rules, explains faults in plain language, and computes the area each
player may occupy without creating one.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ./rotacheck.yaml or the user config dir)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.boundsCommand())
	root.AddCommand(c.snapCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command
// context. --verbose wins over the configured log level.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	c.SetLogLevel(cfg.LogLevel())
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	if cfg.File != "" {
		c.Logger.Debug("loaded config", "file", cfg.File)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Engine Factory
// =============================================================================

// newEngine creates an engine backed by the configured cache. The returned
// close function releases the cache.
func (c *CLI) newEngine(ctx context.Context) (*engine.Engine, func(), error) {
	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	e := engine.New(engine.Options{
		Cache:         store,
		Keyer:         keyer,
		Logger:        c.Logger,
		ValidationTTL: c.Config.Cache.TTL,
		BoundsTTL:     min(c.Config.Cache.TTL, cache.TTLBounds),
	})
	closeFn := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("close cache", "error", err)
		}
	}
	return e, closeFn, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	cfg := c.Config
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,

			PingAttempts: redisPingAttempts,
		})
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Redis.Prefix), nil
	default:
		return cache.NewMemoryCache(cfg.Cache.Size), cache.NewDefaultKeyer(), nil
	}
}
