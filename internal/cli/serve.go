package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rotacheck/internal/metrics"
	"github.com/matzehuels/rotacheck/internal/server"
	"github.com/matzehuels/rotacheck/pkg/buildinfo"
)

// serveCommand creates the serve command, running the HTTP JSON API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the validation, bounds, snap and convert endpoints over HTTP.

Endpoints:
  POST /v1/validate   validate a lineup or formation document
  POST /v1/bounds     legal area for one slot
  POST /v1/snap       clamp a dragged player to the legal area
  POST /v1/convert    convert a document between rules and screen space
  GET  /healthz       liveness and build information
  GET  /metrics       Prometheus metrics

Set cache.backend to redis to share memoized results between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			eng, closeEngine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			opts := server.Options{
				Engine: eng,
				Logger: c.Logger,
				Frame:  c.Config.Frame,
			}
			if !noMetrics {
				m := metrics.New()
				m.Register()
				opts.Metrics = m.Handler()
			}

			c.Logger.Info("starting server", "addr", addr, "cache", c.Config.Cache.Backend, "version", buildinfo.Version)
			return server.New(opts).ListenAndServe(ctx, addr, c.Config.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: server.addr from config)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}
