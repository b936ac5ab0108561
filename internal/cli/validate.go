package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rotacheck/pkg/engine"
	"github.com/matzehuels/rotacheck/pkg/errors"
	"github.com/matzehuels/rotacheck/pkg/lineup"
	"github.com/matzehuels/rotacheck/pkg/overlap"
)

// validateOpts holds flags for the validate command.
type validateOpts struct {
	lineupFlags
	explain   bool
	json      bool
	rotations bool
	jobs      int
}

// validateReport is the outcome for one input, also its JSON form.
type validateReport struct {
	Source       string              `json:"source"`
	Legal        bool                `json:"legal"`
	Severity     engine.Severity     `json:"severity,omitempty"`
	Violations   []overlap.Violation `json:"violations,omitempty"`
	Explanations []string            `json:"explanations,omitempty"`
	Fixes        []engine.Fix        `json:"fixes,omitempty"`
	Cached       bool                `json:"cached"`
	Error        string              `json:"error,omitempty"`
}

// validateCommand creates the validate command for checking lineups.
func (c *CLI) validateCommand() *cobra.Command {
	opts := validateOpts{jobs: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check formation documents for overlap faults",
		Long: `Check one or more formation documents (JSON or TOML) against the overlap
rules. Use "-" to read a JSON document from stdin. Without arguments the base
rotation for --server is checked.

With --rotations each lineup is also checked after every further rotation:
players advance one slot clockwise and keep their spot on court, so a single
drawing is checked with each slot serving in turn.

The command exits non-zero when any lineup is illegal or cannot be read.`,
		Example: `  # Check a formation
  rotacheck validate rotation1.toml

  # Check all rotations with explanations and suggested fixes
  rotacheck validate --explain rotations/*.json

  # Check a formation as the team rotates through all six servers
  rotacheck validate --rotations rotation1.toml

  # Machine-readable output
  rotacheck validate --json rotation1.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args, opts)
		},
	}

	opts.lineupFlags.register(cmd)
	cmd.Flags().BoolVarP(&opts.explain, "explain", "e", false, "explain violations and suggest fixes")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	cmd.Flags().BoolVarP(&opts.rotations, "rotations", "r", false, "also check the lineup after each of the other five rotations")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of files validated concurrently")

	return cmd
}

// runValidate checks every source concurrently and prints the reports in
// argument order.
func (c *CLI) runValidate(ctx context.Context, paths []string, opts validateOpts) error {
	logger := loggerFromContext(ctx)
	if len(paths) == 0 {
		paths = []string{""}
	}

	eng, closeEngine, err := c.newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine()

	prog := newProgress(logger)
	perSource := make([][]validateReport, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perSource[i] = c.validateSource(gctx, eng, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	var reports []validateReport
	for _, rs := range perSource {
		reports = append(reports, rs...)
	}
	prog.done(fmt.Sprintf("Validated %s", plural(len(reports), "lineup")))

	if opts.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			printReport(r, opts.explain)
		}
	}

	return summarize(reports)
}

// validateSource loads one source and checks it, or with --rotations each
// of its six rotations in turn.
func (c *CLI) validateSource(ctx context.Context, eng *engine.Engine, path string, opts validateOpts) []validateReport {
	source := displayName(path, opts.lineupFlags)
	l, err := c.loadLineup(path, opts.lineupFlags)
	if err != nil {
		loggerFromContext(ctx).Debug("load failed", "source", source, "error", err)
		return []validateReport{{Source: source, Error: errors.UserMessage(err)}}
	}
	if !opts.rotations {
		return []validateReport{validateOne(ctx, eng, source, l, opts)}
	}

	out := make([]validateReport, 0, lineup.NumSlots)
	for i := range lineup.NumSlots {
		out = append(out, validateOne(ctx, eng, fmt.Sprintf("%s (rotation %d)", source, i+1), l, opts))
		l = l.Rotate()
	}
	return out
}

func validateOne(ctx context.Context, eng *engine.Engine, source string, l lineup.Lineup, opts validateOpts) validateReport {
	r := validateReport{Source: source}
	a := eng.Validate(ctx, l)
	loggerFromContext(ctx).Debug("validated", "source", source, "codes", a.Result().Codes())
	r.Legal = a.Legal()
	r.Violations = a.Violations()
	r.Cached = a.Cached()
	r.Severity = a.Severity()
	if opts.explain {
		r.Explanations = a.Explanations()
		r.Fixes = a.Fixes()
	}
	return r
}

func printReport(r validateReport, explain bool) {
	switch {
	case r.Error != "":
		printError("%s: %s", r.Source, r.Error)
		return
	case r.Legal:
		printSuccess("%s is legal", r.Source)
	default:
		printError("%s has overlap faults", r.Source)
	}
	printStats(len(r.Violations), r.Severity, r.Cached)

	if explain {
		for _, e := range r.Explanations {
			printDetail("%s", e)
		}
		for _, f := range r.Fixes {
			printInfo("%s", f)
		}
		return
	}
	for _, v := range r.Violations {
		printDetail("%s: %s", v.Code, v.Message)
	}
}

// summarize turns failed or illegal reports into the command's error.
func summarize(reports []validateReport) error {
	var illegal, failed int
	for _, r := range reports {
		switch {
		case r.Error != "":
			failed++
		case !r.Legal:
			illegal++
		}
	}
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d lineups could not be read", failed, len(reports))
	case illegal > 0:
		return fmt.Errorf("%d of %d lineups have overlap faults", illegal, len(reports))
	}
	return nil
}
