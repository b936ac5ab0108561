// Package cli implements the rotacheck command-line interface.
//
// The commands check formation documents against the overlap rules, compute
// the legal area for a dragged player, convert documents between rules and
// screen coordinates, and serve the same operations over HTTP. The CLI is
// built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check one or more lineups, optionally with explanations
//   - explain: Detailed report for a single lineup
//   - bounds: Legal area for one slot
//   - snap: Clamp a move to the legal area
//   - convert: Re-express a document in rules or screen space
//   - serve: Run the HTTP API
//   - cache: Inspect or clear memoized results
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/rotacheck/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: level-filtered, with centisecond
// wall-clock timestamps ("14:32:01.45") so batch validation timings line up.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a batch, such as a validate run over many documents, and
// reports it once at info level. Not for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time in milliseconds, e.g.
// "Validated 6 lineups (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches the command logger; setup calls it for every command.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() for
// contexts that did not pass through setup (completion, tests).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
