package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rotacheck/pkg/errors"
	"github.com/matzehuels/rotacheck/pkg/formation"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// stdinPath reads a JSON formation document from standard input.
const stdinPath = "-"

// lineupFlags selects the lineup a command works on: a formation document,
// or the base rotation for a server slot when no document is given.
type lineupFlags struct {
	server int
}

func (f *lineupFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.server, "server", int(lineup.RightBack), "server slot for the base rotation when no file is given")
}

// loadDocument reads a formation document from path, or from stdin for "-".
func loadDocument(path string) (formation.Document, error) {
	if path == stdinPath {
		return formation.Read(stdin, formation.FormatJSON)
	}
	return formation.Import(path)
}

// loadLineup resolves the lineup for path. An empty path yields the base
// rotation for the configured server slot.
func (c *CLI) loadLineup(path string, f lineupFlags) (lineup.Lineup, error) {
	if path == "" {
		server, err := lineup.ParseSlot(f.server)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --server flag")
		}
		return lineup.BaseRotation(server), nil
	}
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Lineup(c.Config.Frame)
}

// displayName is how a lineup source is shown in output.
func displayName(path string, f lineupFlags) string {
	switch path {
	case "":
		return "base rotation (server " + lineup.Slot(f.server).Name() + ")"
	case stdinPath:
		return "stdin"
	}
	return path
}

// argOrEmpty returns the first argument, or "" when there is none.
func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
