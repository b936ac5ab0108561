package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rotacheck/pkg/constraint"
	"github.com/matzehuels/rotacheck/pkg/errors"
	"github.com/matzehuels/rotacheck/pkg/lineup"
	"github.com/matzehuels/rotacheck/pkg/overlap"
)

// boundsCommand creates the bounds command, printing where a player may stand.
func (c *CLI) boundsCommand() *cobra.Command {
	var (
		flags  lineupFlags
		slot   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "bounds [file]",
		Short: "Show the area a player may occupy without an overlap fault",
		Long: `Compute the rectangle, in metres, that the player in --slot may occupy
given the positions of the other players. The server is never constrained and
may use the service zone. Faults the player is currently part of are listed
below the bounds.`,
		Example: `  # Where may the middle front stand in this formation?
  rotacheck bounds --slot 3 rotation1.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := argOrEmpty(args)

			s, err := lineup.ParseSlot(slot)
			if err != nil {
				return err
			}
			l, err := c.loadLineup(path, flags)
			if err != nil {
				return err
			}
			p := l.Table().At(s)
			if p == nil {
				return errors.New(errors.ErrCodeInvalidPlayer, "no player in slot %s", s)
			}

			eng, closeEngine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			b, _, err := eng.BoundsWithCacheInfo(ctx, s, l, p.IsServer)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}
			printBounds(*p, b)
			printFaults(eng.Validate(ctx, l).Result().Involving(s))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&slot, "slot", "s", 0, "rotation slot (1-6)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print bounds as JSON")
	_ = cmd.MarkFlagRequired("slot")

	return cmd
}

func printBounds(p lineup.Player, b constraint.Bounds) {
	fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("%s %s", p.Slot, p.Name())))
	printKeyValue("position", p.Position().String())
	printKeyValue("x", fmt.Sprintf("%.2f – %.2f m", b.MinX, b.MaxX))
	printKeyValue("y", fmt.Sprintf("%.2f – %.2f m", b.MinY, b.MaxY))

	if !b.Constrained {
		printSuccess("Unconstrained")
		return
	}
	for _, r := range b.Reasons {
		printDetail("%s", r)
	}
	if b.Conflict {
		printWarning("Neighbours are misordered; the area was collapsed to a line")
	}
}

// printFaults lists the violations the player is currently part of.
func printFaults(faults []overlap.Violation) {
	if len(faults) == 0 {
		return
	}
	printNewline()
	for _, v := range faults {
		printError("%s: %s", v.Code, v.Message)
	}
}
