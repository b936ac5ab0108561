package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// snapCommand creates the snap command, the drag-and-drop check for one move.
func (c *CLI) snapCommand() *cobra.Command {
	var (
		flags  lineupFlags
		slot   int
		x, y   float64
		screen bool
	)

	cmd := &cobra.Command{
		Use:   "snap [file]",
		Short: "Move a player to a target, clamped to the legal area",
		Long: `Move the player in --slot toward (--x, --y). If the target would create an
overlap fault the nearest legal point is returned instead.

With --screen the target is read in rendering units of the configured frame
and the result is printed in both spaces.`,
		Example: `  # Drag the left front to the right of the middle front
  rotacheck snap --slot 4 --x 5 --y 2 rotation1.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := lineup.ParseSlot(slot)
			if err != nil {
				return err
			}
			l, err := c.loadLineup(argOrEmpty(args), flags)
			if err != nil {
				return err
			}

			target := court.Point{X: x, Y: y}
			var t *court.Transformer
			if screen {
				if t, err = c.Config.Transformer(); err != nil {
					return err
				}
				target = t.PointToRules(target)
			}

			eng, closeEngine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			pos, err := eng.SnapFor(ctx, l, s, target)
			if err != nil {
				return err
			}

			if pos == target {
				printSuccess("%s may stand at %s", s, pos)
			} else {
				printWarning("%s snapped from %s to %s", s, target, pos)
			}
			if t != nil {
				printKeyValue("screen", t.PointToScreen(pos).String())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&slot, "slot", "s", 0, "rotation slot (1-6)")
	cmd.Flags().Float64Var(&x, "x", 0, "target x")
	cmd.Flags().Float64Var(&y, "y", 0, "target y")
	cmd.Flags().BoolVar(&screen, "screen", false, "target is in rendering units")
	_ = cmd.MarkFlagRequired("slot")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}
