package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// explainCommand creates the explain command, a detailed single-lineup report.
func (c *CLI) explainCommand() *cobra.Command {
	var flags lineupFlags

	cmd := &cobra.Command{
		Use:   "explain [file]",
		Short: "Explain a lineup's overlap faults and how to fix them",
		Long: `Print every player's position, each overlap fault in plain language, the
fault severity and the smallest moves that clear positional faults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := argOrEmpty(args)

			l, err := c.loadLineup(path, flags)
			if err != nil {
				return err
			}
			eng, closeEngine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			a := eng.Validate(ctx, l)

			fmt.Fprintln(stdout, StyleTitle.Render(displayName(path, flags)))
			printPlayers(l)
			printNewline()
			printKeyValue("legal", fmt.Sprint(a.Legal()))
			printKeyValue("severity", renderSeverity(a.Severity()))

			if a.Legal() {
				printSuccess("No overlap faults")
				return nil
			}
			codes := make([]string, 0, len(a.Violations()))
			for _, code := range a.Result().Codes() {
				codes = append(codes, string(code))
			}
			printKeyValue("faults", strings.Join(codes, ", "))

			printNewline()
			for _, e := range a.Explanations() {
				printError("%s", e)
			}
			fixes := a.Fixes()
			if len(fixes) == 0 {
				printWarning("No single move clears these faults")
				return nil
			}
			printNewline()
			for _, f := range fixes {
				printInfo("%s (%.2f m)", f, f.Distance)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// printPlayers lists the lineup in slot order.
func printPlayers(l lineup.Lineup) {
	for _, p := range l.SortedBySlot() {
		name := p.Name()
		if p.IsServer {
			name += " (server)"
		}
		printKeyValue(p.Slot.String(), fmt.Sprintf("%s %s", p.Position(), StyleDim.Render(name)))
	}
}
