package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints shell completion scripts. It overrides the root
// PersistentPreRunE so no config is loaded.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell. Completion covers every
subcommand and flag, and suggests file names for formation documents.

Try it in the current shell:

  bash:       source <(rotacheck completion bash)
  zsh:        source <(rotacheck completion zsh)
  fish:       rotacheck completion fish | source
  powershell: rotacheck completion powershell | Out-String | Invoke-Expression

To keep it, write the script where your shell looks for completions, for
example:

  rotacheck completion bash > ~/.local/share/bash-completion/completions/rotacheck
  rotacheck completion zsh > "${fpath[1]}/_rotacheck"
  rotacheck completion fish > ~/.config/fish/completions/rotacheck.fish

The config file is not read, so a broken rotacheck.yaml never breaks
completion.`,
		DisableFlagsInUseLine: true,
		PersistentPreRunE:     func(*cobra.Command, []string) error { return nil },
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
