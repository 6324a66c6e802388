package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// shells lists the shells cobra can generate completions for.
var shells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command. Node IDs are not
// completed: they only exist inside a running editor or server.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for arbor's commands and flags
(serve, render, edit, cache, version).

  $ source <(arbor completion bash)
  $ arbor completion zsh > "${fpath[1]}/_arbor"
  $ arbor completion fish | source
  PS> arbor completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// writeCompletion writes the completion script for shell to w.
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}
