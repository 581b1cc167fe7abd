// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for stampkit.

Install instructions:
  Bash:       stamp completion bash > /etc/bash_completion.d/stamp
              echo 'source <(stamp completion bash)' >> ~/.bashrc
  Zsh:        stamp completion zsh > ~/.zsh/completions/_stamp
  Fish:       stamp completion fish > ~/.config/fish/completions/stamp.fish
  PowerShell: stamp completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# stampkit bash completion")
				fmt.Fprintln(os.Stdout, "# Install: stamp completion bash > /etc/bash_completion.d/stamp")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(stamp completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# stampkit zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: stamp completion zsh > ~/.zsh/completions/_stamp")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# stampkit fish completion")
				fmt.Fprintln(os.Stdout, "# Install: stamp completion fish > ~/.config/fish/completions/stamp.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# stampkit PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: stamp completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
