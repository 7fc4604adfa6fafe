package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/protonav/pkg/schema"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for protonav.

To load completions:

Bash:
  $ source <(protonav completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ protonav completion bash > /etc/bash_completion.d/protonav
  # macOS:
  $ protonav completion bash > $(brew --prefix)/etc/bash_completion.d/protonav

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ protonav completion zsh > "${fpath[1]}/_protonav"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ protonav completion fish | source

  # To load completions for each session, execute once:
  $ protonav completion fish > ~/.config/fish/completions/protonav.fish

PowerShell:
  PS> protonav completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> protonav completion powershell > protonav.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeDefinitionKeys completes the key arguments that follow a schema
// file: the file itself completes as a path, later arguments as the
// document's definition keys.
func completeDefinitionKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []string{"json", "yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	}
	doc, _, err := schema.LoadFile(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var keys []string
	for _, k := range doc.Keys() {
		if strings.HasPrefix(k, toComplete) {
			keys = append(keys, k)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
