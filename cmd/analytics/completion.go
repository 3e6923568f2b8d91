package main

import (
	"io"
	"sort"

	"github.com/spf13/cobra"
)

type completionGenerator func(root *cobra.Command, w io.Writer) error

var completionGenerators = map[string]completionGenerator{
	"bash": func(root *cobra.Command, w io.Writer) error {
		return root.GenBashCompletionV2(w, true)
	},
	"zsh": func(root *cobra.Command, w io.Writer) error {
		return root.GenZshCompletion(w)
	},
	"fish": func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	},
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func completionShells() []string {
	shells := make([]string, 0, len(completionGenerators))
	for shell := range completionGenerators {
		shells = append(shells, shell)
	}
	sort.Strings(shells)
	return shells
}

// newCompletionCmd prints the completion script of the analytics CLI for one shell.
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion <shell>",
		Short:     "Print the shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: completionShells(),
		// no configuration is loaded: the script does not depend on it.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
