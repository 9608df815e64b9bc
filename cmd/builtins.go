package cmd

import (
	"github.com/josephlewis42/start/commands"
	"github.com/spf13/cobra"
)

func newBuiltinsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "Show the directives scripts can use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commands.PrintHelp(cmd.OutOrStdout())
			return nil
		},
	}
}
