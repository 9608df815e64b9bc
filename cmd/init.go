package cmd

import (
	"github.com/josephlewis42/start/core/config"
	"github.com/spf13/cobra"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write the default configuration to DIR, or the --config directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			dir := opts.cfgPath
			if len(args) > 0 {
				dir = args[0]
			}

			_, err := config.Initialize(opts.fsys(), dir, opts.logger(cmd.ErrOrStderr()))
			return err
		},
	}
}
