package cmd

import (
	"fmt"

	"github.com/josephlewis42/start/core"
	"github.com/josephlewis42/start/core/vos"
	"github.com/spf13/cobra"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check SCRIPT",
		Short: "Report every malformed or unknown line without running anything.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			vctx, err := vos.NewOSContext(vos.NewNullIO(), nil)
			if err != nil {
				return err
			}

			runner := &core.Runner{OS: vctx}
			script, err := runner.Load(args[0], false)
			if err != nil {
				return err
			}

			problems := core.CheckScript(script)
			printer := newColorPrinter(opts.color, cmd.OutOrStdout())
			for _, problem := range problems {
				printer.Fprintf(colorBoldRed, "%s:%d: %v\n", args[0], problem.Line, problem.Err)
			}

			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) found in %q", len(problems), args[0])
			}

			printer.Fprintf(colorBoldGreen, "%s: OK\n", args[0])
			return nil
		},
	}
}
