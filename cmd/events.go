package cmd

import (
	"fmt"
	"io"

	"github.com/josephlewis42/start/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func newEventsCommand(opts *rootOptions) *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Explore the run event log.",
	}

	eventsCmd.AddCommand(&cobra.Command{
		Use:   "report [EVENT_LOG]",
		Short: "Show a report of events, defaults to the configured event_log.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			fd, err := openEventLog(cmd, opts, args)
			if err != nil {
				return err
			}
			defer fd.Close()

			report := logger.NewReport()
			if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
				return err
			}

			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	})

	return eventsCmd
}

func openEventLog(cmd *cobra.Command, opts *rootOptions, args []string) (io.ReadCloser, error) {
	if len(args) > 0 {
		return opts.fsys().Open(args[0])
	}

	cfg, err := opts.loadConfig(cmd, opts.logger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	return cfg.ReadEventLog()
}
