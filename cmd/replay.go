/*
Copyright © 2021 Joseph Lewis <joseph@josephlewis.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"time"

	"github.com/josephlewis42/start/core/ttylog"
	"github.com/spf13/cobra"
)

func newReplayCommand(opts *rootOptions) *cobra.Command {
	var maxPause time.Duration

	replayCmd := &cobra.Command{
		Use:   "replay RECORDING",
		Short: "Play a run recorded with --record.",
		Long:  `Plays the output of a recorded run back to the current terminal.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			fd, err := opts.fsys().Open(args[0])
			if err != nil {
				return err
			}
			defer fd.Close()

			sink := ttylog.NewClientOutput(cmd.OutOrStdout())
			return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), ttylog.NewRealTimePlayback(maxPause, sink))
		},
	}

	replayCmd.Flags().DurationVar(&maxPause, "max-pause", 2*time.Second, "longest pause between outputs, 0 plays without pauses")
	return replayCmd
}
