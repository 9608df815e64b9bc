package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/josephlewis42/start/core"
	"github.com/josephlewis42/start/core/config"
	"github.com/josephlewis42/start/core/logger"
	"github.com/josephlewis42/start/core/ttylog"
	"github.com/josephlewis42/start/core/vos"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	cfgPath     string
	requireRoot bool
	color       string
	eventLog    string
	echo        bool
	verbose     bool
	record      string

	// fs holds the configuration and event log, defaults to the host.
	fs afero.Fs
}

func (o *rootOptions) fsys() afero.Fs {
	if o.fs == nil {
		return afero.NewOsFs()
	}
	return o.fs
}

func (o *rootOptions) logger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig reads the configuration and applies any flags that were set on
// the command line over it.
func (o *rootOptions) loadConfig(cmd *cobra.Command, log logrus.FieldLogger) (*config.Configuration, error) {
	cfg, err := config.LoadOrDefault(o.fsys(), o.cfgPath, log)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("require-root") {
		cfg.RequireRoot = o.requireRoot
	}
	if flags.Changed("echo") {
		cfg.Echo = o.echo
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if flags.Changed("event-log") {
		// Relative to the working directory rather than the config.
		abs, err := filepath.Abs(o.eventLog)
		if err != nil {
			return nil, err
		}
		cfg.EventLog = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o.color = cfg.Color
	return cfg, nil
}

// openRecorder opens the configured event log, the returned func closes it.
func (o *rootOptions) openRecorder(cfg *config.Configuration) (*logger.Recorder, func() error, error) {
	if cfg.EventLogPath() == "" {
		return logger.NewNopRecorder(), func() error { return nil }, nil
	}

	fd, err := cfg.OpenEventLog()
	if err != nil {
		return nil, nil, err
	}
	return logger.NewJSONLinesRecorder(fd), fd.Close, nil
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "start [flags] SCRIPT",
		Short: "Run a line oriented setup script",
		Long: `Runs each line of SCRIPT as a directive, stopping at the first failure.

Lines starting with // are comments. Run "start builtins" to list the
directives.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			log := opts.logger(cmd.ErrOrStderr())
			cfg, err := opts.loadConfig(cmd, log)
			if err != nil {
				return err
			}

			recorder, closeRecorder, err := opts.openRecorder(cfg)
			if err != nil {
				return err
			}
			defer closeRecorder()

			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
			if opts.record != "" {
				fd, err := opts.fsys().Create(opts.record)
				if err != nil {
					return err
				}
				defer fd.Close()

				tty := ttylog.NewRecorder(ttylog.NewAsciicastLogSink(fd, "start "+args[0]))
				stdout = tty.Writer(ttylog.FDStdout, stdout)
				stderr = tty.Writer(ttylog.FDStderr, stderr)
				defer func() {
					if err := tty.Err(); err != nil {
						log.WithError(err).Warn("recording incomplete")
					}
				}()
			}

			vctx, err := vos.NewOSContext(vos.NewIO(cmd.InOrStdin(), stdout, stderr), cfg.Environ(os.Environ()))
			if err != nil {
				return err
			}

			runner := core.NewRunner(vctx, cfg, stdout, recorder)
			runner.Log = log
			return runner.Run(cmd.Context(), args[0], cfg.RequireRoot)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgPath, "config", config.DefaultDir(), "directory holding config.yaml")
	flags.StringVar(&opts.color, "color", config.ColorAuto, "colorize the output (always|auto|never)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.Flags().BoolVarP(&opts.requireRoot, "require-root", "r", false, "fail unless run as root")
	rootCmd.Flags().StringVar(&opts.eventLog, "event-log", "", "append JSON run events to this file")
	rootCmd.Flags().BoolVar(&opts.echo, "echo", false, "print each directive before running it")
	rootCmd.Flags().StringVar(&opts.record, "record", "", "save the run's terminal output to this asciicast file")

	rootCmd.AddCommand(
		newCheckCommand(opts),
		newBuiltinsCommand(),
		newInitCommand(opts),
		newEventsCommand(opts),
		newReplayCommand(opts),
	)

	return rootCmd
}

// printError reports err on the command's error stream.
func printError(cmd *cobra.Command, opts *rootOptions, err error) {
	newColorPrinter(opts.color, cmd.ErrOrStderr()).Fprintf(colorBoldRed, "Error: %v\n", err)
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, opts *rootOptions) int {
	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd, opts, err)
		return 1
	}
	return 0
}

// Execute runs the command line of the current process and exits non-zero on
// failure. This is called by main.main().
func Execute() {
	if status := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, &rootOptions{}); status != 0 {
		os.Exit(status)
	}
}
