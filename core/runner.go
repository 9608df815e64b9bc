// Package core runs scripts line by line against an execution context.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/josephlewis42/start/commands"
	"github.com/josephlewis42/start/core/config"
	"github.com/josephlewis42/start/core/logger"
	"github.com/josephlewis42/start/core/shell"
	"github.com/josephlewis42/start/core/vos"
	"github.com/sirupsen/logrus"
)

// SupportedPlatform is the only GOOS scripts run on.
const SupportedPlatform = "linux"

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform, scripts only run on " + SupportedPlatform)
	ErrNotRoot             = errors.New("script must be run as root")
	ErrScriptNotFound      = errors.New("script file does not exist")
	ErrScriptEmpty         = errors.New("script file is empty")
)

// PreconditionError is returned when a script is rejected before any of its
// lines run.
type PreconditionError struct {
	// Err is one of the ErrUnsupportedPlatform, ErrNotRoot, ErrScriptNotFound
	// or ErrScriptEmpty sentinels.
	Err error
	// Detail names the script path or platform the check failed on.
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Detail)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Runner executes scripts one line at a time and stops at the first failure.
type Runner struct {
	OS         *vos.Context
	Dispatcher *commands.Dispatcher
	// Console receives status lines for the person running the script.
	Console io.Writer
	// Recorder receives structured run events.
	Recorder *logger.Recorder
	// Log receives debug output.
	Log logrus.FieldLogger
	// Echo prints each directive before it runs.
	Echo bool

	// GOOS and Geteuid are the platform checks, defaulting to the host.
	GOOS    string
	Geteuid func() int
}

// NewRunner creates a runner for vctx with the behavior set in cfg.
func NewRunner(vctx *vos.Context, cfg *config.Configuration, console io.Writer, recorder *logger.Recorder) *Runner {
	return &Runner{
		OS: vctx,
		Dispatcher: commands.NewDispatcher(commands.Options{
			SleepUnit:      cfg.SleepDuration(),
			FailOnExitCode: cfg.FailOnExitCode,
		}),
		Console:  console,
		Recorder: recorder,
		Echo:     cfg.Echo,
	}
}

func (r *Runner) goos() string {
	if r.GOOS == "" {
		return runtime.GOOS
	}
	return r.GOOS
}

func (r *Runner) geteuid() int {
	if r.Geteuid == nil {
		return os.Geteuid()
	}
	return r.Geteuid()
}

func (r *Runner) console() io.Writer {
	if r.Console == nil {
		return io.Discard
	}
	return r.Console
}

func (r *Runner) log() logrus.FieldLogger {
	if r.Log == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		return log
	}
	return r.Log
}

func (r *Runner) recorder() *logger.Recorder {
	if r.Recorder == nil {
		return logger.NewNopRecorder()
	}
	return r.Recorder
}

func (r *Runner) dispatcher() *commands.Dispatcher {
	if r.Dispatcher == nil {
		return commands.NewDispatcher(commands.Options{})
	}
	return r.Dispatcher
}

// Load checks the preconditions for running scriptPath and reads it.
//
// The checks run in order: platform, root (only if requireRoot, and before
// the file is opened), existence, then emptiness. Violations are returned as
// a *PreconditionError.
func (r *Runner) Load(scriptPath string, requireRoot bool) (*Script, error) {
	if goos := r.goos(); goos != SupportedPlatform {
		return nil, &PreconditionError{Err: ErrUnsupportedPlatform, Detail: goos}
	}

	if requireRoot && r.geteuid() != 0 {
		return nil, &PreconditionError{Err: ErrNotRoot}
	}

	path := r.OS.Abs(scriptPath)
	if info, err := r.OS.Fs().Stat(path); err != nil || info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, &PreconditionError{Err: ErrScriptNotFound, Detail: scriptPath}
		}
		return nil, err
	}

	script, err := LoadScript(r.OS.Fs(), path)
	if err != nil {
		return nil, err
	}

	if len(script.Lines) == 0 {
		return nil, &PreconditionError{Err: ErrScriptEmpty, Detail: scriptPath}
	}

	return script, nil
}

// Run checks the preconditions for scriptPath then executes its lines in
// order. The first failing line stops the run and is returned as a
// *LineError; effects of earlier lines are kept.
func (r *Runner) Run(ctx context.Context, scriptPath string, requireRoot bool) (err error) {
	run := r.recorder().NewRun(scriptPath)
	log := r.log().WithField(logger.FieldRunID, run.RunID())

	started := time.Now()
	executed := 0
	defer func() {
		run.ScriptFinished(executed, time.Since(started), err)
	}()

	script, err := r.Load(scriptPath, requireRoot)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.console(), "Running script %q...\n", scriptPath)
	run.ScriptStarted(len(script.Lines))

	for i, text := range script.Lines {
		lineNo := i + 1
		if shell.IsComment(text) {
			continue
		}

		tokens, err := shell.Tokenize(text)
		if err != nil {
			run.DirectiveFailed(lineNo, nil, 0, err)
			return &LineError{Line: lineNo, Text: text, Err: err}
		}
		if len(tokens) == 0 {
			continue
		}

		if r.Echo {
			fmt.Fprintf(r.console(), "+ %s\n", strings.Join(tokens, " "))
		}

		log.WithField(logger.FieldLine, lineNo).Debugf("dispatching %q", tokens)
		began := time.Now()
		if err := r.dispatcher().Dispatch(ctx, r.OS, tokens[0], tokens[1:]); err != nil {
			run.DirectiveFailed(lineNo, tokens, time.Since(began), err)
			return &LineError{Line: lineNo, Text: text, Err: err}
		}
		run.DirectiveExecuted(lineNo, tokens, time.Since(began))
		executed++
	}

	log.Debugf("executed %d directives in %s", executed, time.Since(started))
	return nil
}
