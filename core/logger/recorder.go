package logger

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Event names written to the "event" field.
const (
	EventScriptStarted     = "script_started"
	EventDirectiveExecuted = "directive_executed"
	EventDirectiveFailed   = "directive_failed"
	EventScriptFinished    = "script_finished"
)

// Field names attached to events.
const (
	FieldEvent    = "event"
	FieldRunID    = "run_id"
	FieldScript   = "script"
	FieldLine     = "line"
	FieldCommand  = "command"
	FieldArgs     = "args"
	FieldElapsed  = "elapsed_ms"
	FieldLines    = "lines"
	FieldExecuted = "executed"
)

// Recorder captures script run events.
type Recorder struct {
	log logrus.FieldLogger
}

// NewRecorder creates a Recorder that writes events to the given logger.
func NewRecorder(log logrus.FieldLogger) *Recorder {
	return &Recorder{log: log}
}

// NewJSONLinesRecorder creates a Recorder that exports events in newline
// delimited JSON object format.
func NewJSONLinesRecorder(w io.Writer) *Recorder {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
	return NewRecorder(log)
}

// NewNopRecorder creates a Recorder that drops every event.
func NewNopRecorder() *Recorder {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRecorder(log)
}

// NewRun creates a recorder for a single execution of a script with a fresh
// run ID.
func (r *Recorder) NewRun(script string) *RunRecorder {
	runID := fmt.Sprintf("%d", rand.Uint64())
	return &RunRecorder{
		runID: runID,
		entry: r.log.WithFields(logrus.Fields{
			FieldRunID:  runID,
			FieldScript: script,
		}),
	}
}

// RunRecorder logs events with a shared run ID.
type RunRecorder struct {
	runID string
	entry *logrus.Entry
}

// RunID returns the ID attached to every event of the run.
func (r *RunRecorder) RunID() string {
	return r.runID
}

// ScriptStarted records that the preconditions passed and lines are about to
// execute.
func (r *RunRecorder) ScriptStarted(lines int) {
	r.entry.WithFields(logrus.Fields{
		FieldEvent: EventScriptStarted,
		FieldLines: lines,
	}).Info("script started")
}

// DirectiveExecuted records a directive that completed successfully.
func (r *RunRecorder) DirectiveExecuted(line int, tokens []string, elapsed time.Duration) {
	r.directive(line, tokens, elapsed).
		WithField(FieldEvent, EventDirectiveExecuted).
		Info("directive executed")
}

// DirectiveFailed records a directive that stopped the run.
func (r *RunRecorder) DirectiveFailed(line int, tokens []string, elapsed time.Duration, err error) {
	r.directive(line, tokens, elapsed).
		WithField(FieldEvent, EventDirectiveFailed).
		WithError(err).
		Error("directive failed")
}

// ScriptFinished records the end of a run. A nil err means every line ran.
func (r *RunRecorder) ScriptFinished(executed int, elapsed time.Duration, err error) {
	entry := r.entry.WithFields(logrus.Fields{
		FieldEvent:    EventScriptFinished,
		FieldExecuted: executed,
		FieldElapsed:  elapsed.Milliseconds(),
	})

	if err != nil {
		entry.WithError(err).Error("script failed")
		return
	}
	entry.Info("script finished")
}

func (r *RunRecorder) directive(line int, tokens []string, elapsed time.Duration) *logrus.Entry {
	fields := logrus.Fields{
		FieldLine:    line,
		FieldElapsed: elapsed.Milliseconds(),
	}
	if len(tokens) > 0 {
		fields[FieldCommand] = tokens[0]
		fields[FieldArgs] = tokens[1:]
	}
	return r.entry.WithFields(fields)
}
