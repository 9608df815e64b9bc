// Package ttylog records the terminal output of a script run and plays it
// back.
package ttylog

import (
	"io"
	"sync"
	"time"
)

// FD identifies the stream an entry was read from or written to.
type FD int

const (
	FDStdin FD = iota
	FDStdout
	FDStderr
)

// Entry is a single chunk of terminal I/O.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer.
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.FD == FDStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// Recorder timestamps writes to the streams it wraps and forwards them to a
// sink. It is safe for concurrent use, launched programs write stdout and
// stderr from separate goroutines.
type Recorder struct {
	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
	err    error
}

// NewRecorder creates a recorder that forwards all events to output.
func NewRecorder(output LogSink) *Recorder {
	return &Recorder{output: output, now: time.Now}
}

// Writer returns a writer that writes to wrapped and records what was
// written as fd.
func (r *Recorder) Writer(fd FD, wrapped io.Writer) io.Writer {
	return &recorderWriter{r: r, fd: fd, wrapped: wrapped}
}

// Err returns the first error the sink returned, if any. Recording errors
// never fail the wrapped writes.
func (r *Recorder) Err() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.err
}

func (r *Recorder) record(fd FD, data []byte) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// The sink may keep the slice, the caller owns it.
	owned := make([]byte, len(data))
	copy(owned, data)

	err := r.output(&Entry{
		TimestampMicros: r.now().UnixMicro(),
		FD:              fd,
		Data:            owned,
	})
	if err != nil && r.err == nil {
		r.err = err
	}
}

type recorderWriter struct {
	r       *Recorder
	fd      FD
	wrapped io.Writer
}

func (w *recorderWriter) Write(p []byte) (int, error) {
	n, err := w.wrapped.Write(p)
	if n > 0 {
		w.r.record(w.fd, p[:n])
	}
	return n, err
}
