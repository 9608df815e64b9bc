package logger

import (
	"encoding/json"
	"io"
	"time"
)

// Event is a single decoded line of an event log.
type Event struct {
	Time  time.Time `json:"time"`
	Level string    `json:"level"`
	Msg   string    `json:"msg"`

	Event     string   `json:"event"`
	RunID     string   `json:"run_id"`
	Script    string   `json:"script"`
	Line      int      `json:"line,omitempty"`
	Command   string   `json:"command,omitempty"`
	Args      []string `json:"args,omitempty"`
	ElapsedMS int64    `json:"elapsed_ms,omitempty"`
	Error     string   `json:"error,omitempty"`
	Lines     int      `json:"lines,omitempty"`
	Executed  int      `json:"executed,omitempty"`
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(ev *Event)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var ev Event
		if err := decoder.Decode(&ev); err != nil {
			return err
		}

		handler(&ev)
	}
	return nil
}
