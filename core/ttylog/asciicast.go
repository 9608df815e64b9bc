package ttylog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

// asciicastHeader is the first line of an asciicast v2 file.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
type asciicastHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// NewAsciicastLogSink creates a LogSink writing asciicast v2. The header is
// written with the first entry and event times are relative to it. Stderr is
// written as output, the format has no separate stream for it.
func NewAsciicastLogSink(w io.Writer, title string) LogSink {
	enc := json.NewEncoder(w)
	var start int64
	started := false

	return func(entry *Entry) error {
		if !started {
			started = true
			start = entry.TimestampMicros
			err := enc.Encode(&asciicastHeader{
				Version:   2,
				Width:     80,
				Height:    24,
				Timestamp: time.UnixMicro(start).Unix(),
				Title:     title,
				Env:       map[string]string{"TERM": "xterm-256color", "SHELL": "/bin/sh"},
			})
			if err != nil {
				return err
			}
		}

		code := "o"
		if entry.FD == FDStdin {
			code = "i"
		}
		elapsed := time.Duration(entry.TimestampMicros-start) * time.Microsecond
		return enc.Encode([]interface{}{elapsed.Seconds(), code, string(entry.Data)})
	}
}

// AsciicastLogSource reads entries from an asciicast v2 file.
type AsciicastLogSource struct {
	scanner    *bufio.Scanner
	readHeader bool
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log events from an asciicast formatted file.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{scanner: bufio.NewScanner(r)}
}

// Next gets the next input or output entry, skipping other event types. It
// returns io.EOF if there are no more.
func (s *AsciicastLogSource) Next() (*Entry, error) {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if !s.readHeader {
			s.readHeader = true
			continue
		}
		if len(line) == 0 {
			continue
		}

		var (
			seconds float64
			code    string
			data    string
		)
		event := []interface{}{&seconds, &code, &data}
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("malformed event %q: %w", line, err)
		}
		if len(event) != 3 {
			return nil, fmt.Errorf("malformed event %q: want 3 fields, got %d", line, len(event))
		}

		fd := FDStdout
		switch code {
		case "o":
		case "i":
			fd = FDStdin
		default:
			continue
		}

		return &Entry{
			TimestampMicros: time.Duration(seconds * float64(time.Second)).Microseconds(),
			FD:              fd,
			Data:            []byte(data),
		}, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
