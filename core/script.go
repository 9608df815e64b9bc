package core

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/start/commands"
	"github.com/josephlewis42/start/core/shell"
	"github.com/spf13/afero"
)

// Script is the list of raw lines loaded from a script file.
type Script struct {
	Path  string
	Lines []string
}

// LoadScript reads the script at the absolute path name. Lines are split on
// newlines with any trailing carriage return dropped; a final newline does
// not start another line.
func LoadScript(fsys afero.Fs, name string) (*Script, error) {
	contents, err := afero.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	return &Script{Path: name, Lines: splitLines(string(contents))}, nil
}

func splitLines(contents string) []string {
	if contents == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(contents, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// LineError is a failure on a single 1-based line of a script.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// CheckScript tokenizes every line and validates each directive name and
// arity without running anything.
func CheckScript(script *Script) []*LineError {
	var problems []*LineError
	for i, text := range script.Lines {
		if shell.IsComment(text) {
			continue
		}

		tokens, err := shell.Tokenize(text)
		if err == nil && len(tokens) > 0 {
			_, err = commands.Validate(tokens[0], tokens[1:])
		}

		if err != nil {
			problems = append(problems, &LineError{Line: i + 1, Text: text, Err: err})
		}
	}
	return problems
}
