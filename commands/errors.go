package commands

import (
	"errors"
	"fmt"
)

// Kind classifies why a directive failed.
type Kind int

const (
	// KindMissingArgument means fewer arguments than the directive needs.
	KindMissingArgument Kind = iota + 1
	// KindUnknownCommand means the command name isn't a directive.
	KindUnknownCommand
	// KindNotFound means a file, directory or executable doesn't exist.
	KindNotFound
	// KindInvalidArgument means an argument is malformed or the wrong type
	// of path.
	KindInvalidArgument
	// KindFilesystem means a filesystem operation failed.
	KindFilesystem
	// KindExec means a program couldn't be launched or exited non-zero.
	KindExec
)

var (
	ErrMissingArgument = errors.New("missing argument")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrFilesystem      = errors.New("filesystem error")
	ErrExec            = errors.New("exec failed")
)

var kindSentinels = map[Kind]error{
	KindMissingArgument: ErrMissingArgument,
	KindUnknownCommand:  ErrUnknownCommand,
	KindNotFound:        ErrNotFound,
	KindInvalidArgument: ErrInvalidArgument,
	KindFilesystem:      ErrFilesystem,
	KindExec:            ErrExec,
}

func (k Kind) String() string {
	if sentinel, ok := kindSentinels[k]; ok {
		return sentinel.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DirectiveError is the failure of a single directive.
//
// errors.Is matches both the sentinel for its Kind (e.g. ErrNotFound) and
// anything in the wrapped cause.
type DirectiveError struct {
	Kind Kind
	// Command is the command name as written in the script.
	Command string
	// Msg describes the failure and names the offending argument.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *DirectiveError) Error() string {
	msg := e.Msg
	// The message of an unknown command already names it.
	if e.Kind != KindUnknownCommand {
		msg = e.Command + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the error's Kind.
func (e *DirectiveError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

func newError(kind Kind, inv *Invocation, cause error, format string, a ...interface{}) *DirectiveError {
	return &DirectiveError{
		Kind:    kind,
		Command: inv.Name,
		Msg:     fmt.Sprintf(format, a...),
		Err:     cause,
	}
}
