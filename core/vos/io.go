package vos

import "io"

// IO holds the standard streams handed to launched programs. A nil stream is
// connected to the null device.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewIO creates an IO from the given streams.
func NewIO(stdin io.Reader, stdout, stderr io.Writer) IO {
	return IO{Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

// NewNullIO creates an IO with every stream connected to the null device.
func NewNullIO() IO {
	return IO{}
}
