package vos

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// DefaultPath is searched for executables when the environment has no PATH.
const DefaultPath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"

// Cmd describes a program to launch.
type Cmd struct {
	// Path is the resolved path of the executable.
	Path string

	// Args holds command line arguments, including the command as Args[0].
	// If Args is empty the program is run with {Path}.
	Args []string

	// Env holds "key=value" entries, it is the whole environment of the
	// program.
	Env []string

	// Dir is the working directory of the program.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Launcher starts a program and blocks until it exits.
type Launcher interface {
	// Spawn runs cmd to completion and returns its exit status. A program that
	// ran and exited non-zero is not an error.
	Spawn(ctx context.Context, cmd *Cmd) (int, error)
}

// ExecLauncher launches host processes with os/exec.
type ExecLauncher struct{}

var _ Launcher = (*ExecLauncher)(nil)

// Spawn implements Launcher.Spawn.
func (*ExecLauncher) Spawn(ctx context.Context, c *Cmd) (int, error) {
	cmd := exec.CommandContext(ctx, c.Path)
	if len(c.Args) > 0 {
		cmd.Args = c.Args
	}
	cmd.Env = c.Env
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		return exitErr.ExitCode(), nil
	default:
		return -1, err
	}
}

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the context's PATH, or DefaultPath if PATH is unset. If file contains a
// slash, it is resolved against the working directory and PATH is not
// consulted. The result is always absolute.
func LookPath(c *Context, file string) (string, error) {
	if file == "" {
		return "", &exec.Error{Name: file, Err: ErrNotFound}
	}
	if strings.Contains(file, "/") {
		path := c.Abs(file)
		if err := findExecutable(c.fs, path); err != nil {
			return "", &exec.Error{Name: file, Err: err}
		}
		return path, nil
	}

	searchPath, ok := c.env.LookupEnv("PATH")
	if !ok {
		searchPath = DefaultPath
	}
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(c.Abs(dir), file)
		if err := findExecutable(c.fs, path); err == nil {
			return path, nil
		}
	}
	return "", &exec.Error{Name: file, Err: ErrNotFound}
}
