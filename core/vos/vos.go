// Package vos holds the execution context a script runs in.
//
// A Context owns everything a directive may read or change: the working
// directory, the filesystem, the environment handed to launched programs,
// the process launcher and the sleeper. Nothing here touches the process
// wide working directory, so independent contexts never interfere.
package vos

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// ErrNotDir is returned when a directory operation is given a file.
var ErrNotDir = errors.New("not a directory")

// Context is the mutable state threaded through one script run.
type Context struct {
	fs       afero.Fs
	wd       string
	env      *Env
	launcher Launcher
	sleeper  Sleeper
	stdio    IO
}

// NewContext creates a context rooted at the absolute directory wd.
//
// The context starts with an empty environment, discards output and sleeps
// using real timers.
func NewContext(fsys afero.Fs, wd string, launcher Launcher) *Context {
	return &Context{
		fs:       fsys,
		wd:       filepath.Clean(wd),
		env:      NewEnv(),
		launcher: launcher,
		sleeper:  TimerSleeper{},
		stdio:    NewNullIO(),
	}
}

// NewOSContext creates a context backed by the host filesystem and process
// launcher, starting in the process working directory.
func NewOSContext(stdio IO, environ []string) (*Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	c := NewContext(afero.NewOsFs(), wd, &ExecLauncher{})
	c.env = NewEnvFromList(environ)
	c.stdio = stdio
	return c, nil
}

// Fs returns the filesystem. Paths passed to it must already be resolved
// with Abs.
func (c *Context) Fs() afero.Fs {
	return c.fs
}

// Env returns the environment given to launched programs.
func (c *Context) Env() *Env {
	return c.env
}

// IO returns the standard streams given to launched programs.
func (c *Context) IO() IO {
	return c.stdio
}

// SetIO replaces the standard streams given to launched programs.
func (c *Context) SetIO(stdio IO) {
	c.stdio = stdio
}

// SetSleeper replaces the sleeper.
func (c *Context) SetSleeper(s Sleeper) {
	c.sleeper = s
}

// Getwd returns the working directory.
func (c *Context) Getwd() string {
	return c.wd
}

// Abs resolves name against the working directory.
func (c *Context) Abs(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.wd, name)
}

// resolve makes name absolute. Like the host OS, the empty path names
// nothing.
func (c *Context) resolve(op, name string) (string, error) {
	if name == "" {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return c.Abs(name), nil
}

// Chdir changes the working directory. On failure the working directory is
// left as it was.
func (c *Context) Chdir(dir string) error {
	target, err := c.resolve("chdir", dir)
	if err != nil {
		return err
	}

	info, err := c.fs.Stat(target)
	switch {
	case err != nil:
		return err
	case !info.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: ErrNotDir}
	}

	c.wd = target
	return nil
}

// Stat resolves name and returns its file info.
func (c *Context) Stat(name string) (fs.FileInfo, error) {
	path, err := c.resolve("stat", name)
	if err != nil {
		return nil, err
	}
	return c.fs.Stat(path)
}

// MkdirAll creates a directory and any missing parents.
func (c *Context) MkdirAll(name string, perm fs.FileMode) error {
	path, err := c.resolve("mkdir", name)
	if err != nil {
		return err
	}
	return c.fs.MkdirAll(path, perm)
}

// Remove removes a single file or empty directory.
func (c *Context) Remove(name string) error {
	path, err := c.resolve("remove", name)
	if err != nil {
		return err
	}
	return c.fs.Remove(path)
}

// RemoveAll removes a path and everything under it.
func (c *Context) RemoveAll(name string) error {
	path, err := c.resolve("removeall", name)
	if err != nil {
		return err
	}
	return c.fs.RemoveAll(path)
}

// Sleep blocks for d or until ctx is done.
func (c *Context) Sleep(ctx context.Context, d time.Duration) error {
	return c.sleeper.Sleep(ctx, d)
}

// Spawn resolves name to an executable, runs it with argv in the working
// directory and waits for it to exit. argv[0] is conventionally name.
func (c *Context) Spawn(ctx context.Context, name string, argv []string) (int, error) {
	path, err := LookPath(c, name)
	if err != nil {
		return -1, err
	}

	return c.launcher.Spawn(ctx, &Cmd{
		Path:   path,
		Args:   argv,
		Env:    c.env.Environ(),
		Dir:    c.wd,
		Stdin:  c.stdio.Stdin,
		Stdout: c.stdio.Stdout,
		Stderr: c.stdio.Stderr,
	})
}
