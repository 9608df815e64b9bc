// Package vostest provides a hermetic execution context for tests.
package vostest

import (
	"bytes"
	"context"
	"time"

	"github.com/josephlewis42/start/core/vos"
	"github.com/spf13/afero"
)

// FakeLauncher records every spawn instead of starting a process.
type FakeLauncher struct {
	// Spawned holds every command in the order it was spawned.
	Spawned []*vos.Cmd

	// ExitStatus is returned from every spawn.
	ExitStatus int
	// Err is returned from every spawn if non-nil.
	Err error
}

var _ vos.Launcher = (*FakeLauncher)(nil)

// Spawn implements vos.Launcher.Spawn.
func (f *FakeLauncher) Spawn(ctx context.Context, cmd *vos.Cmd) (int, error) {
	f.Spawned = append(f.Spawned, cmd)
	if f.Err != nil {
		return -1, f.Err
	}
	return f.ExitStatus, nil
}

// FakeSleeper records sleeps and returns immediately.
type FakeSleeper struct {
	Slept []time.Duration
}

var _ vos.Sleeper = (*FakeSleeper)(nil)

// Sleep implements vos.Sleeper.Sleep.
func (f *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	f.Slept = append(f.Slept, d)
	return ctx.Err()
}

// TestOS bundles a context with the fakes behind it.
type TestOS struct {
	*vos.Context

	Fs       afero.Fs
	Launcher *FakeLauncher
	Sleeper  *FakeSleeper
	Stdout   *bytes.Buffer
	Stderr   *bytes.Buffer
}

// NewDeterministicOS creates a context on an in-memory filesystem holding
// /bin, /tmp and /home/user, starting in /home/user with PATH=/bin.
func NewDeterministicOS() *TestOS {
	memFs := afero.NewMemMapFs()
	for _, dir := range []string{"/bin", "/tmp", "/home/user"} {
		if err := memFs.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
	}

	launcher := &FakeLauncher{}
	sleeper := &FakeSleeper{}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	vctx := vos.NewContext(memFs, "/home/user", launcher)
	vctx.Env().Setenv("PATH", "/bin")
	vctx.SetSleeper(sleeper)
	vctx.SetIO(vos.NewIO(nil, stdout, stderr))

	return &TestOS{
		Context:  vctx,
		Fs:       memFs,
		Launcher: launcher,
		Sleeper:  sleeper,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

// AddExecutable creates an empty executable file at the absolute path name.
func (t *TestOS) AddExecutable(name string) *TestOS {
	if err := afero.WriteFile(t.Fs, name, nil, 0755); err != nil {
		panic(err)
	}
	return t
}

// AddFile creates a regular file at the absolute path name.
func (t *TestOS) AddFile(name, contents string) *TestOS {
	if err := afero.WriteFile(t.Fs, name, []byte(contents), 0644); err != nil {
		panic(err)
	}
	return t
}
