package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/josephlewis42/start/core/vos/vostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	for _, name := range []string{"run", "exec"} {
		t.Run(name, func(t *testing.T) {
			tos := vostest.NewDeterministicOS().AddExecutable("/bin/echo")

			err := Dispatch(context.Background(), tos.Context, name, []string{"echo", "hello world", "again"})
			require.NoError(t, err)

			require.Len(t, tos.Launcher.Spawned, 1)
			got := tos.Launcher.Spawned[0]
			assert.Equal(t, "/bin/echo", got.Path)
			assert.Equal(t, []string{"echo", "hello world", "again"}, got.Args)
			assert.Equal(t, "/home/user", got.Dir)
			assert.Equal(t, []string{"PATH=/bin"}, got.Env)
			assert.Equal(t, tos.Stdout, got.Stdout)
		})
	}
}

func TestRun_usesWorkingDirectory(t *testing.T) {
	tos := vostest.NewDeterministicOS().AddExecutable("/tmp/build.sh")
	ctx := context.Background()

	require.NoError(t, Dispatch(ctx, tos.Context, "cd", []string{"/tmp"}))
	require.NoError(t, Dispatch(ctx, tos.Context, "run", []string{"./build.sh"}))

	require.Len(t, tos.Launcher.Spawned, 1)
	assert.Equal(t, "/tmp/build.sh", tos.Launcher.Spawned[0].Path)
	assert.Equal(t, "/tmp", tos.Launcher.Spawned[0].Dir)
}

func TestRun_notFound(t *testing.T) {
	tos := vostest.NewDeterministicOS()

	err := Dispatch(context.Background(), tos.Context, "run", []string{"missing-tool"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, `run: command "missing-tool" not found`)
	assert.Empty(t, tos.Launcher.Spawned)
}

func TestRun_launchFailure(t *testing.T) {
	tos := vostest.NewDeterministicOS().AddExecutable("/bin/broken")
	cause := errors.New("exec format error")
	tos.Launcher.Err = cause

	err := Dispatch(context.Background(), tos.Context, "exec", []string{"broken"})
	assert.ErrorIs(t, err, ErrExec)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"broken"`)
}

func TestRun_exitStatus(t *testing.T) {
	t.Run("ignored by default", func(t *testing.T) {
		tos := vostest.NewDeterministicOS().AddExecutable("/bin/false")
		tos.Launcher.ExitStatus = 1

		err := Dispatch(context.Background(), tos.Context, "run", []string{"false"})
		assert.NoError(t, err)
	})

	t.Run("fail on exit code", func(t *testing.T) {
		tos := vostest.NewDeterministicOS().AddExecutable("/bin/false")
		tos.Launcher.ExitStatus = 2
		dispatcher := NewDispatcher(Options{FailOnExitCode: true})

		err := dispatcher.Dispatch(context.Background(), tos.Context, "run", []string{"false"})
		assert.ErrorIs(t, err, ErrExec)
		assert.EqualError(t, err, `run: "false" exited with status 2`)
	})
}
