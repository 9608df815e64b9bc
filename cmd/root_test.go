package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	status int
	stdout string
	stderr string
}

func runCLI(t *testing.T, opts *rootOptions, args ...string) result {
	t.Helper()

	if opts == nil {
		opts = &rootOptions{}
	}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	status := run(args, strings.NewReader(""), stdout, stderr, opts)
	return result{status: status, stdout: stdout.String(), stderr: stderr.String()}
}

func requireLinux(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("scripts only run on linux")
	}
}

func writeScript(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "script.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestRun_success(t *testing.T) {
	requireLinux(t)
	dir := t.TempDir()
	script := writeScript(t, dir, "// make a tree\nmkdir "+dir+"/a/b\ncd "+dir+"/a\nrmdir b\nsleep 1\n")

	res := runCLI(t, nil, "--config", dir, script)

	assert.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Running script")
	assert.DirExists(t, filepath.Join(dir, "a"))
	assert.NoDirExists(t, filepath.Join(dir, "a", "b"))
	assert.Empty(t, res.stderr)
}

func TestRun_failure(t *testing.T) {
	requireLinux(t)
	dir := t.TempDir()
	script := writeScript(t, dir, "mkdir "+dir+"/first\nfoobar\nmkdir "+dir+"/third\n")

	res := runCLI(t, nil, "--config", dir, "--color", "never", script)

	assert.Equal(t, 1, res.status)
	assert.Equal(t, "Error: line 2: unknown command \"foobar\"\n", res.stderr)
	assert.DirExists(t, filepath.Join(dir, "first"))
	assert.NoDirExists(t, filepath.Join(dir, "third"))
}

func TestRun_colorAlways(t *testing.T) {
	requireLinux(t)
	dir := t.TempDir()

	res := runCLI(t, nil, "--config", dir, "--color", "always", filepath.Join(dir, "missing.txt"))

	assert.Equal(t, 1, res.status)
	assert.Contains(t, res.stderr, "\x1b[")
	assert.Contains(t, res.stderr, "script file does not exist")
}

func TestRun_badColor(t *testing.T) {
	requireLinux(t)
	dir := t.TempDir()
	script := writeScript(t, dir, "sleep 1\n")

	res := runCLI(t, nil, "--config", dir, "--color", "rainbow", script)

	assert.Equal(t, 1, res.status)
	assert.NotContains(t, res.stdout, "Running script")
}

func TestRun_requireRoot(t *testing.T) {
	requireLinux(t)
	if os.Geteuid() == 0 {
		t.Skip("running as root")
	}
	dir := t.TempDir()

	// The script doesn't need to exist, root is checked first.
	res := runCLI(t, nil, "--config", dir, "-r", filepath.Join(dir, "missing.txt"))

	assert.Equal(t, 1, res.status)
	assert.Contains(t, res.stderr, "root")
}

func TestRun_usage(t *testing.T) {
	res := runCLI(t, nil)

	assert.Equal(t, 1, res.status)
	assert.Contains(t, res.stdout, "Usage:")
	assert.Contains(t, res.stderr, "Error: ")
}

func TestRun_help(t *testing.T) {
	res := runCLI(t, nil, "--help")

	assert.Equal(t, 0, res.status)
	assert.Contains(t, res.stdout, "start [flags] SCRIPT")
	assert.Contains(t, res.stdout, "--require-root")
}

func TestRun_echoFromConfig(t *testing.T) {
	requireLinux(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("echo: true\n"), 0644))
	script := writeScript(t, dir, "mkdir "+dir+"/x\n")

	res := runCLI(t, nil, "--config", dir, script)
	assert.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "+ mkdir "+dir+"/x\n")

	res = runCLI(t, nil, "--config", dir, "--echo=false", script)
	assert.Equal(t, 0, res.status, res.stderr)
	assert.NotContains(t, res.stdout, "+ mkdir")
}

func TestRun_exec(t *testing.T) {
	requireLinux(t)
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	script := writeScript(t, dir, "cd "+dir+"\nrun sh -c \"touch marker\"\n")

	res := runCLI(t, nil, "--config", dir, script)

	assert.Equal(t, 0, res.status, res.stderr)
	assert.FileExists(t, filepath.Join(dir, "marker"))
}

func TestCheck(t *testing.T) {
	requireLinux(t)
	dir := t.TempDir()
	script := writeScript(t, dir, "mkdir "+dir+"/never\nbogus\ncd\n")

	res := runCLI(t, nil, "--color", "never", "check", script)

	assert.Equal(t, 1, res.status)
	assert.Contains(t, res.stdout, script+":2: unknown command \"bogus\"")
	assert.Contains(t, res.stdout, script+":3: cd: no directory provided")
	assert.Contains(t, res.stderr, "2 problem(s)")
	assert.NoDirExists(t, filepath.Join(dir, "never"))

	good := writeScript(t, dir, "mkdir "+dir+"/never\n")
	res = runCLI(t, nil, "--color", "never", "check", good)
	assert.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "OK")
	assert.NoDirExists(t, filepath.Join(dir, "never"))
}

func TestBuiltins(t *testing.T) {
	res := runCLI(t, nil, "builtins")

	assert.Equal(t, 0, res.status)
	for _, name := range []string{"cd DIR", "run COMMAND", "mkdir", "rmdir", "rm FILE", "sleep", "aliases: exec"} {
		assert.Contains(t, res.stdout, name)
	}
}

func TestInit(t *testing.T) {
	opts := &rootOptions{fs: afero.NewMemMapFs()}

	res := runCLI(t, opts, "init", "/etc/start")
	assert.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stderr, "Writing /etc/start/config.yaml")

	exists, err := afero.Exists(opts.fs, "/etc/start/config.yaml")
	assert.NoError(t, err)
	assert.True(t, exists)

	res = runCLI(t, opts, "init", "/etc/start")
	assert.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stderr, "already exists")
}

func TestEventsReport(t *testing.T) {
	requireLinux(t)
	dir := t.TempDir()
	eventLog := filepath.Join(dir, "events.jsonl")
	good := writeScript(t, dir, "mkdir "+dir+"/a\nsleep 1\n")

	res := runCLI(t, nil, "--config", dir, "--event-log", eventLog, good)
	require.Equal(t, 0, res.status, res.stderr)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("rm "+dir+"/missing\n"), 0644))
	res = runCLI(t, nil, "--config", dir, "--event-log", eventLog, bad)
	require.Equal(t, 1, res.status)

	res = runCLI(t, nil, "events", "report", eventLog)
	require.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "runs: 2")
	assert.Contains(t, res.stdout, "failed_runs: 1")
	assert.Contains(t, res.stdout, "succeeded_runs: 1")
	assert.Contains(t, res.stdout, "mkdir: 1")

	t.Run("from config", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("event_log: events.jsonl\n"), 0644))

		res := runCLI(t, nil, "--config", dir, "events", "report")
		require.Equal(t, 0, res.status, res.stderr)
		assert.Contains(t, res.stdout, "runs: 2")
	})
}

func TestRecordAndReplay(t *testing.T) {
	requireLinux(t)
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	cast := filepath.Join(dir, "run.cast")
	script := writeScript(t, dir, "exec sh -c \"echo hello from sh\"\n")

	res := runCLI(t, nil, "--config", dir, "--record", cast, script)
	require.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "hello from sh\n")

	recorded, err := os.ReadFile(cast)
	require.NoError(t, err)
	assert.Contains(t, string(recorded), `"version":2`)

	res = runCLI(t, nil, "replay", "--max-pause", "0", cast)
	require.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Running script")
	assert.Contains(t, res.stdout, "hello from sh\n")
}

func TestRun_ignoresConfigInWorkingDirectory(t *testing.T) {
	requireLinux(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database: {host: localhost}\n"), 0644))
	script := writeScript(t, dir, "mkdir made\n")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	res := runCLI(t, nil, script)

	assert.Equal(t, 0, res.status, res.stderr)
	assert.DirExists(t, filepath.Join(dir, "made"))
}

func TestRun_userConfigDir(t *testing.T) {
	requireLinux(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	require.NoError(t, os.MkdirAll(filepath.Join(configHome, "start"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configHome, "start", "config.yaml"), []byte("echo: true\n"), 0644))

	dir := t.TempDir()
	script := writeScript(t, dir, "mkdir "+dir+"/x\n")

	res := runCLI(t, nil, script)

	assert.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "+ mkdir "+dir+"/x\n")
}
