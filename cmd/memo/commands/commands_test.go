package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/cmd/memo/commands"
	"go.trai.ch/memo/internal/adapters/cas"
	"go.trai.ch/memo/internal/adapters/config"
	"go.trai.ch/memo/internal/adapters/fs"
	"go.trai.ch/memo/internal/adapters/logger"
	"go.trai.ch/memo/internal/adapters/shell"
	"go.trai.ch/memo/internal/adapters/watcher"
	"go.trai.ch/memo/internal/app"
	"go.trai.ch/memo/internal/core/domain"
)

func newTestCLI(t *testing.T) (*commands.CLI, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	store, err := cas.NewStore()
	require.NoError(t, err)
	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	log := logger.New()
	a := app.New(fs.NewHasher(), store, shell.NewExecutor(), log)
	cli := commands.New(app.NewComponents(a, log, config.NewLoader(), w))

	var stdout, stderr bytes.Buffer
	cli.SetOutput(&stdout, &stderr)
	return cli, &stdout, &stderr
}

func TestRunCommand_ExecutesAndThenSkips(t *testing.T) {
	dir := t.TempDir()
	cache := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("hello"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cli, _, _ := newTestCLI(t)
	cli.SetArgs([]string{
		"run", "--cache-dir", cache, "-i", "in.txt", "-o", "out.txt",
		"--", "sh", "-c", "cat in.txt > out.txt",
	})
	require.NoError(t, cli.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// Second run with nothing changed is skipped.
	cli2, _, stderr := newTestCLI(t)
	cli2.SetArgs([]string{
		"run", "--cache-dir", cache, "-i", "in.txt", "-o", "out.txt",
		"--", "sh", "-c", "cat in.txt > out.txt",
	})
	require.NoError(t, cli2.Execute(context.Background()))
	assert.Contains(t, stderr.String(), "skipped")
}

func TestRunCommand_FailingCommandReportsExitCode(t *testing.T) {
	cli, _, stderr := newTestCLI(t)
	cli.SetArgs([]string{
		"run", "--cache-dir", t.TempDir(), "--", "sh", "-c", "exit 7",
	})

	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.Equal(t, 7, cli.ExitCode())
	assert.Contains(t, stderr.String(), "exit 7")
}

func TestRunCommand_RequiresCommandSeparator(t *testing.T) {
	cli, _, _ := newTestCLI(t)
	cli.SetArgs([]string{"run", "--cache-dir", t.TempDir(), "-i", "in.txt"})

	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrNoCommand)
}

func TestRunCommand_RejectsArgsBeforeSeparator(t *testing.T) {
	cli, _, _ := newTestCLI(t)
	cli.SetArgs([]string{"run", "--cache-dir", t.TempDir(), "stray", "--", "true"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected arguments")
}

func TestRunCommand_ForceRunsDespiteFreshRecord(t *testing.T) {
	dir := t.TempDir()
	cache := t.TempDir()
	marker := filepath.Join(dir, "ran")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("hello"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	args := []string{
		"run", "--cache-dir", cache, "-i", "in.txt",
		"--", "sh", "-c", "echo x >> ran",
	}

	cli, _, _ := newTestCLI(t)
	cli.SetArgs(args)
	require.NoError(t, cli.Execute(context.Background()))

	cli2, _, _ := newTestCLI(t)
	cli2.SetArgs(append([]string{args[0], "--force"}, args[1:]...))
	require.NoError(t, cli2.Execute(context.Background()))

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "x\nx\n", string(data))
}

func TestRunCommand_FromCallfile(t *testing.T) {
	dir := t.TempDir()
	cache := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("hello"), 0o600))
	callfile := filepath.Join(dir, "memo.yaml")
	require.NoError(t, os.WriteFile(callfile, []byte(`
inputs:
  - in.txt
outputs:
  - out.txt
command: ["sh", "-c", "cat in.txt > out.txt"]
`), 0o600))

	cli, _, _ := newTestCLI(t)
	cli.SetArgs([]string{"run", "--cache-dir", cache, "--file", callfile})
	require.NoError(t, cli.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCleanCommand_RemovesCacheDir(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(cache, "ab"), 0o750))

	cli, _, stderr := newTestCLI(t)
	cli.SetArgs([]string{"clean", "--cache-dir", cache})
	require.NoError(t, cli.Execute(context.Background()))

	_, err := os.Stat(cache)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, stderr.String(), "cache cleared")
}

func TestVersionCommand(t *testing.T) {
	cli, stdout, _ := newTestCLI(t)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, stdout.String(), "memo version")
}
