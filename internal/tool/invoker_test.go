package tool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
}

func TestBuildArgs(t *testing.T) {
	t.Run("placeholder substituted", func(t *testing.T) {
		b := NewBinaryInvoker("cargo", []string{"run", "--example", Placeholder})
		require.Equal(t, []string{"run", "--example", "hello"}, b.BuildArgs("hello"))
	})

	t.Run("placeholder inside argument", func(t *testing.T) {
		b := NewBinaryInvoker("make", []string{"EXAMPLE=" + Placeholder})
		require.Equal(t, []string{"EXAMPLE=hello"}, b.BuildArgs("hello"))
	})

	t.Run("appended when absent", func(t *testing.T) {
		b := NewBinaryInvoker("cargo", []string{"run", "--example"})
		require.Equal(t, []string{"run", "--example", "hello"}, b.BuildArgs("hello"))
	})

	t.Run("template not mutated", func(t *testing.T) {
		b := NewBinaryInvoker("cargo", []string{Placeholder})
		_ = b.BuildArgs("a")
		require.Equal(t, []string{Placeholder}, b.Args)
	})
}

func TestCommandLine(t *testing.T) {
	b := NewBinaryInvoker("cargo", []string{"run", "--example", Placeholder})
	require.Equal(t, "cargo run --example ch1", b.CommandLine("ch1"))
}

func TestInvoke_CapturesStreams(t *testing.T) {
	requireShell(t)
	b := NewBinaryInvoker("/bin/sh", []string{"-c", `printf 'out %s\n' "$1"; printf 'warn\n' >&2`, "sh", Placeholder})

	res, err := b.Invoke(context.Background(), "alpha")
	require.NoError(t, err)
	require.Equal(t, "out alpha\n", res.Stdout)
	require.Equal(t, "warn\n", res.Stderr)
	require.Equal(t, 0, res.ExitCode)
	require.False(t, res.Failed())
}

func TestInvoke_NonZeroExitIsNotAnError(t *testing.T) {
	requireShell(t)
	b := NewBinaryInvoker("/bin/sh", []string{"-c", "echo boom >&2; exit 3", "sh", Placeholder})

	res, err := b.Invoke(context.Background(), "broken")
	require.NoError(t, err)
	require.Equal(t, 3, res.ExitCode)
	require.True(t, res.Failed())
	require.Equal(t, "boom\n", res.Stderr)
}

func TestInvoke_MissingBinary(t *testing.T) {
	b := NewBinaryInvoker("exrunner-definitely-missing-tool", nil)

	_, err := b.Invoke(context.Background(), "x")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrToolNotFound))
	require.Error(t, b.Available())
}

func TestInvoke_DirAndEnv(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	b := NewBinaryInvoker("/bin/sh", []string{"-c", `pwd; printf '%s' "$EXRUNNER_TEST_VAR"`, "sh", Placeholder}).
		WithDir(dir).
		WithEnv(map[string]string{"EXRUNNER_TEST_VAR": "set"})

	res, err := b.Invoke(context.Background(), "x")
	require.NoError(t, err)
	lines := strings.SplitN(res.Stdout, "\n", 2)
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[0], filepath.Base(dir)), "pwd %q not in %q", lines[0], dir)
	require.Equal(t, "set", lines[1])
}

func TestMergeEnv(t *testing.T) {
	out := mergeEnv([]string{"A=1", "B=2"}, map[string]string{"B": "3", "C": "4"})
	require.Equal(t, []string{"A=1", "B=3", "C=4"}, out)
}

func TestNoopInvoker(t *testing.T) {
	res, err := NoopInvoker{}.Invoke(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
}
