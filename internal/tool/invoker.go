package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/exrunner/internal/logfields"
)

// Placeholder is replaced by the example identifier in tool arguments.
const Placeholder = "{example}"

var (
	// ErrToolNotFound indicates the external build tool is not on PATH.
	ErrToolNotFound = errors.New("build tool not found")
	// ErrToolStart indicates the process could not be started for another reason.
	ErrToolStart = errors.New("build tool failed to start")
)

// Result is the captured outcome of a single tool invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Failed reports a non-zero exit.
func (r Result) Failed() bool { return r.ExitCode != 0 }

// Invoker abstracts how an example is handed to the external build tool.
// This allows swapping out the real binary (BinaryInvoker) with fakes in tests.
//
// Contract:
//
//	Invoke blocks until the process has exited and both output streams are
//	fully captured. A non-zero exit is reported through Result.ExitCode with
//	a nil error; an error means the process never ran.
type Invoker interface {
	Invoke(ctx context.Context, name string) (Result, error)
}

// BinaryInvoker runs an executable found on PATH, e.g. `cargo run --example <name>`.
type BinaryInvoker struct {
	Command string
	Args    []string
	Dir     string
	Env     map[string]string
}

// NewBinaryInvoker creates an invoker for command with an argument template.
func NewBinaryInvoker(command string, args []string) *BinaryInvoker {
	return &BinaryInvoker{Command: command, Args: args}
}

// WithDir sets the working directory of the tool.
func (b *BinaryInvoker) WithDir(dir string) *BinaryInvoker {
	b.Dir = dir
	return b
}

// WithEnv adds environment variables on top of the inherited environment.
func (b *BinaryInvoker) WithEnv(env map[string]string) *BinaryInvoker {
	b.Env = env
	return b
}

// Available checks that the tool resolves on PATH.
func (b *BinaryInvoker) Available() error {
	if _, err := exec.LookPath(b.Command); err != nil {
		return fmt.Errorf("%w: %w", ErrToolNotFound, err)
	}
	return nil
}

// BuildArgs expands the argument template for name. When no argument
// carries the placeholder the name is appended last.
func (b *BinaryInvoker) BuildArgs(name string) []string {
	args := make([]string, 0, len(b.Args)+1)
	substituted := false
	for _, a := range b.Args {
		if strings.Contains(a, Placeholder) {
			a = strings.ReplaceAll(a, Placeholder, name)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, name)
	}
	return args
}

// CommandLine renders the command for logs.
func (b *BinaryInvoker) CommandLine(name string) string {
	return strings.Join(append([]string{b.Command}, b.BuildArgs(name)...), " ")
}

func (b *BinaryInvoker) Invoke(ctx context.Context, name string) (Result, error) {
	cmd := exec.CommandContext(ctx, b.Command, b.BuildArgs(name)...) //nolint:gosec // command comes from operator configuration
	if b.Dir != "" {
		cmd.Dir = b.Dir
	}
	if len(b.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), b.Env)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Invoking build tool", logfields.Example(name), logfields.Command(b.CommandLine(name)))

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return res, fmt.Errorf("%w: %s: %w", ErrToolNotFound, b.Command, err)
		}
		return res, fmt.Errorf("%w: %s: %w", ErrToolStart, b.Command, err)
	}
	return res, nil
}

// mergeEnv overlays extra on base, sorted for a stable child environment.
func mergeEnv(base []string, extra map[string]string) []string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, override := extra[k]; override {
			continue
		}
		out = append(out, kv)
	}
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}

// NoopInvoker never spawns a process. It backs `run --dry-run`.
type NoopInvoker struct{}

func (NoopInvoker) Invoke(_ context.Context, name string) (Result, error) {
	slog.Debug("NoopInvoker skipping example", logfields.Example(name))
	return Result{}, nil
}
