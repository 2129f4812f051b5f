// Package runner implements the sequential example pass: discover, announce,
// invoke the build tool, echo its captured output.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/exrunner/internal/config"
	derrors "git.home.luguber.info/inful/exrunner/internal/errors"
	"git.home.luguber.info/inful/exrunner/internal/examples"
	"git.home.luguber.info/inful/exrunner/internal/logfields"
	"git.home.luguber.info/inful/exrunner/internal/metrics"
	"git.home.luguber.info/inful/exrunner/internal/tool"
)

// Summary describes a finished pass. It is informational only: failing
// examples are not tallied and never change the outcome of Run.
type Summary struct {
	RunID      string
	DirMissing bool
	Discovered int
	Attempted  int
	Duration   time.Duration
}

// Runner drives one pass over the examples directory.
type Runner struct {
	cfg      config.ExamplesConfig
	invoker  tool.Invoker
	out      io.Writer
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New creates a Runner printing to out.
func New(cfg config.ExamplesConfig, invoker tool.Invoker, out io.Writer) *Runner {
	return &Runner{
		cfg:      cfg,
		invoker:  invoker,
		out:      out,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder injects a metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// WithLogger injects a logger.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// Run performs the pass. A missing directory is reported on the console and
// is not an error. An error is returned only when the directory cannot be
// read or the build tool cannot be started.
func (r *Runner) Run(ctx context.Context) (sum Summary, err error) {
	sum = Summary{RunID: uuid.NewString()}
	start := time.Now()
	log := r.logger.With(logfields.RunID(sum.RunID))
	defer func() {
		sum.Duration = time.Since(start)
		r.recorder.ObserveRunDuration(sum.Duration)
	}()

	exs, err := examples.Discover(r.cfg.Dir, r.cfg.Suffix, examples.Order(r.cfg.Order))
	if errors.Is(err, examples.ErrDirNotFound) {
		r.printf("Directory %s does not exist!\n", r.cfg.Dir)
		log.Warn("Examples directory missing", logfields.Dir(r.cfg.Dir))
		sum.DirMissing = true
		r.recorder.SetExamplesDiscovered(0)
		return sum, nil
	}
	if err != nil {
		return sum, derrors.DirUnreadable(r.cfg.Dir, err)
	}

	sum.Discovered = len(exs)
	r.recorder.SetExamplesDiscovered(len(exs))
	log.Info("Discovered examples", logfields.Dir(r.cfg.Dir), logfields.Count(len(exs)))

	for _, ex := range exs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Attempted++
		if err := r.runOne(ctx, log, ex); err != nil {
			return sum, err
		}
	}

	log.Info("Examples pass complete",
		logfields.Count(sum.Attempted),
		logfields.Duration(time.Since(start)))
	return sum, nil
}

func (r *Runner) runOne(ctx context.Context, log *slog.Logger, ex examples.Example) error {
	r.printf("Running example: %s\n", ex.Name)

	res, err := r.invoker.Invoke(ctx, ex.Name)
	if err != nil {
		log.Error("Build tool could not be started", logfields.Example(ex.Name), logfields.Error(err))
		return derrors.ToolUnavailable(commandOf(r.invoker), err).WithContext("example", ex.Name)
	}

	r.printf("Output for %s:\n", ex.Name)
	r.printf("%s\n", res.Stdout)
	if res.Stderr != "" {
		r.printf("Errors for %s:\n", ex.Name)
		r.printf("%s\n", res.Stderr)
	}

	outcome := metrics.OutcomeOf(res.ExitCode, res.Stderr)
	r.recorder.ObserveExampleDuration(ex.Name, res.Duration, outcome)
	r.recorder.IncExampleOutcome(outcome)

	attrs := []any{logfields.Example(ex.Name), logfields.ExitCode(res.ExitCode), logfields.Duration(res.Duration)}
	if res.Failed() {
		log.Warn("Example exited with non-zero status", attrs...)
	} else {
		log.Debug("Example finished", attrs...)
	}
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func commandOf(inv tool.Invoker) string {
	if b, ok := inv.(*tool.BinaryInvoker); ok {
		return b.Command
	}
	return fmt.Sprintf("%T", inv)
}
