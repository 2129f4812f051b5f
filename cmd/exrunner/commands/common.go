package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/exrunner/internal/config"
	"git.home.luguber.info/inful/exrunner/internal/logfields"
	"git.home.luguber.info/inful/exrunner/internal/metrics"
	"git.home.luguber.info/inful/exrunner/internal/runner"
	"git.home.luguber.info/inful/exrunner/internal/tool"
)

// EnvLogLevel overrides the log level (debug, info, warn, error).
const EnvLogLevel = "EXRUNNER_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Logger  *slog.Logger
	Stdout  io.Writer       // console stream for example output
	Context context.Context // parent for long-running commands; nil means background
}

// signalContext returns a context cancelled on SIGINT/SIGTERM or when the
// parent context ends.
func (g *Global) signalContext() (context.Context, context.CancelFunc) {
	parent := context.Background()
	if g != nil && g.Context != nil {
		parent = g.Context
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"exrunner.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run      RunCmd      `cmd:"" default:"1" help:"Run every example once (default)"`
	List     ListCmd     `cmd:"" help:"List discovered examples without running them"`
	Watch    WatchCmd    `cmd:"" help:"Run examples, then re-run whenever an example changes"`
	Schedule ScheduleCmd `cmd:"" help:"Run examples at a fixed interval"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel resolves the level from --verbose and EXRUNNER_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig loads the configuration, tolerating an absent default file so
// the bare `exrunner` invocation works without any setup.
func LoadConfig(root *CLI) (*config.Config, error) {
	if root.Config == config.DefaultConfigPath {
		return config.LoadOptional(root.Config)
	}
	return config.Load(root.Config)
}

// NewInvoker builds the external build tool invoker from configuration.
func NewInvoker(cfg *config.Config) *tool.BinaryInvoker {
	return tool.NewBinaryInvoker(cfg.Tool.Command, cfg.Tool.Args).
		WithDir(cfg.Tool.Dir).
		WithEnv(cfg.Tool.Env)
}

// metricsSink bundles the recorder with its registry for export.
type metricsSink struct {
	recorder metrics.Recorder
	registry *prom.Registry
	textfile string
}

func newMetricsSink(cfg *config.Config) *metricsSink {
	if cfg.Metrics.Textfile == "" && cfg.Metrics.Listen == "" {
		return &metricsSink{recorder: metrics.NoopRecorder{}}
	}
	reg := prom.NewRegistry()
	return &metricsSink{
		recorder: metrics.NewPrometheusRecorder(reg),
		registry: reg,
		textfile: cfg.Metrics.Textfile,
	}
}

// flush writes the textfile when configured. Failures are logged only.
func (m *metricsSink) flush() {
	if m.textfile == "" || m.registry == nil {
		return
	}
	if err := metrics.WriteTextfile(m.textfile, m.registry); err != nil {
		slog.Warn("Failed to write metrics textfile", logfields.Path(m.textfile), logfields.Error(err))
	}
}

// serve exposes /metrics on addr until ctx is cancelled.
func (m *metricsSink) serve(ctx context.Context, addr string) {
	if addr == "" || m.registry == nil {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(m.registry))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Metrics endpoint listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics endpoint failed", logfields.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// newRunner wires a Runner for cfg around inv.
func newRunner(cfg *config.Config, inv tool.Invoker, g *Global, sink *metricsSink) *runner.Runner {
	return runner.New(cfg.Examples, inv, g.stdout()).
		WithRecorder(sink.recorder).
		WithLogger(g.logger())
}

// repeatingPass adapts a Runner for watch and schedule modes: fatal errors
// are logged and the next trigger tries again.
func repeatingPass(r *runner.Runner, sink *metricsSink) func(context.Context) {
	return func(ctx context.Context) {
		sum, err := r.Run(ctx)
		sink.flush()
		if err != nil && ctx.Err() == nil {
			slog.Error("Examples pass failed", logfields.RunID(sum.RunID), logfields.Error(err))
		}
	}
}
