package commands

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/exrunner/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before re-running (overrides watch.debounce)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}

	ctx, cancel := g.signalContext()
	defer cancel()

	sink := newMetricsSink(cfg)
	sink.serve(ctx, cfg.Metrics.Listen)

	pass := repeatingPass(newRunner(cfg, NewInvoker(cfg), g, sink), sink)
	err = watch.New(cfg.Examples.Dir, cfg.Examples.Suffix, cfg.Watch.Debounce, pass).Run(ctx)
	slog.Info("Watch stopped")
	return err
}
