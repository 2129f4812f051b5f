package commands

import (
	"time"

	"git.home.luguber.info/inful/exrunner/internal/schedule"
)

// ScheduleCmd implements the 'schedule' command.
type ScheduleCmd struct {
	Every time.Duration `help:"Interval between passes (overrides schedule.interval)"`
}

func (s *ScheduleCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if s.Every > 0 {
		cfg.Schedule.Interval = s.Every
	}

	ctx, cancel := g.signalContext()
	defer cancel()

	sink := newMetricsSink(cfg)
	sink.serve(ctx, cfg.Metrics.Listen)

	return schedule.Run(ctx, cfg.Schedule.Interval, repeatingPass(newRunner(cfg, NewInvoker(cfg), g, sink), sink))
}
