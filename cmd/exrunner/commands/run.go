package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/exrunner/internal/tool"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	DryRun bool `help:"Announce each example without invoking the build tool"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}

	var inv tool.Invoker = NewInvoker(cfg)
	if r.DryRun {
		inv = tool.NoopInvoker{}
	}

	sink := newMetricsSink(cfg)
	defer sink.flush()

	if _, err := newRunner(cfg, inv, g, sink).Run(context.Background()); err != nil {
		return fmt.Errorf("run examples: %w", err)
	}
	return nil
}
