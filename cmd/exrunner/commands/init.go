package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/exrunner/internal/config"
	derrors "git.home.luguber.info/inful/exrunner/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	slog.Info("Initializing configuration", "path", root.Config, "force", i.Force)
	if err := config.Init(root.Config, i.Force); err != nil {
		return derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "init failed").
			WithContext("path", root.Config)
	}
	_, _ = fmt.Fprintf(g.stdout(), "Wrote %s\n", root.Config)
	return nil
}
