package commands

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/exrunner/internal/examples"
	derrors "git.home.luguber.info/inful/exrunner/internal/errors"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Check bool `help:"Also verify the build tool is available on PATH"`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	out := g.stdout()

	if l.Check {
		if err := NewInvoker(cfg).Available(); err != nil {
			return derrors.ToolUnavailable(cfg.Tool.Command, err)
		}
	}

	exs, err := examples.Discover(cfg.Examples.Dir, cfg.Examples.Suffix, examples.Order(cfg.Examples.Order))
	if errors.Is(err, examples.ErrDirNotFound) {
		_, _ = fmt.Fprintf(out, "Directory %s does not exist!\n", cfg.Examples.Dir)
		return nil
	}
	if err != nil {
		return derrors.DirUnreadable(cfg.Examples.Dir, err)
	}

	for _, ex := range exs {
		_, _ = fmt.Fprintln(out, ex.Name)
	}
	return nil
}
