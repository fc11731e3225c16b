package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/gitstamp/internal/build"
	"git.home.luguber.info/inful/gitstamp/internal/config"
	"git.home.luguber.info/inful/gitstamp/internal/gitstamp"
	"git.home.luguber.info/inful/gitstamp/internal/logfields"
)

// StampCmd implements the 'stamp' command.
type StampCmd struct {
	Pages []string `arg:"" name:"page" help:"Page names, relative to the source directory and without suffix"`
}

func (s *StampCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	return RunStamp(context.Background(), g, cfg, s.Pages, gitstamp.New())
}

// RunStamp prints one line per page: the stamp, or "-" with the reason the
// page has none. A failed history query stops at that page.
func RunStamp(ctx context.Context, g *Global, cfg *config.Config, pages []string, ext *gitstamp.Extension) error {
	if !cfg.HasExtension(ext.Metadata().Name) {
		g.Logger.Warn("Extension is not enabled in the configuration; stamping anyway",
			logfields.Name(ext.Metadata().Name))
	}
	app, err := build.NewApp(cfg, build.WithLogger(g.Logger))
	if err != nil {
		return err
	}
	if err := app.Use(ext); err != nil {
		return err
	}
	if err := app.Init(ctx); err != nil {
		return err
	}

	session := ext.Session()
	for _, page := range pages {
		out := session.Stamp(ctx, page)
		switch out.Kind {
		case gitstamp.Injected:
			_, _ = fmt.Fprintf(g.Stdout, "%s\t%s\n", page, out.Value)
		case gitstamp.Skipped:
			_, _ = fmt.Fprintf(g.Stdout, "%s\t-\t%s\n", page, out.Reason)
		case gitstamp.Fatal:
			return out.Err
		}
	}
	return nil
}
