package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gitstamp/cmd/gitstamp/commands"
	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/gitstamp/internal/version"
)

func main() {
	var cli commands.CLI
	global := commands.NewGlobal()

	ctx := kong.Parse(&cli,
		kong.Name("gitstamp"),
		kong.Description("Build documentation with last-updated stamps taken from git history."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global, &cli),
	)

	if err := ctx.Run(); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
