package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/gitstamp/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file" type:"path"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	// If the user specified an output directory, place the config there as "gitstamp.yaml".
	if i.Output != "" {
		return RunInit(g, filepath.Join(i.Output, config.DefaultConfigFile), i.Force)
	}
	return RunInit(g, root.Config, i.Force)
}

// RunInit writes an example configuration enabling every bundled extension
// with its default options.
func RunInit(g *Global, configPath string, force bool) error {
	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", configPath)

	values, err := extensionDefaults(g.Registry)
	if err != nil {
		return err
	}
	if err := config.Init(configPath, force, g.Registry.Names(), values); err != nil {
		_, _ = fmt.Fprintln(g.Stdout, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}
