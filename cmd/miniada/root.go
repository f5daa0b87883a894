package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/miniada/miniada"
	"github.com/miniada/miniada/cmd/internal/cliutil"
	"github.com/miniada/miniada/internal/config"
)

type cli struct {
	configPath string
	verbose    int
	paths      []string
	format     string
	color      bool
	noColor    bool

	cfg    config.Config
	logger *slog.Logger
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "miniada",
		Short: "Mini-Ada semantic checker and frame layout tool",
		Long: `miniada analyzes Mini-Ada programs in a single pass. It reports the first
syntax or scoping error in each program and computes the activation-record
layout (parameter and local offsets) of every procedure.

Programs are taken from the arguments, from -p paths, or from MINIADA_PATH.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (TOML or YAML)")
	pf.CountVarP(&c.verbose, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")
	pf.StringArrayVarP(&c.paths, "path", "p", nil, "add program search path (repeatable)")
	pf.StringVarP(&c.format, "format", "f", "", "output format: text, json, yaml or table")
	pf.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		c.checkCommand(),
		c.dumpCommand(),
		c.tokensCommand(),
		c.runsCommand(),
		c.pathsCommand(),
		versionCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cliutil.Exit(exitConfig, err)
	}
	if c.format != "" {
		cfg.Output.Format = c.format
		if err := cfg.Validate(); err != nil {
			return cliutil.Exit(exitError, err)
		}
	}
	c.cfg = cfg
	c.color = cfg.Output.Color && !c.noColor

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cliutil.Exit(exitConfig, err)
	}
	switch {
	case c.verbose >= 2:
		level = miniada.LevelTrace
	case c.verbose == 1:
		level = min(level, slog.LevelDebug)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		c.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), opts))
	} else {
		c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
	}
	return nil
}

func (c *cli) sourceOptions() []miniada.SourceOption {
	if len(c.cfg.Analysis.Extensions) == 0 {
		return nil
	}
	return []miniada.SourceOption{miniada.WithExtensions(c.cfg.Analysis.Extensions...)}
}

func (c *cli) analyzeOptions() []miniada.Option {
	return []miniada.Option{
		miniada.WithLogger(c.logger),
		miniada.WithWorkers(c.cfg.Analysis.Workers),
	}
}

// source composes the programs named by args: files are taken as-is and
// directories are indexed recursively. With no args it falls back to -p
// paths and then to the discovered search path.
func (c *cli) source(cmd *cobra.Command, args []string) (miniada.Source, error) {
	var sources []miniada.Source
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		var src miniada.Source
		if info.IsDir() {
			src, err = miniada.DirTree(arg, c.sourceOptions()...)
		} else {
			src, err = miniada.File(arg)
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) > 0 {
		return miniada.Multi(sources...), nil
	}

	for _, p := range c.paths {
		src, err := miniada.DirTree(p, c.sourceOptions()...)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot access path %s: %v\n", p, err)
			continue
		}
		sources = append(sources, src)
	}
	if len(sources) > 0 {
		return miniada.Multi(sources...), nil
	}
	if len(c.paths) > 0 {
		return nil, miniada.ErrNoSources
	}

	if src := miniada.SearchSource(c.logger, c.sourceOptions()...); src != nil {
		return src, nil
	}
	return nil, miniada.ErrNoSources
}
