package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ritzau/network-navigator/pkg/config"
	"github.com/ritzau/network-navigator/pkg/figure"
	"github.com/ritzau/network-navigator/pkg/labels"
	"github.com/ritzau/network-navigator/pkg/logging"
	"github.com/ritzau/network-navigator/pkg/pipeline"
	"github.com/ritzau/network-navigator/pkg/theme"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "navigator",
		Short:         "Network Navigator renders diagnostic-category networks for a 3D viewer",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default "+config.DefaultFile+" if present)")
	pf.StringP("document", "d", "", "graph document to load")
	pf.String("theme", "", "theme name ("+fmt.Sprint(theme.Names())+")")
	pf.String("theme-file", "", "TOML, YAML or JSON theme file layered over --theme")
	pf.String("verbosity", "", "log level: trace, debug, info, warn, error")
	pf.CountP("verbose", "v", "increase verbosity (-v debug, -vv trace)")
	pf.String("log-format", "", "log format: compact or json")

	root.AddCommand(
		newServeCmd(),
		newRenderCmd(),
		newSummaryCmd(),
		newLabelsCmd(),
		newThemesCmd(),
	)
	return root
}

// app is what every command needs once flags, files and environment are
// merged.
type app struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	themes   map[string]theme.Theme
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt)
	if err != nil {
		return nil, err
	}
	logging.Configure(cmd.ErrOrStderr(), level, logging.Format(cfg.LogFormat))

	th, err := theme.Resolve(cfg.Theme, cfg.ThemeFile)
	if err != nil {
		return nil, err
	}

	table, err := labels.Default().WithOverrides(cfg.Labels)
	if err != nil {
		return nil, fmt.Errorf("label overrides: %w", err)
	}

	themes := theme.All()
	themes[th.Name] = th

	logging.Debug("configuration loaded",
		"document", cfg.Document,
		"theme", th.Name,
		"labels", table.Len(),
		"overrides", len(cfg.Labels),
	)

	return &app{
		cfg:      cfg,
		pipeline: pipeline.New(th, table),
		themes:   themes,
	}, nil
}

func (a *app) loadDocument() (*figure.Document, error) {
	doc, err := figure.LoadFile(a.cfg.Document)
	if err != nil {
		return nil, err
	}
	logging.Debug("document loaded", "path", a.cfg.Document, "traces", len(doc.Data))
	return doc, nil
}

// openOutput returns the file named by path, or the command's stdout when path
// is empty or "-".
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	return f, f.Close, nil
}
