package main

import (
	"maps"
	"slices"

	"github.com/ritzau/network-navigator/pkg/output"
	"github.com/ritzau/network-navigator/pkg/theme"
	"github.com/spf13/cobra"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			var themes []theme.Theme
			for _, name := range slices.Sorted(maps.Keys(a.themes)) {
				themes = append(themes, a.themes[name])
			}
			output.PrintThemes(cmd.OutOrStdout(), themes, a.pipeline.Theme().Name)
			return nil
		},
	}
}
