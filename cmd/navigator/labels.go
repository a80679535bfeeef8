package main

import (
	"github.com/ritzau/network-navigator/pkg/output"
	"github.com/spf13/cobra"
)

func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Print the label table, overrides included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			output.PrintLabels(cmd.OutOrStdout(), a.pipeline.Labels())
			return nil
		},
	}
}
