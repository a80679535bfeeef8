package main

import (
	"github.com/ritzau/network-navigator/pkg/network"
	"github.com/ritzau/network-navigator/pkg/output"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Describe the network drawn by the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			doc, err := a.loadDocument()
			if err != nil {
				return err
			}

			n := network.Build(doc, a.pipeline.Labels())
			s := n.Summary(doc, network.DefaultTopDegree)
			if asJSON {
				return output.Encode(cmd.OutOrStdout(), s, output.FormatJSON)
			}
			output.PrintSummary(cmd.OutOrStdout(), a.cfg.Document, s, n.Components())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
