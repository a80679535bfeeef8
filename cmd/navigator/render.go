package main

import (
	"github.com/ritzau/network-navigator/pkg/output"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the presentation pipeline once and write the render descriptor",
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

			out, err := a.pipeline.Render(doc, a.cfg.Zoom)
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cmd, a.cfg.Output)
			if err != nil {
				return err
			}
			if err := output.Encode(w, out, a.cfg.Format); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}

	f := cmd.Flags()
	f.Float64("zoom", 1.0, "zoom level, > 0")
	f.String("format", "json", "output format: json or yaml")
	f.StringP("output", "o", "", "output file (default stdout)")
	return cmd
}
