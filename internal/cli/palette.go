package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/haneulpalette/haneul/internal/analysis"
	"github.com/haneulpalette/haneul/internal/recommend"
)

func newPaletteCmd() *cobra.Command {
	var (
		undertone string
		depth     string
		format    string
		preview   bool
	)
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the recommendations for an undertone and depth",
		Long: `Print the colour palette, makeup and outfit suggestions for a label
pair without analysing an image.

Examples:
  haneul palette --undertone warm --depth medium
  haneul palette -u cool -d deep --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			u, err := analysis.ParseUndertone(undertone)
			if err != nil {
				return err
			}
			d, err := analysis.ParseDepth(depth)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("preview") {
				preview = writesToTerminal(cmd.OutOrStdout())
			}

			var res analysis.Result
			res.Undertone, res.Depth = u, d
			out, err := formatPalette(recommend.Build(res), format, preview)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&undertone, "undertone", "u", analysis.Neutral.String(), "undertone (warm, cool, neutral)")
	cmd.Flags().StringVarP(&depth, "depth", "d", analysis.Medium.String(), "depth (light, medium, deep)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour swatches (default: on when stdout is a terminal)")
	return cmd
}
