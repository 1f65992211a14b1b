package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinlab/kinchart/pkg/chart"
	"github.com/kinlab/kinchart/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		chartPath  string
		output     string
		noCache    bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render visual output from a computed layout",
		Long: `Render visual output from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, or PDF format. The layout contains all positioning
information; pass the original chart with --chart to label nodes with
person names instead of ids.

Use 'render' as a shortcut to go directly from family.json to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd, args[0], chartPath, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&chartPath, "chart", "", "family chart file for node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "raster scale factor for png output")
	cmd.Flags().BoolVar(&opts.ShowRowBands, "row-bands", opts.ShowRowBands, "draw generation row background bands")

	return cmd
}

// runVisualize loads the layout (and optionally the chart) and renders it.
func (c *CLI) runVisualize(cmd *cobra.Command, input, chartPath string, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	res, err := chart.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	var fam chart.Chart
	if chartPath != "" {
		fam, err = chart.ReadFile(chartPath)
		if err != nil {
			return fmt.Errorf("load chart %s: %w", chartPath, err)
		}
	}

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, res, fam, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}
