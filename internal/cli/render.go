package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinlab/kinchart/pkg/pipeline"
)

// renderCommand creates the render command running the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "render [family.json]",
		Short: "Render a family chart to visual output",
		Long: `Render a family chart to visual output.

The render command runs the complete pipeline: load the chart, compute the
layout for the selected strategy, and write the requested output formats.
It is the shortcut for 'layout' followed by 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "raster scale factor for png output")
	cmd.Flags().BoolVar(&opts.ShowRowBands, "row-bands", opts.ShowRowBands, "draw generation row background bands")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes artifacts.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.ChartPath = input
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s layout...", opts.Strategy))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		nodeCount: result.Stats.NodeCount,
		edgeCount: result.Stats.EdgeCount,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles everything writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	nodeCount int
	edgeCount int
}

// writeArtifacts writes each rendered format to its output file and prints
// the result summary.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	printSuccess("Render complete")
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := p.output
		if path == "" || len(p.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(p.nodeCount, p.edgeCount, p.cacheHit)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// format extension (.svg, .pdf, ...), it strips that extension. Used when
// generating multiple files (e.g., family.svg, family.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
