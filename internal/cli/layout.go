package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinlab/kinchart/pkg/chart"
	"github.com/kinlab/kinchart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		interactive bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [family.json]",
		Short: "Compute a chart layout from a family file",
		Long: `Compute a chart layout from a family file.

The layout command takes a family.json file (persons and relationships) and
computes node positions for the selected strategy. The output is a
layout.json file that can be rendered to SVG/PNG/PDF using the 'visualize'
command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				picked, err := pickStrategy(opts.Strategy)
				if err != nil {
					return err
				}
				if picked == "" {
					return nil // user quit
				}
				opts.Strategy = picked
			}
			return c.runLayout(cmd, args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the strategy interactively")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the chart, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, input string, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	fam, err := chart.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}

	runner, err := c.newRunner(cmd, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetLayoutDefaults()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Strategy))
	spinner.Start()

	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, fam, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := chart.WriteLayoutFile(res, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(res.Nodes), len(res.Edges), cacheHit)
	printNewline()
	printNextStep("Render", fmt.Sprintf("kinchart visualize %s --chart %s", outputPath, input))

	return nil
}
