// Package cli implements the kinchart command-line interface.
//
// This package provides commands for computing family chart layouts,
// rendering them as SVG, PNG, PDF or Graphviz DOT, generating demo data,
// and managing the local layout cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout from a family chart file
//   - visualize: Render a computed layout to visual output
//   - render: Full pipeline from chart file to visual output
//   - strategies: List the available layout strategies
//   - gen: Generate a demo family chart
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kinlab/kinchart/pkg/buildinfo"
	"github.com/kinlab/kinchart/pkg/cache"
	"github.com/kinlab/kinchart/pkg/config"
	"github.com/kinlab/kinchart/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "kinchart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the loaded
// configuration. A missing config file yields defaults; a malformed one is
// logged and ignored.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	cfg, err := config.Load("")
	if err != nil {
		c.Logger.Warn("ignoring config", "err", err)
		cfg = config.Default()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Kinchart lays out and renders genealogical charts",
		Long:         `Kinchart is a CLI tool for turning family graphs (persons and relationships) into positioned chart layouts and rendered visualizations, with multiple interchangeable layout strategies.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.genCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner honoring the configured cache backend.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(cmd, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(cmd.Context(), cache.RedisOptions{
			Addr:     c.Config.Cache.Redis.Addr,
			Password: c.Config.Cache.Redis.Password,
			DB:       c.Config.Cache.Redis.DB,
		})
	default:
		dir := c.Config.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/kinchart/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options seeded from the loaded config.
// Command flags bind directly to the returned struct, so config values act
// as flag defaults.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Strategy:             c.Config.Layout.Strategy,
		HorizontalSpacing:    c.Config.Layout.HorizontalSpacing,
		VerticalSpacing:      c.Config.Layout.VerticalSpacing,
		NodeWidth:            c.Config.Layout.NodeWidth,
		NodeHeight:           c.Config.Layout.NodeHeight,
		MaxGenerations:       c.Config.Layout.MaxGenerations,
		Direction:            c.Config.Layout.Direction,
		ShowGenerationLabels: c.Config.Layout.ShowGenerationLabels,
		Formats:              c.Config.Render.Formats,
		PNGScale:             c.Config.Render.PNGScale,
	}
}

// addLayoutFlags registers the layout option flags shared by the layout and
// render commands.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", opts.Strategy, "layout strategy (see 'kinchart strategies')")
	cmd.Flags().StringVarP(&opts.RootID, "root", "r", "", "root person id")
	cmd.Flags().Float64Var(&opts.HorizontalSpacing, "hspacing", opts.HorizontalSpacing, "horizontal spacing between nodes")
	cmd.Flags().Float64Var(&opts.VerticalSpacing, "vspacing", opts.VerticalSpacing, "vertical spacing between generations")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", opts.NodeWidth, "node box width")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", opts.NodeHeight, "node box height")
	cmd.Flags().IntVar(&opts.MaxGenerations, "max-generations", opts.MaxGenerations, "generation depth limit (0 = strategy default)")
	cmd.Flags().StringVar(&opts.Direction, "direction", opts.Direction, "growth direction for the vertical strategy: down, up, left, right")
	cmd.Flags().BoolVar(&opts.ShowGenerationLabels, "generation-labels", opts.ShowGenerationLabels, "show generation row labels (orthogonal)")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
