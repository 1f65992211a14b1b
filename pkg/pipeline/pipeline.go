// Package pipeline provides the load → layout → render pipeline for family
// charts.
//
// This package centralizes the logic shared by the CLI commands so that
// every entry point behaves the same: load and validate a chart, compute
// (or fetch from cache) the layout for the selected strategy, and render
// the requested output formats.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ChartPath: "family.json",
//	    RootID:    "p1",
//	    Strategy:  "orthogonal",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	c, err := pipeline.LoadChart(opts)
//
//	// Layout with an existing chart
//	res, err := runner.ComputeLayout(ctx, c, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, res, c, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kinlab/kinchart/pkg/cache"
	"github.com/kinlab/kinchart/pkg/chart"
	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultStrategy is the layout used when none is selected.
	DefaultStrategy = layout.StrategyVertical

	// DefaultPNGScale is the raster scale factor for PNG export.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for programmatic callers.
type Options struct {
	// Load options. Exactly one of ChartPath or ChartJSON must be set.
	ChartPath string `json:"chart_path,omitempty"`
	ChartJSON []byte `json:"chart_json,omitempty"`
	RootID    string `json:"root_person_id,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"` // Bypass the layout cache

	// Layout options. Zero values select strategy defaults.
	Strategy             string  `json:"strategy,omitempty"`
	HorizontalSpacing    float64 `json:"horizontal_spacing,omitempty"`
	VerticalSpacing      float64 `json:"vertical_spacing,omitempty"`
	NodeWidth            float64 `json:"node_width,omitempty"`
	NodeHeight           float64 `json:"node_height,omitempty"`
	MaxGenerations       int     `json:"max_generations,omitempty"`
	Direction            string  `json:"direction,omitempty"`
	ShowGenerationLabels bool    `json:"show_generation_labels,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	PNGScale     float64  `json:"png_scale,omitempty"`
	ShowRowBands bool     `json:"show_row_bands,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the loaded and validated chart.
	Chart chart.Chart

	// ChartHash is the content hash of the serialized chart.
	ChartHash string

	// Layout is the computed layout.
	Layout *layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PersonCount       int
	RelationshipCount int
	NodeCount         int
	EdgeCount         int
	LoadTime          time.Duration
	LayoutTime        time.Duration
	RenderTime        time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return kcerrors.New(kcerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the chart source fields.
func (o *Options) ValidateForLoad() error {
	if o.ChartPath == "" && len(o.ChartJSON) == 0 {
		return kcerrors.New(kcerrors.ErrCodeInvalidInput, "chart_path or chart_json is required")
	}
	if o.ChartPath != "" {
		if err := kcerrors.ValidatePath(o.ChartPath); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// The strategy name itself is resolved against the registry at run time.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions converts the pipeline options into layout engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		HorizontalSpacing:    o.HorizontalSpacing,
		VerticalSpacing:      o.VerticalSpacing,
		NodeWidth:            o.NodeWidth,
		NodeHeight:           o.NodeHeight,
		MaxGenerations:       o.MaxGenerations,
		Direction:            o.Direction,
		ShowGenerationLabels: o.ShowGenerationLabels,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:             o.Strategy,
		RootID:               o.RootID,
		HorizontalSpacing:    o.HorizontalSpacing,
		VerticalSpacing:      o.VerticalSpacing,
		NodeWidth:            o.NodeWidth,
		NodeHeight:           o.NodeHeight,
		MaxGenerations:       o.MaxGenerations,
		Direction:            o.Direction,
		ShowGenerationLabels: o.ShowGenerationLabels,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	if o.ShowRowBands && (format == FormatSVG || format == FormatPNG || format == FormatPDF) {
		opts.Style = "rowbands"
	}
	return opts
}
