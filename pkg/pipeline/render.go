package pipeline

import (
	"context"
	"time"

	"github.com/kinlab/kinchart/pkg/chart"
	kcerrors "github.com/kinlab/kinchart/pkg/errors"
	"github.com/kinlab/kinchart/pkg/layout"
	"github.com/kinlab/kinchart/pkg/observability"
	"github.com/kinlab/kinchart/pkg/render"
)

// RenderFromLayout renders all requested formats from a computed layout.
// SVG is the base representation; PNG and PDF are converted from it, DOT is
// derived from the raw family graph, and JSON is the serialized layout.
func RenderFromLayout(ctx context.Context, res *layout.Result, c chart.Chart, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	persons, relationships, err := c.ToFamily()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	renderSVG := func() []byte {
		if svg == nil {
			svgOpts := []render.SVGOption{render.WithPersons(persons)}
			if opts.NodeWidth > 0 && opts.NodeHeight > 0 {
				svgOpts = append(svgOpts, render.WithNodeSize(opts.NodeWidth, opts.NodeHeight))
			}
			if opts.ShowRowBands {
				svgOpts = append(svgOpts, render.WithRowBands())
			}
			svg = render.RenderSVG(res, svgOpts...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = renderSVG()
		case FormatPNG:
			data, err := render.ToPNG(renderSVG(), opts.PNGScale)
			if err != nil {
				hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, err
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := render.ToPDF(renderSVG())
			if err != nil {
				hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, err
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(persons, relationships, render.DOTOptions{Detailed: true}))
		case FormatJSON:
			data, err := chart.MarshalLayout(res)
			if err != nil {
				hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, err
			}
			artifacts[format] = data
		default:
			err := kcerrors.New(kcerrors.ErrCodeInvalidFormat, "invalid format: %q", format)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}
