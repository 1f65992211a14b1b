package pipeline

import (
	"github.com/kinlab/kinchart/pkg/chart"
	kcerrors "github.com/kinlab/kinchart/pkg/errors"
)

// LoadChart loads and validates the chart named by the options, from a file
// path or from in-memory JSON bytes.
func LoadChart(opts Options) (chart.Chart, error) {
	switch {
	case opts.ChartPath != "":
		return chart.ReadFile(opts.ChartPath)
	case len(opts.ChartJSON) > 0:
		return chart.Unmarshal(opts.ChartJSON)
	default:
		return chart.Chart{}, kcerrors.New(kcerrors.ErrCodeInvalidInput, "chart_path or chart_json is required")
	}
}

// chartSource names the chart origin for logging and hook events.
func chartSource(opts Options) string {
	if opts.ChartPath != "" {
		return opts.ChartPath
	}
	return "inline"
}
