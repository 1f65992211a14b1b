package pipeline

import (
	"context"
	"time"

	"github.com/kinlab/kinchart/pkg/chart"
	"github.com/kinlab/kinchart/pkg/layout"
	"github.com/kinlab/kinchart/pkg/observability"
)

// computeLayout runs the selected strategy over the chart's family graph.
// No caching; callers go through Runner.ComputeLayout for the cached path.
func computeLayout(ctx context.Context, c chart.Chart, opts Options) (*layout.Result, error) {
	persons, relationships, err := c.ToFamily()
	if err != nil {
		return nil, err
	}

	strategy, err := layout.Get(opts.Strategy)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Strategy, len(persons))
	start := time.Now()

	res, err := strategy.Calculate(persons, relationships, opts.RootID, opts.LayoutOptions())

	nodeCount := 0
	if res != nil {
		nodeCount = len(res.Nodes)
	}
	hooks.OnLayoutComplete(ctx, opts.Strategy, nodeCount, time.Since(start), err)

	return res, err
}
