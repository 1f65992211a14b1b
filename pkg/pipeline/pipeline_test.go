package pipeline

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/kinlab/kinchart/pkg/cache"
	"github.com/kinlab/kinchart/pkg/chart"
	kcerrors "github.com/kinlab/kinchart/pkg/errors"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testChart() chart.Chart {
	return chart.Chart{
		Persons: []chart.Person{
			{ID: "p1", FirstName: "Anna", LastName: "Berg", DateOfBirth: "1950-03-14"},
			{ID: "p2", FirstName: "Karl", LastName: "Berg", DateOfBirth: "1948-07-12"},
			{ID: "p3", FirstName: "Lena", LastName: "Berg", DateOfBirth: "1975-11-02"},
		},
		Relationships: []chart.Relationship{
			{ID: "r1", From: "p1", To: "p3", Type: "parent"},
			{ID: "r2", From: "p2", To: "p3", Type: "parent"},
			{ID: "r3", From: "p1", To: "p2", Type: "spouse"},
		},
	}
}

func testChartJSON(t *testing.T) []byte {
	t.Helper()
	data, err := chart.Marshal(testChart())
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("missing chart source should error")
	}

	opts = Options{ChartJSON: testChartJSON(t)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Strategy != "vertical" {
		t.Errorf("Strategy = %q, want vertical", opts.Strategy)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"svg"}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.PNGScale != 2.0 {
		t.Errorf("PNGScale = %v, want 2.0", opts.PNGScale)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png", "pdf", "dot", "json"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	err := ValidateFormats([]string{"bmp"})
	if err == nil {
		t.Fatal("invalid format should error")
	}
	if !kcerrors.Is(err, kcerrors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want INVALID_FORMAT", kcerrors.GetCode(err))
	}
}

func TestExecuteEndToEnd(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		ChartJSON: testChartJSON(t),
		RootID:    "p3",
		Strategy:  "orthogonal",
		Formats:   []string{"svg", "json", "dot"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.PersonCount != 3 || result.Stats.RelationshipCount != 3 {
		t.Errorf("stats = %+v, want 3 persons and 3 relationships", result.Stats)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.ChartHash == "" {
		t.Error("ChartHash should be set")
	}
	if result.Layout == nil || len(result.Layout.Nodes) != 3 {
		t.Fatal("layout missing or incomplete")
	}

	for _, format := range []string{"svg", "json", "dot"} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %q is empty", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact should start with an svg element")
	}
	if !strings.HasPrefix(string(result.Artifacts["dot"]), "digraph") {
		t.Error("dot artifact should start with a digraph")
	}
}

func TestExecuteChartFile(t *testing.T) {
	path := t.TempDir() + "/family.json"
	if err := chart.WriteFile(testChart(), path); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		ChartPath: path,
		RootID:    "p1",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts["svg"]) == 0 {
		t.Error("default svg artifact missing")
	}
}

func TestExecuteUnknownStrategy(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		ChartJSON: testChartJSON(t),
		RootID:    "p1",
		Strategy:  "spiral",
	})
	if err == nil {
		t.Fatal("unknown strategy should error")
	}
	if !kcerrors.Is(err, kcerrors.ErrCodeStrategyNotFound) {
		t.Errorf("error code = %v, want STRATEGY_NOT_FOUND", kcerrors.GetCode(err))
	}
}

func TestExecuteMissingRoot(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		ChartJSON: testChartJSON(t),
		RootID:    "ghost",
		Strategy:  "vertical",
	})
	if err == nil {
		t.Fatal("unknown root should error for the vertical strategy")
	}
	if !kcerrors.Is(err, kcerrors.ErrCodeRootNotFound) {
		t.Errorf("error code = %v, want ROOT_NOT_FOUND", kcerrors.GetCode(err))
	}
}

func TestLayoutCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, testLogger())
	defer runner.Close()

	c := testChart()
	opts := Options{
		ChartJSON: testChartJSON(t),
		RootID:    "p3",
		Strategy:  "vertical",
	}
	opts.SetLayoutDefaults()

	ctx := context.Background()
	first, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, c, opts)
	if err != nil {
		t.Fatalf("first layout: %v", err)
	}
	if hit {
		t.Error("first run should be a cache miss")
	}

	second, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, c, opts)
	if err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !hit {
		t.Error("second run should be a cache hit")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached layout differs from computed layout")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	_, hit, err = runner.ComputeLayoutWithCacheInfo(ctx, c, opts)
	if err != nil {
		t.Fatalf("refresh layout: %v", err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestLayoutCacheKeyVariesWithOptions(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, testLogger())
	defer runner.Close()

	c := testChart()
	ctx := context.Background()

	base := Options{ChartJSON: testChartJSON(t), RootID: "p3", Strategy: "vertical"}
	if _, _, err := runner.ComputeLayoutWithCacheInfo(ctx, c, base); err != nil {
		t.Fatal(err)
	}

	// A different strategy must not hit the vertical entry.
	other := Options{ChartJSON: testChartJSON(t), RootID: "p3", Strategy: "pedigree"}
	_, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, c, other)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different strategy should be a cache miss")
	}
}

func TestRenderCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, testLogger())
	defer runner.Close()

	c := testChart()
	opts := Options{
		ChartJSON: testChartJSON(t),
		RootID:    "p3",
		Strategy:  "orthogonal",
		Formats:   []string{"svg", "json"},
	}

	ctx := context.Background()
	res, err := runner.ComputeLayout(ctx, c, opts)
	if err != nil {
		t.Fatal(err)
	}

	first, hit, err := runner.RenderWithCacheInfo(ctx, res, c, opts)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if hit {
		t.Error("first render should be a cache miss")
	}

	second, hit, err := runner.RenderWithCacheInfo(ctx, res, c, opts)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !hit {
		t.Error("second render should be a cache hit")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached artifacts differ from rendered artifacts")
	}
}
