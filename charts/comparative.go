package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/timewave-computer/ufo-benchviz/results"
	"github.com/timewave-computer/ufo-benchviz/style"
)

// Block times the validator impact panels sample, each matched with a
// ±10% tolerance.
var representativeBlockTimes = []float64{1000, 100, 10}

// Block time for the dashboard's validator impact panel.
const impactBlockTime = 100

// The four per-metric comparison charts.
var comparisonCharts = []struct {
	file   string
	title  string
	ylabel string
	logY   bool
	value  func(results.Row) float64
}{
	{"tps_comparison.png", "TPS Comparison Across Configurations",
		"Transactions Per Second (TPS)", false, tps},
	{"latency_comparison.png", "Latency Comparison Across Configurations",
		"Transaction Latency (ms)", true, latency},
	{"cpu_comparison.png", "CPU Usage Comparison Across Configurations",
		"CPU Usage (%)", false, cpu},
	{"memory_comparison.png", "Memory Usage Comparison Across Configurations",
		"Memory Usage (%)", false, memory},
}

// RenderComparative writes the six comparative charts into outDir and
// returns the paths written. The table must carry the configuration and
// validators columns; without them it fails before creating anything.
func (r *Renderer) RenderComparative(t *results.Table, outDir string) ([]string, error) {
	if !t.HasConfigColumns() {
		return nil, fmt.Errorf("comparative rendering: %w: configuration, validators",
			results.ErrMissingColumn)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	t.SortBySeries()

	keys := t.ConfigKeys()
	colors, err := r.seriesColors(keys)
	if err != nil {
		return nil, err
	}

	bar := r.progressBar(len(comparisonCharts) + 2)
	written := make([]string, 0, len(comparisonCharts)+2)

	for _, cc := range comparisonCharts {
		p, err := r.comparisonPlot(t, keys, colors, cc.title, cc.ylabel, cc.logY, cc.value, true)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(outDir, cc.file)
		if err := savePNG(p, 12, 8, path); err != nil {
			return nil, err
		}

		written = append(written, path)
		advance(bar)
		r.Logger.Debug("chart written", slog.String("path", path))
	}

	path := filepath.Join(outDir, "validator_impact.png")
	if err := r.renderValidatorImpact(t, path); err != nil {
		return nil, err
	}
	written = append(written, path)
	advance(bar)
	r.Logger.Debug("chart written", slog.String("path", path))

	path = filepath.Join(outDir, "comparative_dashboard.png")
	if err := r.renderComparativeDashboard(t, keys, colors, path); err != nil {
		return nil, err
	}
	written = append(written, path)
	advance(bar)
	r.Logger.Debug("chart written", slog.String("path", path))

	return written, nil
}

// comparisonPlot overlays one line series per config key for the given
// metric.
func (r *Renderer) comparisonPlot(
	t *results.Table,
	keys []string,
	colors map[string]color.Color,
	title, ylabel string,
	logY bool,
	value func(results.Row) float64,
	withLegend bool,
) (*plot.Plot, error) {
	p := newLogXPlot(title, ylabel)

	// A log axis cannot place values at or below zero. Such points are
	// dropped from their series, and when no positive value exists at
	// all the axis stays linear.
	logY = logY && hasPositive(t.Rows, value)
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	for _, key := range keys {
		rows := t.Series(key)
		if logY {
			rows = positiveRows(rows, value)
		}

		label := ""
		if withLegend {
			label = r.Palette.SeriesLabel(key)
		}
		if err := addSeries(p, rows, value, colors[key], label); err != nil {
			return nil, err
		}
	}

	if withLegend {
		p.Legend.Top = true
		p.Legend.Left = true
	}

	return p, nil
}

// renderValidatorImpact writes the 1x3 bar panel contrasting 1- and
// 4-validator TPS per configuration at the representative block times.
func (r *Renderer) renderValidatorImpact(t *results.Table, path string) error {
	configs := t.Configurations()

	groups := make([]string, len(configs))
	for i, config := range configs {
		groups[i] = capitalize(config)
	}

	panels := make([]*plot.Plot, len(representativeBlockTimes))
	for i, blockTime := range representativeBlockTimes {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Block Time: %vms", blockTime)
		p.Y.Label.Text = "TPS"

		ones, fours := validatorValues(t, configs, blockTime)
		err := groupedBars(p, ones, fours, style.Blue, style.Orange,
			"1 Validator", "4 Validators", groups, i == 0)
		if err != nil {
			return err
		}

		panels[i] = p
	}

	return saveGrid([][]*plot.Plot{panels}, 18, 6, path)
}

// renderComparativeDashboard writes the 2x2 panel combining the TPS and
// latency comparisons with the average resource usage and validator
// impact bars.
func (r *Renderer) renderComparativeDashboard(
	t *results.Table,
	keys []string,
	colors map[string]color.Color,
	path string,
) error {
	tpsPlot, err := r.comparisonPlot(t, keys, colors,
		"TPS Comparison", "TPS", false, tps, true)
	if err != nil {
		return err
	}

	latencyPlot, err := r.comparisonPlot(t, keys, colors,
		"Latency Comparison", "Latency (ms)", true, latency, false)
	if err != nil {
		return err
	}

	resourcePlot := plot.New()
	resourcePlot.Title.Text = "Resource Usage Comparison"
	resourcePlot.Y.Label.Text = "Average Usage (%)"

	avgCPU := make(plotter.Values, len(keys))
	avgMemory := make(plotter.Values, len(keys))
	labels := make([]string, len(keys))
	for i, key := range keys {
		series := t.Series(key)
		avgCPU[i] = mean(series, cpu)
		avgMemory[i] = mean(series, memory)
		labels[i] = r.Palette.SeriesLabel(key)
	}

	err = groupedBars(resourcePlot, avgCPU, avgMemory, style.Red, style.Purple,
		"CPU Usage", "Memory Usage", labels, true)
	if err != nil {
		return err
	}

	impactPlot := plot.New()
	impactPlot.Title.Text = fmt.Sprintf(
		"Validator Count Impact on TPS at %dms Block Time", impactBlockTime)
	impactPlot.Y.Label.Text = "TPS"

	configs := t.Configurations()
	groups := make([]string, len(configs))
	for i, config := range configs {
		groups[i] = capitalize(config)
	}

	ones, fours := validatorValues(t, configs, impactBlockTime)
	err = groupedBars(impactPlot, ones, fours, style.Green, style.Blue,
		"1 Validator", "4 Validators", groups, true)
	if err != nil {
		return err
	}

	grid := [][]*plot.Plot{
		{tpsPlot, latencyPlot},
		{resourcePlot, impactPlot},
	}

	return saveGrid(grid, 18, 12, path)
}

// validatorValues collects 1- and 4-validator TPS per configuration at
// blockTime. Absent pairs contribute zero so bar slots stay aligned.
func validatorValues(t *results.Table, configs []string, blockTime float64) (ones, fours plotter.Values) {
	ones = make(plotter.Values, len(configs))
	fours = make(plotter.Values, len(configs))

	for i, config := range configs {
		if v, ok := t.ValidatorTPS(config, 1, blockTime); ok {
			ones[i] = v
		}
		if v, ok := t.ValidatorTPS(config, 4, blockTime); ok {
			fours[i] = v
		}
	}

	return ones, fours
}
