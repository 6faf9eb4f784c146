package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"

	"github.com/timewave-computer/ufo-benchviz/results"
	"github.com/timewave-computer/ufo-benchviz/style"
)

// The six standalone metric charts of the single-configuration catalog.
var singleCharts = []struct {
	file   string
	title  string
	ylabel string
	color  color.Color
	value  func(results.Row) float64
}{
	{"tps_vs_blocktime.png", "TPS vs Block Time",
		"Transactions Per Second (TPS)", style.Blue, tps},
	{"latency_vs_blocktime.png", "Latency vs Block Time",
		"Transaction Latency (ms)", style.Green, latency},
	{"cpu_vs_blocktime.png", "CPU Usage vs Block Time",
		"CPU Usage (%)", style.Red, cpu},
	{"memory_vs_blocktime.png", "Memory Usage vs Block Time",
		"Memory Usage (%)", style.Purple, memory},
	{"blocks_vs_blocktime.png", "Blocks Produced vs Block Time",
		"Blocks Produced", style.Brown, blocks},
	{"tx_per_block_vs_blocktime.png", "Transactions Per Block vs Block Time",
		"Average Transactions Per Block", style.Orange, txPerBlock},
}

// RenderSingle writes the eight single-configuration charts into outDir,
// creating it if absent, and returns the paths written.
func (r *Renderer) RenderSingle(t *results.Table, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	t.SortByBlockTime()

	bar := r.progressBar(len(singleCharts) + 2)
	written := make([]string, 0, len(singleCharts)+2)

	for _, sc := range singleCharts {
		p := newLogXPlot(sc.title, sc.ylabel)
		if err := addSeries(p, t.Rows, sc.value, sc.color, ""); err != nil {
			return nil, err
		}

		path := filepath.Join(outDir, sc.file)
		if err := savePNG(p, 10, 6, path); err != nil {
			return nil, err
		}

		written = append(written, path)
		advance(bar)
		r.Logger.Debug("chart written", slog.String("path", path))
	}

	path := filepath.Join(outDir, "combined_metrics.png")
	if err := r.renderCombined(t, path); err != nil {
		return nil, err
	}
	written = append(written, path)
	advance(bar)
	r.Logger.Debug("chart written", slog.String("path", path))

	path = filepath.Join(outDir, "performance_dashboard.png")
	if err := r.renderDashboard(t, path); err != nil {
		return nil, err
	}
	written = append(written, path)
	advance(bar)
	r.Logger.Debug("chart written", slog.String("path", path))

	return written, nil
}

// renderCombined writes the 2x2 panel: TPS, latency, CPU and memory
// overlaid, and transactions per block.
func (r *Renderer) renderCombined(t *results.Table, path string) error {
	tpsPlot := newLogXPlot("TPS vs Block Time", "TPS")
	if err := addSeries(tpsPlot, t.Rows, tps, style.Blue, ""); err != nil {
		return err
	}

	latencyPlot := newLogXPlot("Latency vs Block Time", "Latency (ms)")
	if err := addSeries(latencyPlot, t.Rows, latency, style.Green, ""); err != nil {
		return err
	}

	resourcePlot := newLogXPlot("Resource Usage vs Block Time", "Usage (%)")
	if err := addSeries(resourcePlot, t.Rows, cpu, style.Red, "CPU"); err != nil {
		return err
	}
	if err := addSeries(resourcePlot, t.Rows, memory, style.Purple, "Memory"); err != nil {
		return err
	}
	resourcePlot.Legend.Top = true

	txPlot := newLogXPlot("Transactions Per Block vs Block Time", "Avg Tx/Block")
	if err := addSeries(txPlot, t.Rows, txPerBlock, style.Orange, ""); err != nil {
		return err
	}

	grid := [][]*plot.Plot{
		{tpsPlot, latencyPlot},
		{resourcePlot, txPlot},
	}

	return saveGrid(grid, 15, 10, path)
}

// renderDashboard writes the 2x3 panel repeating the metric views at
// dashboard scale plus the TPS-per-CPU efficiency view.
func (r *Renderer) renderDashboard(t *results.Table, path string) error {
	panels := []struct {
		title  string
		ylabel string
		color  color.Color
		value  func(results.Row) float64
	}{
		{"Transactions Per Second", "TPS", style.Blue, tps},
		{"Transaction Latency", "Latency (ms)", style.Green, latency},
		{"CPU Utilization", "CPU Usage (%)", style.Red, cpu},
		{"Memory Utilization", "Memory Usage (%)", style.Purple, memory},
		{"Transactions Per Block", "Avg Tx/Block", style.Orange, txPerBlock},
		{"Processing Efficiency", "TPS per CPU %", style.Cyan, efficiency},
	}

	grid := [][]*plot.Plot{
		make([]*plot.Plot, 3),
		make([]*plot.Plot, 3),
	}

	for i, panel := range panels {
		p := newLogXPlot(panel.title, panel.ylabel)
		if err := addSeries(p, t.Rows, panel.value, panel.color, ""); err != nil {
			return err
		}
		grid[i/3][i%3] = p
	}

	return saveGrid(grid, 16, 10, path)
}
