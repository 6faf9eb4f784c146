// Package charts renders benchmark tables into the fixed catalog of PNG
// charts, either for a single configuration or comparatively across
// configurations and validator counts.
package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/timewave-computer/ufo-benchviz/results"
	"github.com/timewave-computer/ufo-benchviz/style"
)

const chartDPI = 300

// Renderer writes benchmark charts as 300 DPI PNG files. Re-rendering
// into the same directory overwrites prior outputs.
type Renderer struct {
	Logger       *slog.Logger
	Palette      style.Palette
	ShowProgress bool
}

// New returns a Renderer drawing with the given palette.
func New(logger *slog.Logger, palette style.Palette) *Renderer {
	return &Renderer{
		Logger:  logger,
		Palette: palette,
	}
}

// Metric selectors shared by the chart catalogs.
func tps(r results.Row) float64        { return r.TPS }
func latency(r results.Row) float64    { return r.LatencyMs }
func cpu(r results.Row) float64        { return r.CPUUsage }
func memory(r results.Row) float64     { return r.MemoryUsage }
func blocks(r results.Row) float64     { return r.BlocksProduced }
func txPerBlock(r results.Row) float64 { return r.AvgTxPerBlock }
func efficiency(r results.Row) float64 { return r.Efficiency() }

// newLogXPlot builds a titled plot with a log-scaled block-time x axis
// and a background grid.
func newLogXPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Block Time (ms)"
	p.Y.Label.Text = ylabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	return p
}

// addSeries plots rows as a connected line with point markers. A non-empty
// label also registers the series in the plot legend.
func addSeries(
	p *plot.Plot,
	rows []results.Row,
	value func(results.Row) float64,
	c color.Color,
	label string,
) error {
	pts := make(plotter.XYs, len(rows))
	for i, row := range rows {
		pts[i].X = row.BlockTime
		pts[i].Y = value(row)
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("line series: %w", err)
	}

	line.Color = c
	line.Width = vg.Points(2)
	points.GlyphStyle.Color = c
	points.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(line, points)

	if label != "" {
		p.Legend.Add(label, line, points)
	}

	return nil
}

// positiveRows returns the rows whose metric value is positive, the only
// points a log-scaled axis can place.
func positiveRows(rows []results.Row, value func(results.Row) float64) []results.Row {
	kept := make([]results.Row, 0, len(rows))
	for _, row := range rows {
		if value(row) > 0 {
			kept = append(kept, row)
		}
	}

	return kept
}

// hasPositive reports whether any row carries a positive metric value.
func hasPositive(rows []results.Row, value func(results.Row) float64) bool {
	for _, row := range rows {
		if value(row) > 0 {
			return true
		}
	}

	return false
}

// groupedBars adds a left/right bar pair per group, centered on the group
// position so absent values still occupy their slot.
func groupedBars(
	p *plot.Plot,
	left, right plotter.Values,
	leftColor, rightColor color.Color,
	leftLabel, rightLabel string,
	groups []string,
	withLegend bool,
) error {
	p.Add(plotter.NewGrid())

	width := vg.Points(20)

	leftBars, err := plotter.NewBarChart(left, width)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	leftBars.Color = leftColor
	leftBars.LineStyle.Width = 0
	leftBars.Offset = -width / 2

	rightBars, err := plotter.NewBarChart(right, width)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	rightBars.Color = rightColor
	rightBars.LineStyle.Width = 0
	rightBars.Offset = width / 2

	p.Add(leftBars, rightBars)
	p.NominalX(groups...)
	p.X.Min, p.X.Max = -0.5, float64(len(groups))-0.5
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if withLegend {
		p.Legend.Add(leftLabel, leftBars)
		p.Legend.Add(rightLabel, rightBars)
		p.Legend.Top = true
	}

	return nil
}

// seriesColors assigns each config key its palette color; keys without an
// entry draw from the fallback cycle in sorted-key order.
func (r *Renderer) seriesColors(keys []string) (map[string]color.Color, error) {
	colors := make(map[string]color.Color, len(keys))

	var unknown []string
	for _, key := range keys {
		if c, ok := r.Palette.SeriesColor(key); ok {
			colors[key] = c
		} else {
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		cycle, err := style.FallbackColors(len(unknown))
		if err != nil {
			return nil, err
		}
		for i, key := range unknown {
			colors[key] = cycle[i]
		}
	}

	return colors, nil
}

// savePNG renders a single plot to path at the given size in inches.
func savePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(chartDPI),
	)
	p.Draw(draw.New(img))

	return writePNG(img, path)
}

// saveGrid renders a rows×cols panel of plots to path, axis-aligned.
func saveGrid(plots [][]*plot.Plot, widthIn, heightIn float64, path string) error {
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(chartDPI),
	)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, draw.New(img))
	for i := range plots {
		for j, panel := range plots[i] {
			if panel != nil {
				panel.Draw(canvases[i][j])
			}
		}
	}

	return writePNG(img, path)
}

func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()

		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}

func (r *Renderer) progressBar(total int) *progressbar.ProgressBar {
	if !r.ShowProgress {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Rendering charts"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func advance(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}

func mean(rows []results.Row, value func(results.Row) float64) float64 {
	if len(rows) == 0 {
		return 0
	}

	var sum float64
	for _, row := range rows {
		sum += value(row)
	}

	return sum / float64(len(rows))
}

// capitalize upper-cases the first rune and lower-cases the rest, the form
// used for configuration names on bar chart axes.
func capitalize(s string) string {
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
