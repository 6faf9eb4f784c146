package charts

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/timewave-computer/ufo-benchviz/results"
	"github.com/timewave-computer/ufo-benchviz/style"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testRenderer() *Renderer {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), style.Default())
}

func loadTable(t *testing.T, content string) *results.Table {
	t.Helper()

	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := results.Load(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	return table
}

func checkPNG(t *testing.T, path string) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	header := make([]byte, len(pngMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	for i := range pngMagic {
		if header[i] != pngMagic[i] {
			t.Fatalf("%s is not a PNG (header %x)", path, header)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"osmosis-comet", "Osmosis-comet"},
		{"fauxmosis-ufo", "Fauxmosis-ufo"},
		{"UFO", "Ufo"},
		{"x", "X"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := capitalize(tt.input); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMean(t *testing.T) {
	rows := []results.Row{
		{CPUUsage: 30},
		{CPUUsage: 50},
		{CPUUsage: 70},
	}

	if got := mean(rows, cpu); got != 50 {
		t.Errorf("mean = %v, want 50", got)
	}
	if got := mean(nil, cpu); got != 0 {
		t.Errorf("mean of no rows = %v, want 0", got)
	}
}

func TestPositiveRows(t *testing.T) {
	rows := []results.Row{
		{BlockTime: 1000, LatencyMs: 220},
		{BlockTime: 100, LatencyMs: 0},
		{BlockTime: 10, LatencyMs: -5},
	}

	kept := positiveRows(rows, latency)
	if len(kept) != 1 {
		t.Fatalf("kept %d rows, want 1", len(kept))
	}
	if kept[0].BlockTime != 1000 {
		t.Errorf("kept row has block time %v, want 1000", kept[0].BlockTime)
	}

	if got := positiveRows(nil, latency); len(got) != 0 {
		t.Errorf("positiveRows(nil) kept %d rows, want 0", len(got))
	}
}

func TestHasPositive(t *testing.T) {
	rows := []results.Row{
		{LatencyMs: 0},
		{LatencyMs: 15},
	}

	if !hasPositive(rows, latency) {
		t.Error("expected a positive latency to be found")
	}
	if hasPositive(rows[:1], latency) {
		t.Error("zero latency counted as positive")
	}
	if hasPositive(nil, latency) {
		t.Error("no rows counted as positive")
	}
}

func TestSeriesColors(t *testing.T) {
	r := testRenderer()

	colors, err := r.seriesColors([]string{
		"osmosis-comet-1", "mystery-chain-1", "mystery-chain-4",
	})
	if err != nil {
		t.Fatalf("seriesColors failed: %v", err)
	}

	known, _ := r.Palette.SeriesColor("osmosis-comet-1")
	if colors["osmosis-comet-1"] != known {
		t.Error("known key did not use its palette color")
	}

	if colors["mystery-chain-1"] == nil || colors["mystery-chain-4"] == nil {
		t.Fatal("unknown keys did not receive fallback colors")
	}
	if colors["mystery-chain-1"] == colors["mystery-chain-4"] {
		t.Error("distinct unknown keys share one fallback color")
	}

	again, err := r.seriesColors([]string{
		"osmosis-comet-1", "mystery-chain-1", "mystery-chain-4",
	})
	if err != nil {
		t.Fatalf("seriesColors failed: %v", err)
	}
	if colors["mystery-chain-1"] != again["mystery-chain-1"] {
		t.Error("fallback assignment is not deterministic")
	}
}
