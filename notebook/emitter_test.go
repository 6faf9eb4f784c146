package notebook

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/timewave-computer/ufo-benchviz/results"
	"github.com/timewave-computer/ufo-benchviz/style"
)

const singleCSV = `block_time,tps,latency_ms,cpu_usage,memory_usage,blocks_produced,avg_tx_per_block
1000,105,220,35.5,42,12,875
100,480,30,55,48,118,40
10,950,8,88,61,1150,8
`

const comparativeCSV = `configuration,validators,block_time,tps,latency_ms,cpu_usage,memory_usage,blocks_produced,avg_tx_per_block
osmosis-comet,1,1000,95,240,40,45,12,792
osmosis-comet,1,100,500,32,62,50,120,42
osmosis-comet,4,100,420,39,71,58,119,35
fauxmosis-comet,1,100,610,21,48,38,121,50
`

func testEmitter() *Emitter {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, style.Default())
}

func loadTable(t *testing.T, content string) *results.Table {
	t.Helper()

	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	table, err := results.Load(path)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	return table
}

func emitDoc(t *testing.T, e *Emitter, table *results.Table, opts Options) (*Document, string) {
	t.Helper()

	outDir := filepath.Join(t.TempDir(), "out")
	path, err := e.Emit(table, outDir, opts)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		t.Fatalf("decode notebook: %v", err)
	}
	return doc, outDir
}

func TestEmitArtifacts(t *testing.T) {
	table := loadTable(t, singleCSV)
	outDir := filepath.Join(t.TempDir(), "out")

	path, err := testEmitter().Emit(table, outDir, Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	if want := filepath.Join(outDir, NotebookFile); path != want {
		t.Errorf("notebook path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("notebook file missing: %v", err)
	}
	info, err := os.Stat(filepath.Join(outDir, VisualizationsDir))
	if err != nil {
		t.Fatalf("visualizations directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("visualizations path is not a directory")
	}
}

func TestEmitCellCounts(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.md")
	if err := os.WriteFile(reportPath, []byte("# Report\n"), 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}

	tests := []struct {
		name string
		csv  string
		opts Options
		want int
	}{
		{"single", singleCSV, Options{}, 12},
		{"comparative", comparativeCSV, Options{}, 24},
		{"single with report", singleCSV, Options{ReportPath: reportPath}, 14},
		{"comparative with report", comparativeCSV, Options{ReportPath: reportPath}, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := emitDoc(t, testEmitter(), loadTable(t, tt.csv), tt.opts)
			if len(doc.Cells) != tt.want {
				t.Errorf("got %d cells, want %d", len(doc.Cells), tt.want)
			}
		})
	}
}

func TestEmitTitle(t *testing.T) {
	tests := []struct {
		name    string
		runName string
		want    string
	}{
		{"default", "", "# Benchmark Analysis"},
		{"custom", "UFO Nightly Run", "# UFO Nightly Run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := emitDoc(t, testEmitter(), loadTable(t, singleCSV), Options{RunName: tt.runName})

			title := doc.Cells[0]
			if title.Type != Markdown {
				t.Fatalf("title cell type = %q, want markdown", title.Type)
			}
			if !strings.HasPrefix(title.Text(), tt.want+"\n") {
				t.Errorf("title cell starts with %q, want %q", firstLine(title.Text()), tt.want)
			}
		})
	}
}

func TestEmitComparativeStructure(t *testing.T) {
	doc, _ := emitDoc(t, testEmitter(), loadTable(t, comparativeCSV), Options{})

	if got := doc.Cells[5]; got.Type != Code || !strings.Contains(got.Text(), "config_type") {
		t.Errorf("cell 5 = %q %q, want the config_type derivation code", got.Type, firstLine(got.Text()))
	}
	if got := doc.Cells[6].Text(); !strings.HasPrefix(got, "## Visualizations") {
		t.Errorf("cell 6 starts with %q, want the visualizations heading", firstLine(got))
	}

	var interactive bool
	for _, cell := range doc.Cells {
		if strings.HasPrefix(cell.Text(), "## Interactive Analysis") {
			interactive = true
		}
	}
	if !interactive {
		t.Error("comparative notebook has no interactive analysis section")
	}

	last := doc.Cells[len(doc.Cells)-1]
	if last.Type != Markdown || !strings.HasPrefix(last.Text(), "## Conclusion") {
		t.Errorf("last cell starts with %q, want the conclusion", firstLine(last.Text()))
	}
}

func TestEmitSingleStructure(t *testing.T) {
	doc, _ := emitDoc(t, testEmitter(), loadTable(t, singleCSV), Options{})

	if got := doc.Cells[5].Text(); !strings.HasPrefix(got, "## Visualizations") {
		t.Errorf("cell 5 starts with %q, want the visualizations heading", firstLine(got))
	}
	for i, cell := range doc.Cells {
		if strings.Contains(cell.Text(), "config_type") {
			t.Errorf("cell %d mentions config_type in a single-configuration notebook", i)
		}
	}

	last := doc.Cells[len(doc.Cells)-1]
	if !strings.HasPrefix(last.Text(), "## Conclusion") {
		t.Errorf("last cell starts with %q, want the conclusion", firstLine(last.Text()))
	}
}

func TestEmitReportVerbatim(t *testing.T) {
	content := "# Benchmark Report\n\nEverything within budget.\n"
	reportPath := filepath.Join(t.TempDir(), "report.md")
	if err := os.WriteFile(reportPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}

	doc, _ := emitDoc(t, testEmitter(), loadTable(t, singleCSV), Options{ReportPath: reportPath})

	heading := doc.Cells[len(doc.Cells)-3]
	if !strings.HasPrefix(heading.Text(), "## Benchmark Report") {
		t.Errorf("report heading cell starts with %q", firstLine(heading.Text()))
	}
	body := doc.Cells[len(doc.Cells)-2]
	if body.Type != Markdown {
		t.Errorf("report cell type = %q, want markdown", body.Type)
	}
	if got := body.Text(); got != content {
		t.Errorf("report cell text = %q, want the file content verbatim", got)
	}
}

func TestEmitReportUnreadable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-report.md")

	doc, _ := emitDoc(t, testEmitter(), loadTable(t, singleCSV), Options{ReportPath: missing})

	if got, want := len(doc.Cells), 14; got != want {
		t.Fatalf("got %d cells, want %d", got, want)
	}
	placeholder := doc.Cells[len(doc.Cells)-2].Text()
	if !strings.HasPrefix(placeholder, "Error loading benchmark report:") {
		t.Errorf("placeholder cell = %q, want an error message", firstLine(placeholder))
	}
	if !strings.Contains(placeholder, missing) {
		t.Errorf("placeholder %q does not name the report path", placeholder)
	}
}

func TestEmitPaletteFlowsIntoImports(t *testing.T) {
	palette := style.Default()
	palette.Base["testnet-x"] = "#123456"
	palette.BaseLabels["testnet-x"] = "Testnet X"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	doc, _ := emitDoc(t, New(logger, palette), loadTable(t, singleCSV), Options{})

	imports := doc.Cells[1].Text()
	for _, want := range []string{
		"'testnet-x': '#123456',",
		"'testnet-x': 'Testnet X',",
		"'fauxmosis-comet': '#ff7f0e',",
		"CONFIG_COLORS = {",
		"CONFIG_NAMES = {",
	} {
		if !strings.Contains(imports, want) {
			t.Errorf("imports cell missing %q", want)
		}
	}
}

func TestEmitRelativeCSVPath(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "results.csv")
	if err := os.WriteFile(csvPath, []byte(singleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	table, err := results.Load(csvPath)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	path, err := testEmitter().Emit(table, outDir, Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		t.Fatalf("decode notebook: %v", err)
	}

	load := doc.Cells[3].Text()
	if !strings.Contains(load, "pd.read_csv('../results.csv')") {
		t.Errorf("load cell = %q, want a read of ../results.csv", load)
	}
}

func TestRelativeCSVPath(t *testing.T) {
	tests := []struct {
		name   string
		source string
		outDir string
		want   string
	}{
		{"sibling directory", "/data/results.csv", "/data/out", "../results.csv"},
		{"same directory", "/data/results.csv", "/data", "results.csv"},
		{"empty source", "", "/data/out", "results.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relativeCSVPath(tt.source, tt.outDir); got != tt.want {
				t.Errorf("relativeCSVPath(%q, %q) = %q, want %q", tt.source, tt.outDir, got, tt.want)
			}
		})
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
