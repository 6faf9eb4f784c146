package notebook

import (
	"strings"
	"testing"

	"github.com/timewave-computer/ufo-benchviz/style"
)

func TestSectionCatalogShape(t *testing.T) {
	if got, want := len(comparativeSections), 6; got != want {
		t.Errorf("comparative catalog has %d sections, want %d", got, want)
	}
	if got, want := len(singleSections), 2; got != want {
		t.Errorf("single catalog has %d sections, want %d", got, want)
	}
	if got, want := len(interactiveCodes), 3; got != want {
		t.Errorf("interactive catalog has %d cells, want %d", got, want)
	}

	for i, s := range append(append([]section{}, comparativeSections...), singleSections...) {
		if !strings.HasPrefix(s.heading, "### ") {
			t.Errorf("section %d heading %q is not a subsection", i, firstLine(s.heading))
		}
		if s.code == "" {
			t.Errorf("section %d has no code", i)
		}
	}
}

func TestSnippetsSaveIntoVisualizationsDir(t *testing.T) {
	tests := []struct {
		name string
		code string
		file string
	}{
		{"tps comparison", tpsComparisonCode, "tps_comparison.png"},
		{"latency comparison", latencyComparisonCode, "latency_comparison.png"},
		{"cpu comparison", cpuComparisonCode, "cpu_comparison.png"},
		{"memory comparison", memoryComparisonCode, "memory_comparison.png"},
		{"validator impact", validatorImpactCode, "validator_impact.png"},
		{"comparative dashboard", comparativeDashboardCode, "comparative_dashboard.png"},
		{"efficiency", efficiencyCode, "efficiency_comparison.png"},
		{"memory vs tps", memoryVsTPSCode, "memory_vs_tps.png"},
		{"heatmap", heatmapCode, "blocktime_heatmap.png"},
		{"single tps", singleTPSCode, "tps_vs_blocktime.png"},
		{"single latency", singleLatencyCode, "latency_vs_blocktime.png"},
		{"single efficiency", singleEfficiencyCode, "efficiency_vs_blocktime.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := "plt.savefig(os.path.join(vis_dir, '" + tt.file + "'), dpi=300, bbox_inches='tight')"
			if !strings.Contains(tt.code, want) {
				t.Errorf("snippet does not save %s at 300 DPI into vis_dir", tt.file)
			}
		})
	}
}

func TestImportsCellDeterministic(t *testing.T) {
	p := style.Default()

	first := importsCell(p).Text()
	second := importsCell(p).Text()
	if first != second {
		t.Error("imports cell differs between runs on the same palette")
	}

	idx := strings.Index(first, "'fauxmosis-comet'")
	if idx < 0 {
		t.Fatal("imports cell is missing the first sorted base entry")
	}
	if later := strings.Index(first, "'osmosis-comet'"); later < idx {
		t.Error("base entries are not in sorted key order")
	}
}

func TestTitleCell(t *testing.T) {
	cell := titleCell("Nightly Run")
	if cell.Type != Markdown {
		t.Fatalf("title cell type = %q, want markdown", cell.Type)
	}
	text := cell.Text()
	if !strings.HasPrefix(text, "# Nightly Run\n\n") {
		t.Errorf("title cell starts with %q", firstLine(text))
	}
	if !strings.Contains(text, "interactive analysis") {
		t.Error("title cell is missing the introduction prose")
	}
}

func TestLoadDataCellQuotesPath(t *testing.T) {
	cell := loadDataCell("../run 1/results.csv")
	if cell.Type != Code {
		t.Fatalf("load cell type = %q, want code", cell.Type)
	}
	if !strings.Contains(cell.Text(), "pd.read_csv('../run 1/results.csv')") {
		t.Errorf("load cell = %q, want the quoted path", cell.Text())
	}
}
