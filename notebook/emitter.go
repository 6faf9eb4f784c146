package notebook

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/timewave-computer/ufo-benchviz/results"
	"github.com/timewave-computer/ufo-benchviz/style"
)

// Artifacts written into the output directory.
const (
	NotebookFile      = "benchmark_analysis.ipynb"
	VisualizationsDir = "notebook_visualizations"
)

// Emitter builds analysis notebooks for benchmark tables.
type Emitter struct {
	Logger  *slog.Logger
	Palette style.Palette
}

// Options adjust a single emission.
type Options struct {
	// ReportPath optionally names a markdown report to embed verbatim. An
	// unreadable report becomes a placeholder cell rather than failing the
	// emission.
	ReportPath string

	// RunName titles the notebook. Empty falls back to "Benchmark
	// Analysis".
	RunName string
}

// New returns an Emitter using the given logger and palette.
func New(logger *slog.Logger, palette style.Palette) *Emitter {
	return &Emitter{Logger: logger, Palette: palette}
}

// Emit builds the notebook for the table and writes it into outDir,
// returning the notebook path. The visualizations directory referenced by
// the embedded code is created alongside so the notebook runs in place.
func (e *Emitter) Emit(t *results.Table, outDir string, opts Options) (string, error) {
	if err := os.MkdirAll(filepath.Join(outDir, VisualizationsDir), 0o755); err != nil {
		return "", fmt.Errorf("create visualizations directory: %w", err)
	}

	doc := e.build(t, outDir, opts)

	path := filepath.Join(outDir, NotebookFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create notebook: %w", err)
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close notebook: %w", err)
	}

	e.Logger.Info("notebook created",
		slog.String("path", path),
		slog.Int("cells", len(doc.Cells)))

	return path, nil
}

// build assembles the cell sequence for the table. Tables with
// configuration columns get the comparative analysis; others get the
// single-configuration walkthrough.
func (e *Emitter) build(t *results.Table, outDir string, opts Options) *Document {
	runName := opts.RunName
	if runName == "" {
		runName = "Benchmark Analysis"
	}

	doc := &Document{}
	add := func(cells ...Cell) {
		doc.Cells = append(doc.Cells, cells...)
	}

	add(
		titleCell(runName),
		importsCell(e.Palette),
		MarkdownCell(benchmarkDataText),
		loadDataCell(relativeCSVPath(t.Source, outDir)),
		CodeCell(describeCode),
	)

	if t.HasConfigColumns() {
		add(CodeCell(configTypeCode))
		add(MarkdownCell(visualizationsText))
		for _, s := range comparativeSections {
			add(MarkdownCell(s.heading), CodeCell(s.code))
		}
		add(MarkdownCell(interactiveText))
		for _, code := range interactiveCodes {
			add(CodeCell(code))
		}
	} else {
		add(MarkdownCell(visualizationsText))
		for _, s := range singleSections {
			add(MarkdownCell(s.heading), CodeCell(s.code))
		}
		add(CodeCell(singleEfficiencyCode))
	}

	if opts.ReportPath != "" {
		add(MarkdownCell(reportHeadingText), e.reportCell(opts.ReportPath))
	}

	add(MarkdownCell(conclusionText))

	return doc
}

// reportCell embeds the report text verbatim, or a placeholder when the
// file cannot be read.
func (e *Emitter) reportCell(path string) Cell {
	content, err := os.ReadFile(path)
	if err != nil {
		e.Logger.Warn("benchmark report unreadable",
			slog.String("path", path),
			slog.Any("error", err))
		return MarkdownCell(fmt.Sprintf("Error loading benchmark report: %v", err))
	}
	return MarkdownCell(string(content))
}

// relativeCSVPath rewrites source relative to the notebook's directory so
// the read_csv cell resolves when the notebook runs in place. Paths that
// cannot be made relative pass through unchanged; an unknown source falls
// back to a results.csv sibling.
func relativeCSVPath(source, outDir string) string {
	if source == "" {
		return "results.csv"
	}
	absSource, err := filepath.Abs(source)
	if err != nil {
		return source
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return source
	}
	rel, err := filepath.Rel(absOut, absSource)
	if err != nil {
		return source
	}
	return filepath.ToSlash(rel)
}
