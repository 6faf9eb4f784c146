// Package main provides the CLI entry point for generate_notebook, which
// emits a Jupyter notebook for exploring benchmark results.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/timewave-computer/ufo-benchviz/notebook"
	"github.com/timewave-computer/ufo-benchviz/results"
	"github.com/timewave-computer/ufo-benchviz/style"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var (
		reportPath string
		runName    string
		stylePath  string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "generate_notebook <csv_file> <output_dir>",
		Short: "Generate a Jupyter notebook for exploring benchmark results",
		Long: `Generate_notebook reads benchmark results from a CSV file and writes a
Jupyter notebook with data exploration and plotting cells into the output
directory, alongside the directory the notebook saves its images to.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				level.Set(slog.LevelDebug)
			}

			return runGenerate(logger, generateConfig{
				csvPath:    args[0],
				outDir:     args[1],
				reportPath: reportPath,
				runName:    runName,
				stylePath:  stylePath,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&reportPath, "report", "",
		"Path to a benchmark report markdown file to embed")
	flags.StringVar(&runName, "run-name", "",
		"Name of the benchmark run, used as the notebook title")
	flags.StringVar(&stylePath, "style", "",
		"Path to a TOML palette overriding the default colors and labels")
	flags.BoolVar(&verbose, "verbose", false,
		"Enable debug logging")

	return cmd
}

type generateConfig struct {
	csvPath    string
	outDir     string
	reportPath string
	runName    string
	stylePath  string
}

func runGenerate(logger *slog.Logger, cfg generateConfig) error {
	table, err := results.Load(cfg.csvPath)
	if err != nil {
		return err
	}

	logger.Info("loaded benchmark results",
		slog.String("path", cfg.csvPath),
		slog.Int("rows", len(table.Rows)),
		slog.Bool("comparative_columns", table.HasConfigColumns()),
	)

	palette := style.Default()
	if cfg.stylePath != "" {
		palette, err = style.Load(cfg.stylePath)
		if err != nil {
			return fmt.Errorf("load style: %w", err)
		}
	}

	emitter := notebook.New(logger, palette)
	path, err := emitter.Emit(table, cfg.outDir, notebook.Options{
		ReportPath: cfg.reportPath,
		RunName:    cfg.runName,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Jupyter notebook created at: %s\n", path)
	fmt.Printf("To view it, run: jupyter notebook %s\n", path)

	return nil
}
