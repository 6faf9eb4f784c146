// Package main provides the CLI entry point for visualize, which renders
// a fixed set of benchmark charts from a CSV results file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/timewave-computer/ufo-benchviz/charts"
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
		comparative bool
		stylePath   string
		noProgress  bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "visualize <csv_file> <output_dir>",
		Short: "Render benchmark result charts from a CSV file",
		Long: `Visualize reads benchmark results from a CSV file and renders a fixed set
of PNG charts into the output directory, either for a single configuration
or comparing configurations against each other.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				level.Set(slog.LevelDebug)
			}

			return runVisualize(logger, visualizeConfig{
				csvPath:     args[0],
				outDir:      args[1],
				comparative: comparative,
				stylePath:   stylePath,
				noProgress:  noProgress,
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&comparative, "comparative", false,
		"Render comparison charts across configurations")
	flags.StringVar(&stylePath, "style", "",
		"Path to a TOML palette overriding the default colors and labels")
	flags.BoolVar(&noProgress, "no-progress", false,
		"Disable the progress bar")
	flags.BoolVar(&verbose, "verbose", false,
		"Enable debug logging")

	return cmd
}

type visualizeConfig struct {
	csvPath     string
	outDir      string
	comparative bool
	stylePath   string
	noProgress  bool
}

func runVisualize(logger *slog.Logger, cfg visualizeConfig) error {
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

	renderer := charts.New(logger, palette)
	renderer.ShowProgress = !cfg.noProgress

	var files []string
	if cfg.comparative {
		files, err = renderer.RenderComparative(table, cfg.outDir)
	} else {
		files, err = renderer.RenderSingle(table, cfg.outDir)
	}
	if err != nil {
		return err
	}

	logger.Info("visualizations created",
		slog.String("dir", cfg.outDir),
		slog.Int("files", len(files)),
	)

	return nil
}
