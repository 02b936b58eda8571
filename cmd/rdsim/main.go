package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/rdsim/internal/tui"
	"github.com/san-kum/rdsim/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	themeName string

	// grid and run settings
	size        int
	dx          float64
	dy          float64
	dt          float64
	steps       int
	sampleEvery int
	seed        int64
	params      []string
	configFile  string
	preset      string

	// run output
	noSave    bool
	live      bool
	frameRate int

	// field output
	species string
	outPath string
	scale   float64

	// phase plot axes
	xSpecies string
	ySpecies string

	// parameter studies
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	points     int
	grid       []string
	metricName string
	maximize   bool

	// ensembles
	numRuns   int
	seedStart int64
	workers   int
)

// main registers the rdsim commands and runs the root command. Without a
// subcommand the interactive model browser opens.
func main() {
	rootCmd := &cobra.Command{
		Use:   "rdsim",
		Short: "reaction-diffusion pattern lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			viz.SetTheme(themeName)
			return setupLogging(logLevel, logFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rdsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "viridis", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}

	paramsCmd := &cobra.Command{
		Use:   "params [model]",
		Short: "show the parameters of a model",
		Args:  cobra.ExactArgs(1),
		RunE:  showParams,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and record its statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addPatternFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from config)")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "steps between samples (default from config)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")
	runCmd.Flags().BoolVar(&live, "live", false, "redraw the field while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 10, "frame rate of --live")
	runCmd.Flags().StringVar(&species, "species", "", "species drawn by --live (default first)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "interactive live view of a model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addPatternFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [stat]",
		Short: "plot a sampled statistic (mean, std, min, max) of a run",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&species, "species", "", "only plot this species")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of two species' mean concentrations",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xSpecies, "x", "", "species on the x axis (default first)")
	phaseCmd.Flags().StringVar(&ySpecies, "y", "", "species on the y axis (default second)")
	phaseCmd.Flags().StringVar(&outPath, "svg", "", "also write the portrait as SVG")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the samples of a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&species, "species", "", "only export this species")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [model]",
		Short: "run a model and write the final field as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	addPatternFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from config)")
	snapshotCmd.Flags().StringVar(&species, "species", "", "species to draw (default first)")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "snapshot.svg", "output file")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "pixels per cell")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [model]",
		Short: "run a model and report the dominant pattern wavelength",
		Args:  cobra.MaximumNArgs(1),
		RunE:  spectrum,
	}
	addPatternFlags(spectrumCmd)
	spectrumCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from config)")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [model]",
		Short: "sweep one parameter and plot the settled concentration levels",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bifurcation,
	}
	addPatternFlags(bifurcationCmd)
	bifurcationCmd.Flags().IntVar(&steps, "steps", 0, "settling steps per point (default from config)")
	bifurcationCmd.Flags().StringVar(&sweepParam, "sweep", "", "parameter to sweep")
	bifurcationCmd.Flags().Float64Var(&sweepMin, "min", 0, "lower end (default parameter minimum)")
	bifurcationCmd.Flags().Float64Var(&sweepMax, "max", 0, "upper end (default parameter maximum)")
	bifurcationCmd.Flags().IntVar(&points, "points", 20, "number of parameter values")
	bifurcationCmd.Flags().StringVar(&species, "species", "", "species to record (default first)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "grid search over parameters for the best metric value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweep,
	}
	addPatternFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&steps, "steps", 0, "steps per grid point (default from config)")
	sweepCmd.Flags().StringArrayVar(&grid, "grid", nil, "grid axis name=lo:hi:n (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "", "metric to optimize, e.g. contrast_V")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "run several seeds in parallel and summarize their metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  ensemble,
	}
	addPatternFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from config)")
	ensembleCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "steps between samples (default from config)")
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	ensembleCmd.Flags().Int64Var(&seedStart, "seed-start", 1, "first seed")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default number of CPUs)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario in order",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(modelsCmd, paramsCmd, presetsCmd, runCmd, liveCmd, listCmd, plotCmd, phaseCmd,
		exportCmd, exportCSVCmd, snapshotCmd, spectrumCmd, bifurcationCmd, sweepCmd, ensembleCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPatternFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", 0, "grid edge length (default from model)")
	cmd.Flags().Float64Var(&dx, "dx", 0, "spatial step along columns (default from model)")
	cmd.Flags().Float64Var(&dy, "dy", 0, "spatial step along rows (default dx)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "time step (default from model)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "parameter override name=value (repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.MarkFlagsMutuallyExclusive("config", "preset")
}

func setupLogging(level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
