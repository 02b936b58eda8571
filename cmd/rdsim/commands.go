package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rdsim/internal/analysis"
	"github.com/san-kum/rdsim/internal/automation"
	"github.com/san-kum/rdsim/internal/config"
	"github.com/san-kum/rdsim/internal/experiment"
	"github.com/san-kum/rdsim/internal/export"
	"github.com/san-kum/rdsim/internal/metrics"
	"github.com/san-kum/rdsim/internal/models"
	"github.com/san-kum/rdsim/internal/optim"
	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/storage"
	"github.com/san-kum/rdsim/internal/tui"
	"github.com/san-kum/rdsim/internal/turing"
	"github.com/san-kum/rdsim/internal/viz"
)

func listModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tSPECIES\tDESCRIPTION")
	for _, e := range models.Available() {
		info := e.Info()
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, strings.Join(info.Species, ","), info.Description)
	}
	return w.Flush()
}

func showParams(cmd *cobra.Command, args []string) error {
	e, err := models.Lookup(args[0])
	if err != nil {
		return err
	}
	info := e.Info()

	fmt.Printf("model: %s\n", info.Name)
	fmt.Printf("species: %s\n", strings.Join(info.Species, ", "))
	fmt.Printf("grid: %dx%d  dx=%g dy=%g dt=%g\n\n", info.DefaultSize, info.DefaultSize, info.DefaultDx, info.DefaultDy, info.DefaultDt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tMIN\tMAX\tTYPE\tTUNABLE\tDESCRIPTION")
	for _, p := range info.Parameters {
		tunable := ""
		if slices.Contains(info.Tunable, p.Name) {
			tunable = "yes"
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%s\t%s\t%s\n", p.Name, p.Value, p.Min, p.Max, p.DType, tunable, p.Description)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	e, err := models.Lookup(args[0])
	if err != nil {
		return err
	}
	names := config.ListPresets(e.Name)
	if len(names) == 0 {
		fmt.Printf("no presets for %s\n", e.Name)
		return nil
	}
	for _, name := range names {
		p := config.GetPreset(e.Name, name)
		fmt.Printf("  %-12s %s\n", name, formatParams(p.Params))
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	p := exp.Pattern()

	if live {
		sp, err := pickSpecies(p, species)
		if err != nil {
			return err
		}
		renderer := tui.NewLiveRenderer(os.Stdout, p.Name(), sp, p.Info().ContrastLimits, frameRate)
		exp.Simulator().AddObserver(renderer)
		renderer.Start()
		defer renderer.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("running simulation", "model", p.Name(), "size", p.Size(), "steps", cfg.Steps, "seed", exp.Seed())
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		slog.Warn("run interrupted", "step", result.Steps, "err", err)
	}
	elapsed := time.Since(start)
	slog.Info("simulation finished", "model", p.Name(), "steps", result.Steps, "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("steps: %d  time: %.4f  seed: %d\n", result.Steps, result.Time, exp.Seed())

	if !noSave {
		st := storage.New(cfg.Output)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Metadata(result), result.Samples)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printMetrics(result.Metrics)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := cfg.Build()
	if err != nil {
		return err
	}
	return tui.RunLive(p)
}

func openStore() *storage.Store {
	return storage.New(dataDir)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSIZE\tSTEPS\tDT\tSEED\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if len(run.Errors) > 0 {
			status = "diverged"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%g\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Steps,
			run.Dt,
			run.Seed,
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	statName := "mean"
	if len(args) > 1 {
		statName = args[1]
	}
	switch statName {
	case "mean", "std", "min", "max":
	default:
		return fmt.Errorf("unknown statistic %q (want mean, std, min or max)", statName)
	}

	st := openStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	result := &sim.Result{Samples: samples}
	names := sampledSpecies(samples)
	if species != "" {
		if !slices.Contains(names, species) {
			return fmt.Errorf("run %s has no species %q (have %s)", runID, species, strings.Join(names, ", "))
		}
		names = []string{species}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(samples)/len(sampledSpecies(samples)))

	for _, sp := range names {
		fmt.Println(viz.Plot(result.Series(sp, statName), fmt.Sprintf("%s %s vs sample", sp, statName), 80, 10))
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	samples, err := openStore().LoadSamples(runID)
	if err != nil {
		return err
	}
	names := sampledSpecies(samples)
	if len(names) < 2 {
		return fmt.Errorf("phase portrait needs two species, run %s has %d", runID, len(names))
	}

	x, y := xSpecies, ySpecies
	if x == "" {
		x = names[0]
	}
	if y == "" {
		y = names[1]
		if y == x {
			y = names[0]
		}
	}

	portrait := analysis.GeneratePhasePortrait(&sim.Result{Samples: samples}, x, y)
	if portrait == nil {
		return fmt.Errorf("no samples for %s and %s in run %s", x, y, runID)
	}

	fmt.Printf("phase portrait: mean %s vs mean %s\n\n", y, x)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 20))

	if outPath != "" {
		svg := export.TrajectoryToSVG(portrait.Points, 600, 600, viz.CurrentTheme.At(0.8).Hex())
		if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return openStore().ExportJSON(args[0], os.Stdout)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return openStore().ExportCSV(args[0], species, os.Stdout)
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	result, p, err := settle(cfg)
	if err != nil {
		return err
	}
	sp, err := pickSpecies(p, species)
	if err != nil {
		return err
	}
	f := result.Final[sp]

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := export.FieldToSVG(out, f, limitsFor(p, f), viz.CurrentTheme, scale); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %s, step %d)\n", outPath, p.Name(), sp, result.Steps)
	return nil
}

func spectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	result, p, err := settle(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s after %d steps (t=%.4f)\n\n", p.Name(), result.Steps, result.Time)
	for _, sp := range p.Species() {
		f := result.Final[sp]
		bins := analysis.RadialSpectrum(f)
		if len(bins) > 1 {
			fmt.Println(viz.Plot(bins[1:], fmt.Sprintf("%s radial power spectrum (k = 1..%d)", sp, len(bins)-1), 60, 8))
		}
		if wl := analysis.DominantWavelength(f, p.Dx()); wl > 0 {
			fmt.Printf("  %s dominant wavelength: %.4f\n\n", sp, wl)
		} else {
			fmt.Printf("  %s: no pattern\n\n", sp)
		}
	}
	return nil
}

func bifurcation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	e, err := models.Lookup(cfg.Model)
	if err != nil {
		return err
	}
	info := e.Info()

	if sweepParam == "" {
		if len(info.Tunable) == 0 {
			return fmt.Errorf("--sweep is required for %s", info.Name)
		}
		sweepParam = info.Tunable[0]
	}
	idx := slices.IndexFunc(info.Parameters, func(p turing.Parameter) bool { return p.Name == sweepParam })
	if idx < 0 {
		return fmt.Errorf("model %s has no parameter %q", info.Name, sweepParam)
	}
	desc := info.Parameters[idx]

	lo, hi := desc.Min, desc.Max
	if cmd.Flags().Changed("min") {
		lo = sweepMin
	}
	if cmd.Flags().Changed("max") {
		hi = sweepMax
	}
	sp := species
	if sp == "" {
		sp = info.Species[0]
	}

	build := func(v float64) (*turing.Pattern, error) {
		c := cfg.Clone()
		c.Params[sweepParam] = v
		return c.Build()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("bifurcation sweep", "model", info.Name, "param", sweepParam, "min", lo, "max", hi, "points", points)
	data, err := analysis.BifurcationDiagram(ctx, build, sp, lo, hi, points, cfg.Steps)
	if err != nil {
		return err
	}

	fmt.Printf("%s levels vs %s\n\n", sp, sweepParam)
	fmt.Println(analysis.BifurcationToASCII(data, 70, 20))
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("at least one --grid axis is required")
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}

	metric := metricName
	if metric == "" {
		e, err := models.Lookup(cfg.Model)
		if err != nil {
			return err
		}
		metric = "contrast_" + e.Info().Species[0]
	}
	if _, ok := metrics.ByName(metric); !ok {
		return fmt.Errorf("unknown metric %q", metric)
	}

	gs := optim.NewGridSearch(names, ranges)
	if maximize {
		gs.Maximize()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("grid search", "model", cfg.Model, "axes", strings.Join(names, ","), "metric", metric)
	best, value, err := gs.Search(ctx, func(values map[string]float64) (*experiment.Experiment, error) {
		c := cfg.Clone()
		for k, v := range values {
			c.Params[k] = v
		}
		return experiment.New(c)
	}, metric)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PARAMS\t%s\tNOTE\n", strings.ToUpper(metric))
	for _, t := range gs.Trials() {
		note := ""
		if t.Err != nil {
			note = t.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%.6g\t%s\n", formatParams(t.Params), t.Value, note)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest: %s  %s=%.6g\n", formatParams(best), metric, value)
	return nil
}

func ensemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	e, err := models.Lookup(cfg.Model)
	if err != nil {
		return err
	}
	speciesNames := e.Info().Species
	if numRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	ens := sim.NewEnsemble(func(s int64) (*turing.Pattern, error) {
		c := cfg.Clone()
		c.Seed = s
		return c.Build()
	}, numRuns, seedStart).
		WithWorkers(workers).
		WithMetrics(func() []sim.Metric { return metrics.Standard(speciesNames) })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("running ensemble", "model", e.Name, "runs", numRuns, "seed_start", seedStart)
	start := time.Now()
	results, err := ens.Run(ctx, sim.Config{Steps: cfg.Steps, SampleEvery: cfg.SampleEvery, ValidateState: true})
	if err != nil {
		return err
	}
	slog.Info("ensemble finished", "elapsed", time.Since(start))

	names := make([]string, 0)
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\t%s\tSTATUS\n", strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = fmt.Sprintf("%.5g", r.Metrics[name])
		}
		status := "ok"
		if len(r.Errors) > 0 {
			status = "diverged"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", seedStart+int64(i), strings.Join(row, "\t"), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nsummary:")
	for _, name := range names {
		vals := make([]float64, len(results))
		for i, r := range results {
			vals[i] = r.Metrics[name]
		}
		mean, std := stat.MeanStdDev(vals, nil)
		fmt.Printf("  %-20s %.6g ± %.3g\n", name, mean, std)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := openStore()
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tSEED\tSTEPS\tSTATUS\tRUN")
	for _, r := range results {
		status := "ok"
		if len(r.Result.Errors) > 0 {
			status = "diverged"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n", r.Index, r.Model, r.Seed, r.Result.Steps, status, r.RunID)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

// settle runs cfg without sampling in between and returns the final state.
func settle(cfg *config.Config) (*sim.Result, *turing.Pattern, error) {
	p, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	every := cfg.Steps
	if every <= 0 {
		every = 1
	}
	result, err := sim.New(p).Run(ctx, sim.Config{Steps: cfg.Steps, SampleEvery: every, ValidateState: true})
	if err != nil {
		return nil, nil, err
	}
	for _, e := range result.Errors {
		slog.Warn("run diverged", "model", p.Name(), "err", e)
	}
	return result, p, nil
}

func pickSpecies(p *turing.Pattern, name string) (string, error) {
	all := p.Species()
	if name == "" {
		return all[0], nil
	}
	if !slices.Contains(all, name) {
		return "", fmt.Errorf("model %s has no species %q (have %s)", p.Name(), name, strings.Join(all, ", "))
	}
	return name, nil
}

// limitsFor falls back to the field range when the model declares no
// contrast limits.
func limitsFor(p *turing.Pattern, f turing.Field) [2]float64 {
	limits := p.Info().ContrastLimits
	if limits[0] < limits[1] {
		return limits
	}
	return [2]float64{f.Min(), f.Max()}
}

func sampledSpecies(samples []sim.Sample) []string {
	var names []string
	for _, s := range samples {
		if !slices.Contains(names, s.Species) {
			names = append(names, s.Species)
		}
	}
	return names
}

func formatParams(values map[string]float64) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, values[k])
	}
	return strings.Join(parts, " ")
}

func printMetrics(values map[string]float64) {
	if len(values) == 0 {
		return
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}
