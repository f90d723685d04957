package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/partsim/internal/analysis"
	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/export"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/spf13/cobra"
)

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:             cfg.Sim.Dt,
		Duration:       cfg.Sim.Duration,
		Width:          float64(cfg.Width),
		Height:         float64(cfg.Height),
		SampleEvery:    cfg.Sim.SampleEvery,
		ValidateBounds: true,
	}
}

func runMetadata(cfg *config.Config, seed int64) storage.RunMetadata {
	return storage.RunMetadata{
		Preset:    preset,
		Seed:      seed,
		Particles: cfg.Particles,
		Width:     float64(cfg.Width),
		Height:    float64(cfg.Height),
		MaxSpeed:  cfg.MaxSpeed,
		Dt:        cfg.Sim.Dt,
		Duration:  cfg.Sim.Duration,
		Backend:   cfg.Backend,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if runs > 1 {
		return runEnsemble(ctx, st, cfg)
	}

	backend, err := compute.ByName(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Cleanup()

	field := spawnField(cfg)
	simulator := sim.New(backend)
	for _, m := range metrics.Default(float64(cfg.Width), float64(cfg.Height)) {
		simulator.AddMetric(m)
	}

	start := time.Now()
	result, err := simulator.Run(ctx, field, simConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	runID, err := st.Save(runMetadata(cfg, cfg.Seed), result, field)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("steps: %d/%d in %v\n", result.StepsTaken, cfg.Steps(), elapsed.Round(time.Millisecond))
	printMetrics(result.Metrics)
	return nil
}

func runEnsemble(ctx context.Context, st *storage.Store, cfg *config.Config) error {
	spawn := func(rng *rand.Rand) particle.Field {
		return particle.Spawn(cfg.Particles, float32(cfg.Width), float32(cfg.Height), float32(cfg.MaxSpeed), rng)
	}
	newMetrics := func() []sim.Metric {
		return metrics.Default(float64(cfg.Width), float64(cfg.Height))
	}

	ens := sim.NewEnsemble(runs, cfg.Seed, spawn, newMetrics)
	results, err := ens.Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tSTEPS\tWRAPS\tMEAN SPEED")
	for i, result := range results {
		seed := cfg.Seed + int64(i)
		meta := runMetadata(cfg, seed)
		meta.Backend = "serial"
		runID, err := st.Save(meta, result, result.Field)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.3f\n",
			runID, seed, result.StepsTaken, result.TotalWraps, result.Metrics["mean_speed"])
	}
	return w.Flush()
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range []string{"wraps", "wrap_rate", "mean_speed", "bounds_violations", "centroid_drift"} {
		if v, ok := m[name]; ok {
			fmt.Fprintf(w, "%s\t%.4f\n", name, v)
		}
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tPARTICLES\tDURATION\tDT\tWRAPS")

	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Duration,
			run.Dt,
			run.TotalWraps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Particles)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(sim.Sample) float64
	}{
		{"centroid x", func(s sim.Sample) float64 { return float64(s.Centroid.X) }},
		{"centroid y", func(s sim.Sample) float64 { return float64(s.Centroid.Y) }},
		{"mean speed", func(s sim.Sample) float64 { return s.MeanSpeed }},
		{"wraps per sample", func(s sim.Sample) float64 { return float64(s.Wraps) }},
	}

	for _, ser := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = ser.value(s)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ser.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = float64(s.Wraps)
	}

	ps := analysis.PowerSpectrum(data)

	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (wraps per sample)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.SampleInterval(samples))
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	field, err := st.LoadField(runID)
	if err != nil {
		return err
	}
	grid := analysis.Density(field, float32(meta.Width), float32(meta.Height), 16, 12)
	fmt.Printf("density uniformity: %.3f\n", analysis.Uniformity(grid))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func outputPath(runID, ext string) string {
	if outPath != "" {
		return outPath
	}
	return runID + ext
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := outputPath(runID, ".csv")

	st := storage.New(dataDir)
	if err := st.ExportCSV(runID, path); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := outputPath(runID, ".json")

	st := storage.New(dataDir)
	if err := st.ExportJSON(runID, path); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := outputPath(runID, ".svg")

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	field, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	svg := export.FieldToSVG(field, float32(meta.Width), float32(meta.Height), scale)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, path)
	return nil
}

func benchBackends(cmd *cobra.Command, args []string) error {
	sizes := []int{100, 1000, 10000, 100000}
	backends := []compute.Backend{compute.NewSerialBackend(), compute.NewCPUBackend()}
	const (
		steps = 200
		dt    = float32(config.DefaultDt)
		w     = float32(config.DefaultWidth)
		h     = float32(config.DefaultHeight)
	)

	fmt.Printf("benchmarking %d steps per field\n\n", steps)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BACKEND\tPARTICLES\tTIME\tPARTICLE-STEPS/SEC")

	for _, b := range backends {
		for _, n := range sizes {
			field := particle.Spawn(n, w, h, config.DefaultMaxSpeed, rand.New(rand.NewSource(42)))

			start := time.Now()
			for i := 0; i < steps; i++ {
				b.Integrate(field, dt, w, h)
			}
			elapsed := time.Since(start)

			rate := float64(n*steps) / elapsed.Seconds()
			fmt.Fprintf(tw, "%s\t%d\t%v\t%.0f\n", b.Name(), n, elapsed.Round(time.Microsecond), rate)
		}
		b.Cleanup()
	}

	return tw.Flush()
}
