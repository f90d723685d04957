package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/gui"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	// Config file
	configFile string
	// Preset name
	preset string
	// Field and window overrides
	numParticles int
	width        int
	height       int
	maxSpeed     float64
	seed         int64
	pointSize    float64
	vsync        bool
	backendName  string
	vertexPath   string
	fragmentPath string
	// Headless run
	dt          float64
	duration    float64
	sampleEvery int
	runs        int
	// Frame rate for the terminal view
	frameRate int
	// Export
	outPath string
	scale   float64
)

// main registers the partsim commands and runs the particle window when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "partsim",
		Short:        "moving particle field demos",
		SilenceUsage: true,
		RunE:         runGL,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addFieldFlags(rootCmd)

	glCmd := &cobra.Command{
		Use:   "gl",
		Short: "render the particle field with OpenGL",
		Args:  cobra.NoArgs,
		RunE:  runGL,
	}
	addFieldFlags(glCmd)
	glCmd.Flags().StringVar(&vertexPath, "vertex", "", "vertex shader file (default: built in)")
	glCmd.Flags().StringVar(&fragmentPath, "fragment", "", "fragment shader file (default: built in)")
	rootCmd.Flags().StringVar(&vertexPath, "vertex", "", "vertex shader file (default: built in)")
	rootCmd.Flags().StringVar(&fragmentPath, "fragment", "", "fragment shader file (default: built in)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "open a window and clear it every frame",
		Args:  cobra.NoArgs,
		RunE:  runClear,
	}
	addWindowFlags(clearCmd)

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "render the particle field with raylib",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	addFieldFlags(previewCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the particle field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addFieldFlags(runCmd)
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSample, "record a sample every n steps")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of runs with consecutive seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and density analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: <run_id>.json)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "export the final field of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: <run_id>.svg)")
	svgCmd.Flags().Float64Var(&scale, "radius", 2, "particle radius in pixels")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark integration backends",
		Args:  cobra.NoArgs,
		RunE:  benchBackends,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets, or save the resolved config with --save",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	addFieldFlags(presetsCmd)
	presetsCmd.Flags().StringVar(&outPath, "save", "", "write the resolved config to this yaml file")

	rootCmd.AddCommand(glCmd, clearCmd, previewCmd, liveCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd, svgCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	if outPath != "" {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if err := config.Save(outPath, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("saved config to %s\n", outPath)
		return nil
	}

	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("  %-8s %6d particles, max speed %.0f\n", name, p.Particles, p.MaxSpeed)
	}
	return nil
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	cmd.Flags().BoolVar(&vsync, "vsync", true, "sync buffer swaps to the display")
}

func addFieldFlags(cmd *cobra.Command) {
	addWindowFlags(cmd)
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVarP(&numParticles, "particles", "n", config.DefaultParticles, "number of particles")
	cmd.Flags().Float64Var(&maxSpeed, "max-speed", config.DefaultMaxSpeed, "velocity range per axis")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time based)")
	cmd.Flags().Float64Var(&pointSize, "point-size", config.DefaultPointSize, "point size in pixels")
	cmd.Flags().StringVar(&backendName, "backend", config.DefaultBackend, "integration backend (serial, cpu, auto)")
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// resolveConfig builds the effective config: defaults, then preset, then
// config file, then any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("vsync") {
		cfg.VSync = vsync
	}
	if flags.Changed("particles") {
		cfg.Particles = numParticles
	}
	if flags.Changed("max-speed") {
		cfg.MaxSpeed = maxSpeed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("point-size") {
		cfg.PointSize = pointSize
	}
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("vertex") {
		cfg.VertexShader = vertexPath
	}
	if flags.Changed("fragment") {
		cfg.FragmentShader = fragmentPath
	}
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Sim.Duration = duration
	}
	if flags.Changed("sample") {
		cfg.Sim.SampleEvery = sampleEvery
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func spawnField(cfg *config.Config) particle.Field {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return particle.Spawn(cfg.Particles, float32(cfg.Width), float32(cfg.Height), float32(cfg.MaxSpeed), rng)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runGL(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	backend, err := compute.ByName(cfg.Backend)
	if err != nil {
		return err
	}

	app, err := render.NewApp(cfg, spawnField(cfg), backend, slog.Default())
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := signalContext()
	defer cancel()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Title = "Clear Screen"

	ctx, cancel := signalContext()
	defer cancel()

	if err := render.RunClear(ctx, cfg); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	backend, err := compute.ByName(cfg.Backend)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	p := gui.NewPreview(spawnField(cfg), backend, cfg.PointSize)
	if err := p.Run(ctx, cfg); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	backend, err := compute.ByName(cfg.Backend)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	respawn := func() particle.Field {
		return particle.Spawn(cfg.Particles, float32(cfg.Width), float32(cfg.Height), float32(cfg.MaxSpeed), rng)
	}

	m := viz.NewLive(respawn(), backend, viz.LiveConfig{
		Width:   float32(cfg.Width),
		Height:  float32(cfg.Height),
		FPS:     frameRate,
		Respawn: respawn,
	})
	return viz.RunLive(m)
}
