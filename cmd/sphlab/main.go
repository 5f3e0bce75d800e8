package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pongo192/sphlab/internal/config"
	"github.com/pongo192/sphlab/internal/metrics"
	"github.com/pongo192/sphlab/internal/scene"
	"github.com/pongo192/sphlab/internal/stream"
	"github.com/pongo192/sphlab/internal/telemetry"
	"github.com/pongo192/sphlab/internal/tui"
)

var (
	configFile string
	preset     string
	solverName string
	dt         float64
	steps      int
	adaptive   bool
	csvPath    string
	addr       string
	frameRate  int
	perFrame   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sphlab",
		Short: "smoothed-particle hydrodynamics lab",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write per-step telemetry to a CSV file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&perFrame, "steps-per-frame", 4, "simulation steps per rendered frame")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream simulation frames over websocket",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&frameRate, "fps", 30, "broadcast frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	for _, cmd := range []*cobra.Command{runCmd, liveCmd, serveCmd} {
		cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "scene preset")
		cmd.Flags().StringVar(&solverName, "solver", "", "solver (euler, midpoint, rk4)")
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "initial timestep")
		cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
		cmd.Flags().BoolVar(&adaptive, "adaptive", true, "adaptive step sizing")
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the configuration sources: preset, then config
// file, then explicitly set CLI flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("solver") {
		cfg.Solver = solverName
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := scene.Build(cfg)
	if err != nil {
		return err
	}

	var writer *telemetry.Writer
	if csvPath != "" {
		writer, err = telemetry.Create(csvPath)
		if err != nil {
			return err
		}
		defer writer.Close()
	}

	observed := metrics.Default()
	densityHistory := make([]float64, 0, cfg.Steps)

	slog.Info("starting run",
		"solver", cfg.Solver, "particles", len(sys.Particles()),
		"steps", cfg.Steps, "adaptive", cfg.Adaptive)
	start := time.Now()

	for i := 0; i < cfg.Steps; i++ {
		sys.Step(cfg.Adaptive)
		for _, m := range observed {
			m.Observe(sys)
		}

		snap := telemetry.Snapshot(sys, i)
		densityHistory = append(densityHistory, snap.MeanDensity)
		if writer != nil {
			if err := writer.Write(snap); err != nil {
				return err
			}
		}

		if !sys.State().IsValid() {
			return fmt.Errorf("invalid state (NaN/Inf) at step %d, t=%.4f", i, sys.Time())
		}
	}

	slog.Info("run complete", "elapsed", time.Since(start), "t", sys.Time(), "dt", sys.Dt())

	fmt.Println("\nmetrics:")
	for _, m := range observed {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}
	if len(densityHistory) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(densityHistory,
			asciigraph.Height(10),
			asciigraph.Caption("mean density")))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := scene.Build(cfg)
	if err != nil {
		return err
	}
	return tui.Run(sys, cfg.Adaptive, perFrame)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := scene.Build(cfg)
	if err != nil {
		return err
	}

	srv := stream.NewServer()
	mux := http.NewServeMux()
	mux.Handle("/ws", srv)

	httpServer := &http.Server{Addr: addr, Handler: mux}
	go func() {
		slog.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server failed", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return httpServer.Shutdown(context.Background())
		case <-ticker.C:
			sys.Step(cfg.Adaptive)
			srv.Broadcast(stream.FrameOf(sys))
		}
	}
}
