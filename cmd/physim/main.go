package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/logging"
	"github.com/san-kum/physim/internal/tui"
	"github.com/san-kum/physim/internal/viz"
)

var (
	configFile string
	preset     string
	format     string
	outPath    string
	cols       int
	rows       int
	verbose    bool

	dt      float64
	gravity float64
	length  float64
	drag    float64

	// projectile
	speed  float64
	angle  float64
	height float64

	// pendulum
	theta      float64
	omega      float64
	duration   float64
	integrator string

	force bool

	logger *zap.Logger
)

// main runs the physim CLI and exits with status 1 when the executed command
// fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "physim",
		Short:        "projectile and damped pendulum simulations",
		SilenceUsage: true,
		RunE:         runInteractive,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&format, "format", config.DefaultFormat, "output format: ascii, csv, json, png, svg")
	pf.StringVar(&outPath, "out", "", "write output to this file instead of stdout")
	pf.IntVar(&cols, "cols", config.DefaultWidth, "terminal plot width in characters")
	pf.IntVar(&rows, "rows", config.DefaultPlotHeight, "terminal plot height in characters")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64Var(&dt, "dt", 0.01, "timestep (s)")
	pf.Float64Var(&gravity, "gravity", 9.8, "gravitational acceleration (m/s²)")

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "prompt for initial conditions and plot each run",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}

	projectileCmd := &cobra.Command{
		Use:   "projectile",
		Short: "plot the arc of a launched projectile (no air resistance)",
		Args:  cobra.NoArgs,
		RunE:  runProjectile,
	}
	projectileCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial velocity (m/s)")
	projectileCmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "launch angle (degrees above x-axis)")
	projectileCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "initial height (m)")

	pendulumCmd := &cobra.Command{
		Use:   "pendulum",
		Short: "plot theta against velocity for a pendulum with drag",
		Args:  cobra.NoArgs,
		RunE:  runPendulum,
	}
	addPendulumFlags(pendulumCmd)
	pendulumCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator: euler, rk4, verlet")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same pendulum",
		RunE:  compareIntegrators,
	}
	addPendulumFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(interactiveCmd, projectileCmd, pendulumCmd, compareCmd, presetsCmd, configCmd)
	return rootCmd
}

func addPendulumFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "initial angle (radians)")
	cmd.Flags().Float64Var(&omega, "omega", config.DefaultOmega, "initial angular velocity")
	cmd.Flags().Float64Var(&duration, "time", 60.0, "duration (s)")
	cmd.Flags().Float64Var(&length, "length", 2.0, "pendulum length (m)")
	cmd.Flags().Float64Var(&drag, "drag", 0.1, "drag coefficient")
}

// resolveConfig layers the preset, the config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(model, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg.Model = model

	flags := cmd.Flags()
	setFloat := func(name string, dst *float64, v float64) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst = v
		}
	}
	setFloat("dt", &cfg.Dt, dt)
	setFloat("gravity", &cfg.Physics.Gravity, gravity)
	setFloat("length", &cfg.Physics.Length, length)
	setFloat("drag", &cfg.Physics.Drag, drag)
	setFloat("speed", &cfg.Projectile.Speed, speed)
	setFloat("angle", &cfg.Projectile.Angle, angle)
	setFloat("height", &cfg.Projectile.Height, height)
	setFloat("theta", &cfg.Pendulum.Theta, theta)
	setFloat("omega", &cfg.Pendulum.Omega, omega)
	setFloat("time", &cfg.Pendulum.Duration, duration)

	if flags.Lookup("integrator") != nil && flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("format") {
		cfg.Render.Format = format
	}
	if flags.Changed("cols") {
		cfg.Render.Width = cols
	}
	if flags.Changed("rows") {
		cfg.Render.Height = rows
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("configuration resolved",
		zap.String("model", cfg.Model),
		zap.String("preset", preset),
		zap.String("config", configFile),
		zap.String("format", cfg.Render.Format),
	)
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "projectile")
	if err != nil {
		return err
	}
	term := viz.NewTerminal(cfg.Render.Width, cfg.Render.Height)
	return tui.Run(cfg, experiment.NewRunner(logger), term, logger)
}

func runProjectile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "projectile")
	if err != nil {
		return err
	}
	run, err := experiment.NewRunner(logger).RunProjectile(cfg)
	if err != nil {
		return err
	}
	return emit(cmd, cfg, run)
}

func runPendulum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "pendulum")
	if err != nil {
		return err
	}
	run, err := experiment.NewRunner(logger).RunPendulum(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return emit(cmd, cfg, run)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "pendulum")
	if err != nil {
		return err
	}

	results, err := experiment.NewRunner(logger).Compare(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators for pendulum (dt=%.4f, duration=%.1fs)\n\n", cfg.Dt, cfg.Pendulum.Duration)
	fmt.Fprintf(out, "%-12s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "final_theta", "final_omega", "energy_drift", "time_ms")
	fmt.Fprintln(out, strings.Repeat("-", 66))

	for _, row := range results {
		if row.Err != nil {
			fmt.Fprintf(out, "%-12s  error: %v\n", row.Integrator, row.Err)
			continue
		}
		fmt.Fprintf(out, "%-12s  %12.6f  %12.6f  %12.2e  %12.2f\n",
			row.Integrator, row.FinalTheta, row.FinalOmega, row.EnergyDrift, float64(row.Elapsed.Microseconds())/1000)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	models := experiment.NewRegistry().ListModels()
	if len(args) == 1 {
		models = args[:1]
	}

	out := cmd.OutOrStdout()
	for _, model := range models {
		presets := config.ListPresets(model)
		if len(presets) == 0 {
			fmt.Fprintf(out, "no presets for model: %s\n", model)
			continue
		}
		fmt.Fprintf(out, "presets for %s:\n", model)
		for _, p := range presets {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "physim.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
