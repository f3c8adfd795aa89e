package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cellmesh"
	"github.com/hupe1980/cellmesh/clock"
	"github.com/hupe1980/cellmesh/config"
	"github.com/hupe1980/cellmesh/core"
	"github.com/hupe1980/cellmesh/engine"
	"github.com/hupe1980/cellmesh/logging"
	"github.com/hupe1980/cellmesh/observe"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellmesh",
		Short: "Agent-based cell population simulation engine",
		Long: `cellmesh runs stochastic agent-based cell population simulations.

A YAML run configuration declares the founder population, the fate timers
attached to every cell (deadline, log-normal and pulse clocks, optionally
silenceable) and the output sinks. The engine steps the population through
discrete ticks where each cell's fate emerges from competition between its
timers.`,
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cellmesh version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a configured simulation run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSimulation(ctx, cmd, cfg, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML run configuration (required)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runSimulation(ctx context.Context, cmd *cobra.Command, cfg *config.RunConfig, verbose bool) error {
	level := logging.LogLevelInfo
	if verbose {
		level = logging.LogLevelDebug
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    "text",
		Output:    cmd.ErrOrStderr(),
		Component: "cli",
	})

	rng := rand.New(rand.NewSource(cfg.Seed))

	sim, err := cellmesh.New(cfg.Founders, buildFactory(cfg, rng), func(o *cellmesh.Options) {
		o.EngineConfig = engine.Config{
			Dt:        core.Duration(cfg.Dt),
			Workers:   cfg.Workers,
			TiePolicy: tiePolicy(cfg.TiePolicy),
		}
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	counts := observe.NewCountObserver(observe.WithGenerations())
	sim.RegisterObserver(counts)

	var recorder *observe.Recorder
	if cfg.Output.SQLitePath != "" {
		recorder, err = observe.NewRecorder(cfg.Output.SQLitePath)
		if err != nil {
			return err
		}
		defer recorder.Close()
		sim.RegisterObserver(recorder)
	}

	if err := sim.Run(ctx, cfg.Steps); err != nil {
		return err
	}
	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return err
		}
	}

	printSummary(cmd, cfg, sim, counts)
	return nil
}

func printSummary(cmd *cobra.Command, cfg *config.RunConfig, sim *cellmesh.Simulation, counts *observe.CountObserver) {
	out := cmd.OutOrStdout()

	var deaths, divisions, maxGen int
	for _, s := range counts.Samples() {
		deaths += s.Deaths
		divisions += s.Divisions
		for g := range s.Generations {
			if g > maxGen {
				maxGen = g
			}
		}
	}

	fmt.Fprintf(out, "steps:          %d\n", cfg.Steps)
	fmt.Fprintf(out, "final time:     %v\n", sim.Time())
	fmt.Fprintf(out, "final size:     %d (founders: %d)\n", sim.Size(), cfg.Founders)
	fmt.Fprintf(out, "deaths:         %d\n", deaths)
	fmt.Fprintf(out, "divisions:      %d\n", divisions)
	fmt.Fprintf(out, "max generation: %d\n", maxGen)
}

func tiePolicy(s string) engine.TiePolicy {
	if s == config.TieDivisionWins {
		return engine.TieDivisionWins
	}
	return engine.TieDeathWins
}

// buildFactory maps the configured timer specs onto concrete clock
// implementations. Every founder gets its own timer instances; stochastic
// timers share the run's seeded random source.
func buildFactory(cfg *config.RunConfig, rng *rand.Rand) core.CellFactory {
	return func(birth core.Time) (*core.Cell, error) {
		c := core.NewCell(birth)

		for i, spec := range cfg.Timers {
			tm, err := buildTimer(spec, rng, birth)
			if err != nil {
				return nil, fmt.Errorf("timer %d: %w", i, err)
			}
			if spec.SilencedBy != "" {
				tm = clock.Silence(tm, spec.SilencedBy)
			}
			if err := c.AddTimer(tm); err != nil {
				return nil, err
			}
		}

		return c, nil
	}
}

func buildTimer(spec config.TimerSpec, rng *rand.Rand, now core.Time) (core.FateTimer, error) {
	switch spec.Type {
	case config.TimerDeadline:
		action, err := parseAction(spec.Action)
		if err != nil {
			return nil, err
		}
		return clock.NewDeadlineTimer(action, core.Time(spec.FireAt), func(o *clock.DeadlineOptions) {
			o.Kind = spec.Kind
		}), nil

	case config.TimerLogNormal:
		action, err := parseAction(spec.Action)
		if err != nil {
			return nil, err
		}
		return clock.NewLogNormalTimer(action, spec.Mu, spec.Sigma, rng, now), nil

	case config.TimerPulse:
		return clock.NewPulseTimer(spec.Kind, core.Time(spec.FireAt)), nil

	default:
		return nil, fmt.Errorf("unknown timer type %q", spec.Type)
	}
}

func parseAction(s string) (core.Action, error) {
	switch s {
	case config.ActionDeath:
		return core.ActionDeath, nil
	case config.ActionDivide:
		return core.ActionDivide, nil
	case config.ActionCustom:
		return core.ActionCustom, nil
	default:
		return core.ActionNone, fmt.Errorf("unknown action %q", s)
	}
}
