// Package cellmesh provides a high-level façade over the population engine
// and its extension points (fate timers, observers, hooks & logging),
// enabling rapid construction of agent-based cell population simulations.
// Most applications interact with this package by:
//  1. Creating a Simulation via New() with a founder count and cell factory
//  2. Registering one or more observers (in-memory counts, metrics, SQLite)
//  3. Driving the run with Step (one tick) or Run (N ticks)
//
// The façade delegates stepping to engine.Population while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production runs typically supply a structured logger and
// tuned engine configuration.
package cellmesh

import (
	"context"

	"github.com/hupe1980/cellmesh/core"
	"github.com/hupe1980/cellmesh/engine"
	"github.com/hupe1980/cellmesh/logging"
)

// Options configures the Simulation instance.
type Options struct {
	// EngineConfig tunes stepping (step size, intra-tick workers, tie policy).
	EngineConfig engine.Config

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Hooks receives tick lifecycle notifications (defaults to empty manager)
	Hooks *engine.HookManager
}

// Simulation is the high-level façade aggregating the underlying population
// engine.
type Simulation struct {
	opts Options
	pop  *engine.Population
}

// New creates a Simulation with n founder cells built by the supplied
// factory at Time 0, with optional overrides.
func New(n int, factory core.CellFactory, optFns ...func(o *Options)) (*Simulation, error) {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Logger:       logging.NoOpLogger{},
		Hooks:        engine.NewHookManager(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	pop, err := engine.New(n, factory,
		engine.WithConfig(opts.EngineConfig),
		engine.WithLogger(opts.Logger),
		engine.WithHooks(opts.Hooks),
	)
	if err != nil {
		return nil, err
	}

	return &Simulation{opts: opts, pop: pop}, nil
}

// RegisterObserver attaches read-only per-tick instrumentation.
func (s *Simulation) RegisterObserver(o core.Observer) { s.pop.RegisterObserver(o) }

// Step performs exactly one tick.
func (s *Simulation) Step(ctx context.Context) error { return s.pop.Step(ctx) }

// Run drives the simulation forward by the given number of ticks.
func (s *Simulation) Run(ctx context.Context, steps int) error { return s.pop.Run(ctx, steps) }

// Population exposes the underlying engine population for advanced use.
func (s *Simulation) Population() *engine.Population { return s.pop }

// Time returns the current simulation time.
func (s *Simulation) Time() core.Time { return s.pop.Time() }

// Size returns the number of live cells.
func (s *Simulation) Size() int { return s.pop.Size() }
