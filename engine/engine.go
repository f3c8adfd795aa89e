package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/cellmesh/core"
	"github.com/hupe1980/cellmesh/logging"
)

// TiePolicy decides the fate of a cell whose timers jointly emit both a
// death and a division event in the same tick. The cell cannot do both, and
// the resolution must be deterministic and explicit, never a race.
type TiePolicy int

const (
	// TieDeathWins removes the cell and creates no daughters. This is the
	// default policy.
	TieDeathWins TiePolicy = iota

	// TieDivisionWins spawns the daughters and discards the death.
	TieDivisionWins
)

// String returns the policy name for logging.
func (p TiePolicy) String() string {
	switch p {
	case TieDeathWins:
		return "death_wins"
	case TieDivisionWins:
		return "division_wins"
	default:
		return "unknown"
	}
}

// Config defines tuning parameters for a population's stepping behavior.
//
// Example:
//
//	cfg := Config{
//	    Dt:      0.5,
//	    Workers: 4,
//	}
type Config struct {
	// Dt is the constant step size applied on every tick. Must be positive.
	Dt core.Duration

	// Workers bounds the number of goroutines advancing cells within a
	// single tick. 1 (the default) keeps the whole tick on the calling
	// goroutine. Values above 1 parallelize the Advance phase; the Apply
	// phase is always single-threaded.
	Workers int

	// TiePolicy resolves a cell emitting both death and division in one
	// tick. Defaults to TieDeathWins.
	TiePolicy TiePolicy
}

// DefaultConfig provides the baseline configuration: unit step size,
// sequential advancing, death-wins tie resolution.
var DefaultConfig = Config{
	Dt:      1,
	Workers: 1,
}

// Options configures a Population instance using the functional options
// pattern.
//
// Example:
//
//	pop, err := engine.New(100, factory,
//	    engine.WithConfig(cfg),
//	    engine.WithLogger(myLogger),
//	)
type Options struct {
	// Config contains operational parameters for the stepper.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Logger provides structured logging for debugging and monitoring.
	// Defaults to NoOp logger if nil to ensure no logging dependencies.
	Logger logging.Logger

	// Hooks receives lifecycle notifications around each tick phase.
	// Defaults to an empty manager.
	Hooks *HookManager
}

// WithConfig overrides the default stepping configuration.
func WithConfig(cfg Config) func(o *Options) {
	return func(o *Options) { o.Config = cfg }
}

// WithLogger sets the structured logger used by the population.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// WithHooks sets the lifecycle hook manager used by the population.
func WithHooks(h *HookManager) func(o *Options) {
	return func(o *Options) { o.Hooks = h }
}

// Population owns the collection of live cells and applies the per-tick
// stepping algorithm: advance every cell, apply the collected structural
// events, then notify observers.
//
// Invariants maintained across the public API:
//   - every cell in the collection is alive (deaths are applied immediately
//     at the end of the tick that produced them)
//   - the population size changes only between ticks, never mid-tick
//   - calling Step N times is exactly N ticks forward; ticks are never
//     skipped or merged
//
// A Population is driven by a single goroutine. Read accessors (Time, Size,
// Cells, LastStepStats) are safe to call concurrently with a running step;
// they always reflect the last fully applied tick.
type Population struct {
	config Config
	logger logging.Logger
	hooks  *HookManager

	mu        sync.RWMutex
	cells     []*core.Cell
	time      core.Time
	step      uint64
	lastStats core.StepStats
	observers []core.Observer
}

// Compile-time interface satisfaction check.
var _ core.PopulationView = (*Population)(nil)

// New builds a population of n founder cells at Time 0 via n calls to the
// supplied factory. Each founder receives the same birth time but is
// otherwise independent. A factory error aborts construction and is
// propagated with the founder index attached.
func New(n int, factory core.CellFactory, optFns ...func(o *Options)) (*Population, error) {
	if factory == nil {
		return nil, core.ErrNilFactory
	}
	if n < 0 {
		return nil, fmt.Errorf("founder count must be non-negative, got %d", n)
	}

	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
		Hooks:  NewHookManager(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Config.Dt <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %v", opts.Config.Dt)
	}
	if opts.Config.Workers < 1 {
		opts.Config.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Hooks == nil {
		opts.Hooks = NewHookManager()
	}

	cells := make([]*core.Cell, 0, n)
	for i := 0; i < n; i++ {
		c, err := factory(0)
		if err != nil {
			return nil, fmt.Errorf("cell factory (founder %d): %w", i, err)
		}
		if c == nil {
			return nil, fmt.Errorf("cell factory (founder %d) returned nil cell", i)
		}
		cells = append(cells, c)
	}

	return &Population{
		config: opts.Config,
		logger: opts.Logger,
		hooks:  opts.Hooks,
		cells:  cells,
	}, nil
}

// RegisterObserver attaches read-only instrumentation that is notified
// synchronously after every tick's apply phase, including ticks on an empty
// population. Registration order is the notification order.
func (p *Population) RegisterObserver(o core.Observer) {
	if o == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Time returns the current simulation time.
func (p *Population) Time() core.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.time
}

// Size returns the number of live cells.
func (p *Population) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.cells)
}

// Cells returns a snapshot copy of the live cells in stable iteration order.
func (p *Population) Cells() []*core.Cell {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*core.Cell, len(p.cells))
	copy(out, p.cells)
	return out
}

// LastStepStats returns the structural bookkeeping of the most recently
// completed tick. The zero value is returned before the first tick.
func (p *Population) LastStepStats() core.StepStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastStats
}

// StepCount returns the number of completed ticks.
func (p *Population) StepCount() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.step
}

// Dt returns the configured step size.
func (p *Population) Dt() core.Duration { return p.config.Dt }

// structural outcome of one cell for one tick, decided in the apply phase.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeDeath
	outcomeDivide
)

// Step performs exactly one tick: advance every currently-live cell, apply
// the collected structural events, advance the clock by Dt and notify hooks
// and observers. Cells created this tick are not advanced this tick.
//
// Any extension error aborts the tick before the live collection is mutated
// and is returned to the caller; the population remains in its pre-tick
// state. Stepping an empty population is not an error: the advance and
// apply phases are no-ops and observers are still notified with size 0.
func (p *Population) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	snapshot := make([]*core.Cell, len(p.cells))
	copy(snapshot, p.cells)
	tick := p.step + 1
	now := p.time
	p.mu.RUnlock()

	newTime := now + core.Time(p.config.Dt)

	if err := p.hooks.Execute(ctx, HookBeforeStep, &HookContext{Step: tick, Time: now, Size: len(snapshot)}); err != nil {
		return fmt.Errorf("before-step hook: %w", err)
	}

	// Advance phase: collect per-cell firings indexed by snapshot position
	// so the merge stays deterministic under parallel advancing.
	results, err := p.advance(ctx, snapshot, now)
	if err != nil {
		p.fail(ctx, tick, now, err)
		return err
	}

	if err := p.hooks.Execute(ctx, HookAfterAdvance, &HookContext{Step: tick, Time: now, Size: len(snapshot)}); err != nil {
		return fmt.Errorf("after-advance hook: %w", err)
	}

	decisions := p.decide(snapshot, results)

	// Apply phase: single-threaded structural mutation. Deaths drop the
	// cell; divisions replace the parent with two daughters born at the new
	// time. Insertion order of survivors and daughters follows the snapshot.
	next := make([]*core.Cell, 0, len(snapshot))
	stats := core.StepStats{Step: tick}

	for i, c := range snapshot {
		switch decisions[i] {
		case outcomeDeath:
			stats.Deaths++
		case outcomeDivide:
			a, b, err := c.SpawnDaughters(newTime)
			if err != nil {
				p.fail(ctx, tick, now, err)
				return err
			}
			next = append(next, a, b)
			stats.Divisions++
			stats.Births += 2
			p.logger.Debug("cell divided cell_id=%s generation=%d time=%v", c.ID(), c.Generation(), newTime)
		default:
			next = append(next, c)
		}
	}

	p.mu.Lock()
	p.cells = next
	p.time = newTime
	p.step = tick
	p.lastStats = stats
	observers := make([]core.Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()

	if err := p.hooks.Execute(ctx, HookAfterApply, &HookContext{Step: tick, Time: newTime, Size: len(next), Stats: stats}); err != nil {
		return fmt.Errorf("after-apply hook: %w", err)
	}

	p.logger.Debug("tick completed step=%d time=%v size=%d deaths=%d divisions=%d",
		tick, newTime, len(next), stats.Deaths, stats.Divisions)

	// Observation phase: synchronous, post-apply, read-only.
	for _, o := range observers {
		o.OnStep(p, newTime)
	}

	return nil
}

// Run drives the population forward by the given number of ticks, honoring
// context cancellation between ticks. The first tick error aborts the run.
func (p *Population) Run(ctx context.Context, steps int) error {
	if steps < 0 {
		return fmt.Errorf("step count must be non-negative, got %d", steps)
	}

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Step(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", p.StepCount()+1, err)
		}
	}

	return nil
}

// advance runs every snapshot cell's timers once for the tick starting at
// now. With Workers > 1 the cells are fanned out across a bounded worker
// pool; results and errors land in slices indexed by snapshot position so
// the first error (in snapshot order) is reported regardless of scheduling.
func (p *Population) advance(ctx context.Context, snapshot []*core.Cell, now core.Time) ([][]core.Firing, error) {
	results := make([][]core.Firing, len(snapshot))

	workers := p.config.Workers
	if workers <= 1 || len(snapshot) < 2 {
		for i, c := range snapshot {
			firings, err := c.Advance(now, p.config.Dt)
			if err != nil {
				return nil, err
			}
			results[i] = firings
		}
		return results, nil
	}

	if workers > len(snapshot) {
		workers = len(snapshot)
	}

	errs := make([]error, len(snapshot))
	indexCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				results[i], errs[i] = snapshot[i].Advance(now, p.config.Dt)
			}
		}()
	}

	for i := range snapshot {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			// Stop feeding work; drain what is already in flight.
			close(indexCh)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(indexCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// decide resolves each cell's structural outcome from its firings, applying
// the tie policy when a cell requested both death and division.
func (p *Population) decide(snapshot []*core.Cell, results [][]core.Firing) []outcome {
	decisions := make([]outcome, len(snapshot))

	for i := range snapshot {
		var death, divide bool
		for _, f := range results[i] {
			switch f.Event.Action {
			case core.ActionDeath:
				death = true
			case core.ActionDivide:
				divide = true
			}
		}

		switch {
		case death && divide:
			if p.config.TiePolicy == TieDivisionWins {
				decisions[i] = outcomeDivide
			} else {
				decisions[i] = outcomeDeath
			}
			p.logger.Debug("cell %s emitted death and division in one tick, policy %s applied",
				snapshot[i].ID(), p.config.TiePolicy)
		case death:
			decisions[i] = outcomeDeath
		case divide:
			decisions[i] = outcomeDivide
		}
	}

	return decisions
}

// fail routes a tick-aborting error through the on-error hooks and logger.
// Hook errors during failure handling are logged, not propagated, so the
// original error stays the one the caller sees.
func (p *Population) fail(ctx context.Context, tick uint64, now core.Time, err error) {
	p.logger.Error("tick aborted step=%d time=%v error=%v", tick, now, err)
	if hookErr := p.hooks.Execute(ctx, HookOnError, &HookContext{Step: tick, Time: now, Err: err}); hookErr != nil {
		p.logger.Warn("on-error hook failed: %v", hookErr)
	}
}
