package core

// PopulationView is the read-only surface of a population handed to
// observers after each tick. Implementations guarantee the view reflects a
// fully applied tick: no partially mutated state is ever observable.
type PopulationView interface {
	// Time returns the current simulation time.
	Time() Time

	// Size returns the number of live cells.
	Size() int

	// Cells returns a snapshot copy of the live cells. Mutating the returned
	// slice is safe; mutating the cells themselves is a contract violation.
	Cells() []*Cell

	// LastStepStats returns the structural bookkeeping of the most recently
	// completed tick.
	LastStepStats() StepStats
}

// Observer is passive instrumentation attached to a population. It is
// invoked synchronously once per tick, after the apply phase, with the
// post-apply population view at the new time.
//
// Observers must treat the view as read-only; mutating cells or timers from
// an observer is a programming error the core does not guard against.
// Observers may accumulate their own external state (e.g. a count-over-time
// series) freely.
type Observer interface {
	OnStep(view PopulationView, t Time)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(view PopulationView, t Time)

// OnStep calls the wrapped function.
func (f ObserverFunc) OnStep(view PopulationView, t Time) { f(view, t) }
