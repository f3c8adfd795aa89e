package core

// Time is a point on the simulation clock. It is monotonically increasing
// over a run and advances only in whole ticks of the population's Dt.
type Time float64

// Duration is a span of simulation time. The population step size (Dt) is a
// Duration that stays constant for the whole run.
type Duration float64

// CellFactory builds a founder cell at population construction time. It is
// called once per founder with the common birth time (Time 0 for a fresh
// population). Factories typically attach timers and an optional payload:
//
//	factory := func(birth core.Time) (*core.Cell, error) {
//	    c := core.NewCell(birth)
//	    if err := c.AddTimer(clock.NewDeadlineTimer(core.ActionDeath, 3)); err != nil {
//	        return nil, err
//	    }
//	    return c, nil
//	}
//
// A factory error aborts population construction and is returned to the
// caller unmodified apart from wrapping context.
type CellFactory func(birth Time) (*Cell, error)

// PayloadInheritFunc derives a daughter's payload from the parent's payload
// at division time. It is called exactly twice per division, once per
// daughter, and must return an independently mutable value if the payload
// carries per-lineage state. When no hook is configured daughters share the
// parent's payload value as-is.
type PayloadInheritFunc func(parent any, t Time) any

// StepStats captures the structural bookkeeping of a single tick. It is
// exposed through PopulationView so observers can track deaths, divisions
// and births without re-deriving them from successive snapshots.
//
// The conservation identity holds for every tick:
//
//	newSize = oldSize - Deaths - Divisions + Births, with Births == 2*Divisions
type StepStats struct {
	// Step is the 1-based index of the tick these stats describe.
	Step uint64

	// Deaths is the number of cells removed this tick.
	Deaths int

	// Divisions is the number of parent cells replaced by daughters this tick.
	Divisions int

	// Births is the number of daughter cells inserted this tick.
	Births int
}
