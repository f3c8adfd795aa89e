package core

// FateTimer is the extension contract for a per-cell stochastic sub-process.
//
// Timers are the primary extension point in CellMesh. They receive inputs
// through Step once per tick, and communicate their fate decision (or an
// intra-cell signal) by returning an event. The core never inspects timer
// internals; it only transports timer instances and calls these two
// operations.
//
// Implementations must:
//   - Keep Step a pure function of their own state plus time/dt (no direct
//     population access), so the stepper's ordering stays deterministic
//   - Return at most one event per Step call
//   - Return a distinct, independently mutable instance from every Inherit
//     call; reusing the parent instance across daughters is forbidden (a
//     timer instance may be referenced by at most one live cell at a time)
type FateTimer interface {
	// Step advances the timer's internal state by one tick of size dt
	// starting at time t. A nil event means nothing fired this tick.
	// An error is a contract violation and aborts the whole tick.
	Step(t Time, dt Duration) (*Event, error)

	// Inherit produces a daughter's version of this timer at division time t.
	// It is called exactly twice per division, once per daughter, on the same
	// parent instance.
	Inherit(t Time) (FateTimer, error)
}

// Reactor is the optional interface a FateTimer implements to receive custom
// events emitted by sibling timers in the same cell. Implementing Reactor is
// how a timer registers interest; delivery happens in the timers' insertion
// order, before the next tick, so a reaction (e.g. silencing) takes effect
// ahead of the silenced timer's next Step.
//
// React must not emit events or touch other timers; it may only mutate the
// receiver's own state.
type Reactor interface {
	React(ev *Event)
}
