package core

import "fmt"

var (
	// ErrNilTimer is returned when a nil FateTimer is added to a cell or
	// produced by an Inherit call.
	ErrNilTimer = fmt.Errorf("nil fate timer")

	// ErrConsumedCell is returned when a cell whose timers have been moved to
	// daughters is advanced or asked to divide again. A cell is consumed by a
	// successful SpawnDaughters call and must be discarded afterwards.
	ErrConsumedCell = fmt.Errorf("cell already consumed by division")

	// ErrSharedTimer is returned when an Inherit implementation hands the
	// parent's own timer instance back instead of a fresh one. A timer
	// instance may be referenced by at most one live cell at any time.
	ErrSharedTimer = fmt.Errorf("inherit returned the parent timer instance")

	// ErrNilFactory is returned when a population is constructed without a
	// cell factory.
	ErrNilFactory = fmt.Errorf("nil cell factory")
)
