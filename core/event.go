package core

import "github.com/google/uuid"

// Action classifies the population-level effect requested by an event.
type Action int

const (
	// ActionNone marks an event without any effect. Timers normally return a
	// nil event instead; the variant exists so a zero-valued Event is inert.
	ActionNone Action = iota

	// ActionDeath removes the owning cell from the population at the end of
	// the current tick.
	ActionDeath

	// ActionDivide replaces the owning cell with two daughters at the end of
	// the current tick.
	ActionDivide

	// ActionCustom carries an arbitrary intra-cell signal. Custom events are
	// consumed by sibling timers via the cell's notify mechanism and never
	// change the population structure.
	ActionCustom
)

// String returns the lower-case name of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionDeath:
		return "death"
	case ActionDivide:
		return "divide"
	case ActionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Event is the unit of communication between fate timers, their owning cell
// and the population stepper. After emission it should be treated as
// immutable. It captures:
//
//   - Correlation (ID, plus the CellID stamped by the cell during Advance)
//   - The requested effect (Action, plus Kind for custom signals)
//   - An optional modeller-defined payload
//   - The simulation time at which the event fired
//
// Structural events (death, division) are collected by the stepper and
// applied only after every cell has been advanced, so a timer never observes
// a partially mutated population. Custom events are resolved inside the
// owning cell before Advance returns.
type Event struct {
	ID      string
	CellID  string
	Action  Action
	Kind    string
	Payload any
	Time    Time
}

// NewDeathEvent creates an event requesting removal of the owning cell.
func NewDeathEvent(t Time) *Event {
	return &Event{ID: NewID(), Action: ActionDeath, Time: t}
}

// NewDivisionEvent creates an event requesting replacement of the owning
// cell by two daughters.
func NewDivisionEvent(t Time) *Event {
	return &Event{ID: NewID(), Action: ActionDivide, Time: t}
}

// NewCustomEvent creates an intra-cell signal with a modeller-defined kind
// and payload. Kind is the routing key sibling timers match against.
func NewCustomEvent(t Time, kind string, payload any) *Event {
	return &Event{ID: NewID(), Action: ActionCustom, Kind: kind, Payload: payload, Time: t}
}

// NewID generates a new unique identifier for cells and events.
//
// This function creates a UUID-based unique identifier that can be used
// for lineage tracking and event correlation throughout the framework.
func NewID() string { return uuid.NewString() }

// IsStructural reports whether the event changes the population structure
// (death or division) as opposed to being an intra-cell signal.
func (e *Event) IsStructural() bool {
	return e.Action == ActionDeath || e.Action == ActionDivide
}
