package core

import (
	"fmt"
	"reflect"
)

// Firing pairs a timer with the event it produced during one Advance call.
// The slice of firings returned by Advance preserves timer insertion order.
type Firing struct {
	Timer FateTimer
	Event *Event
}

// CellOptions configures construction of a Cell.
type CellOptions struct {
	// Payload is an opaque modeller-defined value attached to the cell.
	Payload any

	// InheritPayload derives daughter payloads at division time. When nil,
	// daughters receive the parent's payload value unchanged. The hook is
	// propagated to daughters.
	InheritPayload PayloadInheritFunc
}

// Cell is an independently evolving agent in the population. It owns an
// ordered collection of fate timers, its creation time and generation
// number, plus an opaque payload of modeller-chosen type.
//
// A cell does not mutate the population itself: Advance only runs timers and
// resolves intra-cell signals, while structural effects (death, division)
// are applied by the stepper after every live cell has been advanced.
//
// Cells are not safe for concurrent use; the stepper guarantees each cell is
// touched by exactly one goroutine per tick.
type Cell struct {
	id             string
	birth          Time
	generation     int
	payload        any
	inheritPayload PayloadInheritFunc
	timers         []FateTimer
	consumed       bool
}

// NewCell creates a founder-style cell (generation 0) born at the given
// time. Daughters are created through SpawnDaughters, never directly.
func NewCell(birth Time, optFns ...func(o *CellOptions)) *Cell {
	opts := CellOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Cell{
		id:             NewID(),
		birth:          birth,
		payload:        opts.Payload,
		inheritPayload: opts.InheritPayload,
	}
}

// ID returns the cell's unique identifier.
func (c *Cell) ID() string { return c.id }

// Birth returns the simulation time the cell was created at.
func (c *Cell) Birth() Time { return c.birth }

// Generation returns the cell's generation number: 0 for founders, the
// parent's generation plus one for daughters.
func (c *Cell) Generation() int { return c.generation }

// Payload returns the modeller-defined payload attached to the cell.
func (c *Cell) Payload() any { return c.payload }

// TimerCount returns the number of timers currently owned by the cell.
func (c *Cell) TimerCount() int { return len(c.timers) }

// Timers returns a copy of the cell's timer slice in insertion order. The
// returned slice may be modified freely; the timer instances themselves
// remain owned by the cell.
func (c *Cell) Timers() []FateTimer {
	out := make([]FateTimer, len(c.timers))
	copy(out, c.timers)
	return out
}

// AddTimer appends a fate timer to the cell. Timers are stepped and notified
// in insertion order, so registration order is part of a model's identity
// and must be stable across runs for reproducibility.
func (c *Cell) AddTimer(t FateTimer) error {
	if t == nil {
		return ErrNilTimer
	}
	if c.consumed {
		return fmt.Errorf("add timer to cell %s (gen %d): %w", c.id, c.generation, ErrConsumedCell)
	}
	c.timers = append(c.timers, t)
	return nil
}

// Advance runs every timer's Step exactly once for the tick starting at time
// t, returning the ordered (timer, event) pairs for every timer that fired.
//
// Custom events are routed to sibling reactors via Notify before the next
// timer is stepped, so a signal emitted early in the order can mute a timer
// later in the order within the same tick. Structural events are returned to
// the caller untouched; applying them is the stepper's job.
//
// A timer error aborts the advance immediately and is wrapped with enough
// context (cell id, generation, timer type) to diagnose the extension.
func (c *Cell) Advance(t Time, dt Duration) ([]Firing, error) {
	if c.consumed {
		return nil, fmt.Errorf("advance cell %s (gen %d): %w", c.id, c.generation, ErrConsumedCell)
	}

	var firings []Firing

	for _, tm := range c.timers {
		ev, err := tm.Step(t, dt)
		if err != nil {
			return nil, fmt.Errorf("timer %T on cell %s (gen %d): %w", tm, c.id, c.generation, err)
		}
		if ev == nil {
			continue
		}

		ev.CellID = c.id

		if ev.Action == ActionCustom {
			c.Notify(tm, ev)
		}

		firings = append(firings, Firing{Timer: tm, Event: ev})
	}

	return firings, nil
}

// Notify delivers an event to every timer in the cell other than its source
// that has registered interest by implementing Reactor. Delivery follows the
// timers' insertion order.
func (c *Cell) Notify(source FateTimer, ev *Event) {
	for _, tm := range c.timers {
		if sameInstance(tm, source) {
			continue
		}
		if r, ok := tm.(Reactor); ok {
			r.React(ev)
		}
	}
}

// SpawnDaughters produces the two daughter cells replacing this cell at
// division time t. Each daughter receives:
//
//   - birth time t and generation = parent generation + 1
//   - a payload derived via the configured PayloadInheritFunc (or the
//     parent's payload value when no hook is set)
//   - one fresh timer per parent timer, obtained by calling Inherit once per
//     daughter on the same parent instance
//
// After a successful spawn the parent's timer collection is consumed: the
// cell holds no timers anymore and any further Advance, AddTimer or
// SpawnDaughters call fails with ErrConsumedCell. This makes accidental
// timer sharing between the parent and a daughter a construction-time error
// instead of a silent aliasing bug.
func (c *Cell) SpawnDaughters(t Time) (*Cell, *Cell, error) {
	if c.consumed {
		return nil, nil, fmt.Errorf("divide cell %s (gen %d): %w", c.id, c.generation, ErrConsumedCell)
	}

	a := c.newDaughter(t)
	b := c.newDaughter(t)

	for _, tm := range c.timers {
		ta, err := inheritTimer(c, tm, t)
		if err != nil {
			return nil, nil, err
		}
		tb, err := inheritTimer(c, tm, t)
		if err != nil {
			return nil, nil, err
		}
		a.timers = append(a.timers, ta)
		b.timers = append(b.timers, tb)
	}

	// Move semantics: the parent no longer owns any timer.
	c.timers = nil
	c.consumed = true

	return a, b, nil
}

func (c *Cell) newDaughter(t Time) *Cell {
	payload := c.payload
	if c.inheritPayload != nil {
		payload = c.inheritPayload(c.payload, t)
	}

	return &Cell{
		id:             NewID(),
		birth:          t,
		generation:     c.generation + 1,
		payload:        payload,
		inheritPayload: c.inheritPayload,
	}
}

// inheritTimer calls Inherit on a parent timer and defends the exclusivity
// invariant: the returned instance must be non-nil and must not alias the
// parent instance.
func inheritTimer(c *Cell, parent FateTimer, t Time) (FateTimer, error) {
	child, err := parent.Inherit(t)
	if err != nil {
		return nil, fmt.Errorf("inherit timer %T on cell %s (gen %d): %w", parent, c.id, c.generation, err)
	}
	if child == nil {
		return nil, fmt.Errorf("inherit timer %T on cell %s (gen %d): %w", parent, c.id, c.generation, ErrNilTimer)
	}
	if sameInstance(parent, child) {
		return nil, fmt.Errorf("inherit timer %T on cell %s (gen %d): %w", parent, c.id, c.generation, ErrSharedTimer)
	}
	return child, nil
}

// sameInstance reports whether two timers are the same pointer. Non-pointer
// timer implementations are copied by interface conversion and can never
// alias, so they are always considered distinct.
func sameInstance(a, b FateTimer) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Pointer || vb.Kind() != reflect.Pointer {
		return false
	}
	return va.Pointer() == vb.Pointer()
}
