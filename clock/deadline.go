package clock

import (
	"github.com/hupe1980/cellmesh/core"
)

// DeadlineOptions configures construction of a DeadlineTimer.
type DeadlineOptions struct {
	// Kind is the routing key attached to a custom event. Only meaningful
	// when the timer's action is core.ActionCustom.
	Kind string

	// Payload is attached to a custom event. Only meaningful when the
	// timer's action is core.ActionCustom.
	Payload any
}

// DeadlineTimer fires a single event of the configured action on the first
// tick whose end time reaches a fixed deadline. It is the simplest possible
// fate timer and the workhorse of deterministic test scenarios.
type DeadlineTimer struct {
	action  core.Action
	fireAt  core.Time
	kind    string
	payload any
	fired   bool
}

// NewDeadlineTimer creates a timer firing the given action on the first
// tick where time crosses fireAt.
func NewDeadlineTimer(action core.Action, fireAt core.Time, optFns ...func(o *DeadlineOptions)) *DeadlineTimer {
	opts := DeadlineOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &DeadlineTimer{action: action, fireAt: fireAt, kind: opts.Kind, payload: opts.Payload}
}

// Step fires the configured event exactly once, on the first tick whose end
// time t+dt reaches the deadline.
func (d *DeadlineTimer) Step(t core.Time, dt core.Duration) (*core.Event, error) {
	if d.fired {
		return nil, nil
	}

	end := t + core.Time(dt)
	if end < d.fireAt {
		return nil, nil
	}
	d.fired = true

	switch d.action {
	case core.ActionDeath:
		return core.NewDeathEvent(end), nil
	case core.ActionDivide:
		return core.NewDivisionEvent(end), nil
	case core.ActionCustom:
		return core.NewCustomEvent(end, d.kind, d.payload), nil
	default:
		return nil, nil
	}
}

// Inherit returns a distinct timer with the same absolute deadline. The
// parent's fired state is carried over: a deadline that already went off
// stays spent in the daughters instead of re-firing every generation.
func (d *DeadlineTimer) Inherit(_ core.Time) (core.FateTimer, error) {
	return &DeadlineTimer{action: d.action, fireAt: d.fireAt, kind: d.kind, payload: d.payload, fired: d.fired}, nil
}

// FireAt returns the timer's absolute deadline.
func (d *DeadlineTimer) FireAt() core.Time { return d.fireAt }

// Fired reports whether the timer has already emitted its event.
func (d *DeadlineTimer) Fired() bool { return d.fired }
