package clock

import (
	"github.com/hupe1980/cellmesh/core"
)

// PulseTimer emits a single custom event with a fixed kind when simulation
// time crosses its deadline. It never requests death or division; its
// purpose is intra-cell signaling, e.g. triggering a Silenceable sibling.
type PulseTimer struct {
	kind    string
	payload any
	fireAt  core.Time
	fired   bool
}

// NewPulseTimer creates a pulse emitting a custom event of the given kind
// on the first tick where time crosses fireAt.
func NewPulseTimer(kind string, fireAt core.Time) *PulseTimer {
	return &PulseTimer{kind: kind, fireAt: fireAt}
}

// WithPayload attaches a payload to the emitted event and returns the timer
// for chaining during construction.
func (p *PulseTimer) WithPayload(payload any) *PulseTimer {
	p.payload = payload
	return p
}

// Step emits the pulse exactly once.
func (p *PulseTimer) Step(t core.Time, dt core.Duration) (*core.Event, error) {
	if p.fired {
		return nil, nil
	}

	end := t + core.Time(dt)
	if end < p.fireAt {
		return nil, nil
	}
	p.fired = true

	return core.NewCustomEvent(end, p.kind, p.payload), nil
}

// Inherit returns a distinct pulse with the same absolute deadline,
// carrying the parent's fired state so an emitted pulse stays spent in the
// daughters.
func (p *PulseTimer) Inherit(_ core.Time) (core.FateTimer, error) {
	return &PulseTimer{kind: p.kind, payload: p.payload, fireAt: p.fireAt, fired: p.fired}, nil
}
