package clock

import (
	"github.com/hupe1980/cellmesh/core"
)

// Silenceable wraps any fate timer and mutes it permanently when a sibling
// timer in the same cell emits a custom event of the matching kind. Once
// silenced, Step returns no events for the rest of the wrapped timer's life
// and for all of its descendants.
//
// Silenceable implements core.Reactor; adding it to a cell is all the
// registration needed for it to receive sibling signals.
type Silenceable struct {
	inner    core.FateTimer
	kind     string
	silenced bool
}

// Silence wraps a timer so that a sibling custom event of the given kind
// deactivates it.
func Silence(inner core.FateTimer, kind string) *Silenceable {
	return &Silenceable{inner: inner, kind: kind}
}

// Step delegates to the wrapped timer unless the wrapper has been silenced.
func (s *Silenceable) Step(t core.Time, dt core.Duration) (*core.Event, error) {
	if s.silenced {
		return nil, nil
	}
	return s.inner.Step(t, dt)
}

// React silences the wrapper on a matching custom event. Non-matching
// events are forwarded to the wrapped timer if it is itself a reactor.
func (s *Silenceable) React(ev *core.Event) {
	if ev.Action == core.ActionCustom && ev.Kind == s.kind {
		s.silenced = true
		return
	}
	if r, ok := s.inner.(core.Reactor); ok {
		r.React(ev)
	}
}

// Inherit wraps the daughter instance of the inner timer, carrying the
// silenced state into the lineage.
func (s *Silenceable) Inherit(t core.Time) (core.FateTimer, error) {
	child, err := s.inner.Inherit(t)
	if err != nil {
		return nil, err
	}
	return &Silenceable{inner: child, kind: s.kind, silenced: s.silenced}, nil
}

// Silenced reports whether the wrapper has been deactivated.
func (s *Silenceable) Silenced() bool { return s.silenced }

// Inner returns the wrapped timer.
func (s *Silenceable) Inner() core.FateTimer { return s.inner }
