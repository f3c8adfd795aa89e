package testutil

import (
	"github.com/hupe1980/cellmesh/core"
)

type scripted struct {
	action core.Action
	kind   string
	err    error
}

// ScriptTimer fires scripted events on fixed 1-based tick numbers, counted
// from the timer's creation. Example:
//
//	tm := testutil.NewScriptTimer().PulseAt(1, "mute").DeathAt(3)
//
// The timer also implements core.Reactor and records every notification it
// receives, and counts Step and Inherit calls so contract tests can assert
// call-once semantics.
type ScriptTimer struct {
	script map[int]scripted

	tick         int
	inheritCount int
	reacted      []*core.Event
}

// NewScriptTimer creates an empty script; chain *At methods to populate it.
func NewScriptTimer() *ScriptTimer {
	return &ScriptTimer{script: map[int]scripted{}}
}

// DeathAt schedules a death event for the given tick (chainable).
func (s *ScriptTimer) DeathAt(tick int) *ScriptTimer {
	s.script[tick] = scripted{action: core.ActionDeath}
	return s
}

// DivideAt schedules a division event for the given tick (chainable).
func (s *ScriptTimer) DivideAt(tick int) *ScriptTimer {
	s.script[tick] = scripted{action: core.ActionDivide}
	return s
}

// PulseAt schedules a custom event with the given kind for the given tick
// (chainable).
func (s *ScriptTimer) PulseAt(tick int, kind string) *ScriptTimer {
	s.script[tick] = scripted{action: core.ActionCustom, kind: kind}
	return s
}

// FailAt schedules a Step error for the given tick (chainable).
func (s *ScriptTimer) FailAt(tick int, err error) *ScriptTimer {
	s.script[tick] = scripted{err: err}
	return s
}

// Step returns the scripted event for the current tick, if any.
func (s *ScriptTimer) Step(t core.Time, dt core.Duration) (*core.Event, error) {
	s.tick++

	entry, ok := s.script[s.tick]
	if !ok {
		return nil, nil
	}
	if entry.err != nil {
		return nil, entry.err
	}

	end := t + core.Time(dt)
	switch entry.action {
	case core.ActionDeath:
		return core.NewDeathEvent(end), nil
	case core.ActionDivide:
		return core.NewDivisionEvent(end), nil
	case core.ActionCustom:
		return core.NewCustomEvent(end, entry.kind, nil), nil
	default:
		return nil, nil
	}
}

// Inherit returns a fresh timer with the same script, restarted at tick 0,
// and counts the call on the parent.
func (s *ScriptTimer) Inherit(_ core.Time) (core.FateTimer, error) {
	s.inheritCount++

	child := NewScriptTimer()
	for k, v := range s.script {
		child.script[k] = v
	}
	return child, nil
}

// React records the notification.
func (s *ScriptTimer) React(ev *core.Event) {
	s.reacted = append(s.reacted, ev)
}

// Steps returns the number of Step calls received.
func (s *ScriptTimer) Steps() int { return s.tick }

// InheritCount returns the number of Inherit calls received.
func (s *ScriptTimer) InheritCount() int { return s.inheritCount }

// Reacted returns the notifications received, in delivery order.
func (s *ScriptTimer) Reacted() []*core.Event { return s.reacted }

// SharingTimer deliberately violates the exclusivity contract by returning
// itself from Inherit. Used to test the engine's defensive checks.
type SharingTimer struct{}

// Step never fires.
func (s *SharingTimer) Step(core.Time, core.Duration) (*core.Event, error) { return nil, nil }

// Inherit returns the receiver, which is forbidden.
func (s *SharingTimer) Inherit(core.Time) (core.FateTimer, error) { return s, nil }
