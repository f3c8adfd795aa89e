package core

import (
	"errors"
	"testing"
)

// scriptTimer is a minimal in-package timer: it fires one scripted event on
// a fixed 1-based tick, counts inherits and records notifications.
type scriptTimer struct {
	fireTick int
	action   Action
	kind     string
	stepErr  error

	tick     int
	inherits int
	reacted  []*Event
}

func (s *scriptTimer) Step(t Time, dt Duration) (*Event, error) {
	s.tick++
	if s.stepErr != nil && s.tick == s.fireTick {
		return nil, s.stepErr
	}
	if s.tick != s.fireTick {
		return nil, nil
	}

	end := t + Time(dt)
	switch s.action {
	case ActionDeath:
		return NewDeathEvent(end), nil
	case ActionDivide:
		return NewDivisionEvent(end), nil
	case ActionCustom:
		return NewCustomEvent(end, s.kind, nil), nil
	default:
		return nil, nil
	}
}

func (s *scriptTimer) Inherit(Time) (FateTimer, error) {
	s.inherits++
	return &scriptTimer{fireTick: s.fireTick, action: s.action, kind: s.kind}, nil
}

func (s *scriptTimer) React(ev *Event) { s.reacted = append(s.reacted, ev) }

// sharingTimer violates the exclusivity contract by returning itself.
type sharingTimer struct{}

func (s *sharingTimer) Step(Time, Duration) (*Event, error) { return nil, nil }
func (s *sharingTimer) Inherit(Time) (FateTimer, error) { return s, nil }

func TestNewCell_Defaults(t *testing.T) {
	c := NewCell(0)
	if c.ID() == "" || c.Generation() != 0 || c.Birth() != 0 || c.TimerCount() != 0 {
		t.Fatalf("NewCell did not initialize fields correctly: %+v", c)
	}

	p := NewCell(2, func(o *CellOptions) { o.Payload = "marker" })
	if p.Birth() != 2 || p.Payload().(string) != "marker" {
		t.Fatalf("cell options not applied: birth=%v payload=%v", p.Birth(), p.Payload())
	}
}

func TestCell_AddTimer(t *testing.T) {
	c := NewCell(0)

	if err := c.AddTimer(nil); !errors.Is(err, ErrNilTimer) {
		t.Fatalf("expected ErrNilTimer, got %v", err)
	}

	first := &scriptTimer{}
	second := &scriptTimer{}
	if err := c.AddTimer(first); err != nil {
		t.Fatal(err)
	}
	if err := c.AddTimer(second); err != nil {
		t.Fatal(err)
	}

	timers := c.Timers()
	if len(timers) != 2 || timers[0] != FateTimer(first) || timers[1] != FateTimer(second) {
		t.Fatalf("timer order not preserved: %+v", timers)
	}
}

func TestCell_Advance_CollectsFiringsInOrder(t *testing.T) {
	c := NewCell(0)
	a := &scriptTimer{fireTick: 1, action: ActionDeath}
	b := &scriptTimer{fireTick: 1, action: ActionDivide}
	quiet := &scriptTimer{fireTick: 5, action: ActionDeath}
	for _, tm := range []FateTimer{a, b, quiet} {
		if err := c.AddTimer(tm); err != nil {
			t.Fatal(err)
		}
	}

	firings, err := c.Advance(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(firings) != 2 {
		t.Fatalf("expected 2 firings, got %d", len(firings))
	}
	if firings[0].Event.Action != ActionDeath || firings[1].Event.Action != ActionDivide {
		t.Fatalf("firings out of insertion order: %+v", firings)
	}
	for _, f := range firings {
		if f.Event.CellID != c.ID() {
			t.Errorf("event not stamped with cell id: %+v", f.Event)
		}
		if f.Event.Time != 1 {
			t.Errorf("event time = %v, want 1", f.Event.Time)
		}
	}
}

func TestCell_Advance_RoutesCustomEventsToSiblings(t *testing.T) {
	c := NewCell(0)
	emitter := &scriptTimer{fireTick: 1, action: ActionCustom, kind: "signal"}
	listener := &scriptTimer{fireTick: 9}
	if err := c.AddTimer(emitter); err != nil {
		t.Fatal(err)
	}
	if err := c.AddTimer(listener); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Advance(0, 1); err != nil {
		t.Fatal(err)
	}

	if len(listener.reacted) != 1 || listener.reacted[0].Kind != "signal" {
		t.Fatalf("sibling did not receive custom event: %+v", listener.reacted)
	}
	if len(emitter.reacted) != 0 {
		t.Fatalf("source received its own event: %+v", emitter.reacted)
	}
}

func TestCell_Advance_WrapsTimerErrors(t *testing.T) {
	c := NewCell(0)
	boom := errors.New("boom")
	if err := c.AddTimer(&scriptTimer{fireTick: 1, stepErr: boom}); err != nil {
		t.Fatal(err)
	}

	_, err := c.Advance(0, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped timer error, got %v", err)
	}
}

func TestCell_SpawnDaughters(t *testing.T) {
	parentTimer := &scriptTimer{fireTick: 3, action: ActionDeath}
	c := NewCell(0, func(o *CellOptions) {
		o.Payload = 10
		o.InheritPayload = func(parent any, _ Time) any { return parent.(int) + 1 }
	})
	if err := c.AddTimer(parentTimer); err != nil {
		t.Fatal(err)
	}

	a, b, err := c.SpawnDaughters(4)
	if err != nil {
		t.Fatal(err)
	}

	for _, d := range []*Cell{a, b} {
		if d.Generation() != 1 {
			t.Errorf("daughter generation = %d, want 1", d.Generation())
		}
		if d.Birth() != 4 {
			t.Errorf("daughter birth = %v, want 4", d.Birth())
		}
		if d.Payload().(int) != 11 {
			t.Errorf("payload hook not applied: %v", d.Payload())
		}
		if d.TimerCount() != 1 {
			t.Errorf("daughter timer count = %d, want 1", d.TimerCount())
		}
	}

	if a.ID() == b.ID() || a.ID() == c.ID() {
		t.Error("daughters must have fresh identities")
	}
	if parentTimer.inherits != 2 {
		t.Errorf("Inherit called %d times, want exactly 2", parentTimer.inherits)
	}
	if a.Timers()[0] == b.Timers()[0] {
		t.Error("daughters share a timer instance")
	}

	// The parent is consumed: no further operations are allowed.
	if _, err := c.Advance(4, 1); !errors.Is(err, ErrConsumedCell) {
		t.Errorf("expected ErrConsumedCell from Advance, got %v", err)
	}
	if err := c.AddTimer(&scriptTimer{}); !errors.Is(err, ErrConsumedCell) {
		t.Errorf("expected ErrConsumedCell from AddTimer, got %v", err)
	}
	if _, _, err := c.SpawnDaughters(5); !errors.Is(err, ErrConsumedCell) {
		t.Errorf("expected ErrConsumedCell from SpawnDaughters, got %v", err)
	}
	if c.TimerCount() != 0 {
		t.Errorf("consumed parent still owns %d timers", c.TimerCount())
	}
}

func TestCell_SpawnDaughters_DetectsSharedTimer(t *testing.T) {
	c := NewCell(0)
	if err := c.AddTimer(&sharingTimer{}); err != nil {
		t.Fatal(err)
	}

	_, _, err := c.SpawnDaughters(1)
	if !errors.Is(err, ErrSharedTimer) {
		t.Fatalf("expected ErrSharedTimer, got %v", err)
	}
}

func TestCell_SpawnDaughters_SharesPayloadWithoutHook(t *testing.T) {
	c := NewCell(0, func(o *CellOptions) { o.Payload = "shared" })
	if err := c.AddTimer(&scriptTimer{}); err != nil {
		t.Fatal(err)
	}

	a, b, err := c.SpawnDaughters(1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Payload() != "shared" || b.Payload() != "shared" {
		t.Fatalf("expected payload passthrough, got %v / %v", a.Payload(), b.Payload())
	}
}
