package core

import "testing"

// Event constructor & helper method tests
func TestEvent_Constructors(t *testing.T) {
	death := NewDeathEvent(3)
	if death.Action != ActionDeath || death.Time != 3 || death.ID == "" {
		t.Fatalf("NewDeathEvent did not initialize fields correctly: %+v", death)
	}

	div := NewDivisionEvent(2)
	if div.Action != ActionDivide || div.Time != 2 {
		t.Fatalf("NewDivisionEvent malformed: %+v", div)
	}

	custom := NewCustomEvent(1, "silence", 42)
	if custom.Action != ActionCustom || custom.Kind != "silence" || custom.Payload.(int) != 42 {
		t.Fatalf("NewCustomEvent malformed: %+v", custom)
	}
}

func TestEvent_IsStructural(t *testing.T) {
	if !NewDeathEvent(0).IsStructural() {
		t.Error("death event should be structural")
	}
	if !NewDivisionEvent(0).IsStructural() {
		t.Error("division event should be structural")
	}
	if NewCustomEvent(0, "k", nil).IsStructural() {
		t.Error("custom event should not be structural")
	}
	if (&Event{}).IsStructural() {
		t.Error("zero event should not be structural")
	}
}

func TestAction_String(t *testing.T) {
	cases := map[Action]string{
		ActionNone:   "none",
		ActionDeath:  "death",
		ActionDivide: "divide",
		ActionCustom: "custom",
		Action(99):   "unknown",
	}
	for action, want := range cases {
		if got := action.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", action, got, want)
		}
	}
}

func TestEvent_IDUniqueness(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Error("Expected unique IDs")
	}
}
