package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cellmesh/core"
)

func TestSilenceable_MutesOnMatchingKind(t *testing.T) {
	s := Silence(NewDeadlineTimer(core.ActionDeath, 2), "mute")
	require.False(t, s.Silenced())

	s.React(core.NewCustomEvent(1, "mute", nil))
	require.True(t, s.Silenced())

	ev, err := s.Step(1, 1)
	require.NoError(t, err)
	assert.Nil(t, ev, "a silenced timer must not fire past its deadline")
}

func TestSilenceable_IgnoresOtherKinds(t *testing.T) {
	s := Silence(NewDeadlineTimer(core.ActionDeath, 2), "mute")

	s.React(core.NewCustomEvent(1, "other", nil))
	s.React(core.NewDeathEvent(1))
	require.False(t, s.Silenced())

	ev, err := s.Step(1, 1)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, core.ActionDeath, ev.Action)
}

// reactorTimer records forwarded notifications.
type reactorTimer struct {
	reacted []*core.Event
}

func (r *reactorTimer) Step(core.Time, core.Duration) (*core.Event, error) { return nil, nil }
func (r *reactorTimer) Inherit(core.Time) (core.FateTimer, error) {
	return &reactorTimer{}, nil
}
func (r *reactorTimer) React(ev *core.Event) { r.reacted = append(r.reacted, ev) }

func TestSilenceable_ForwardsNonMatchingToInnerReactor(t *testing.T) {
	inner := &reactorTimer{}
	s := Silence(inner, "mute")

	other := core.NewCustomEvent(1, "other", nil)
	s.React(other)

	require.Len(t, inner.reacted, 1)
	assert.Same(t, other, inner.reacted[0])

	// The matching kind silences the wrapper and is not forwarded.
	s.React(core.NewCustomEvent(2, "mute", nil))
	assert.Len(t, inner.reacted, 1)
}

func TestSilenceable_InheritCarriesSilencedState(t *testing.T) {
	s := Silence(NewDeadlineTimer(core.ActionDeath, 5), "mute")
	s.React(core.NewCustomEvent(1, "mute", nil))

	child, err := s.Inherit(2)
	require.NoError(t, err)

	cs := child.(*Silenceable)
	require.NotSame(t, s, cs)
	assert.True(t, cs.Silenced())
	assert.NotSame(t, s.Inner(), cs.Inner(), "the wrapped timer is inherited, not shared")

	ev, err := cs.Step(4, 1)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestSilenceable_InheritPropagatesInnerError(t *testing.T) {
	s := Silence(&failingInherit{}, "mute")

	_, err := s.Inherit(1)
	require.Error(t, err)
}

type failingInherit struct{}

func (f *failingInherit) Step(core.Time, core.Duration) (*core.Event, error) { return nil, nil }
func (f *failingInherit) Inherit(core.Time) (core.FateTimer, error) {
	return nil, assert.AnError
}
