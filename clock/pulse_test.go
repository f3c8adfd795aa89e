package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cellmesh/core"
)

func TestPulseTimer_EmitsCustomEventOnce(t *testing.T) {
	tm := NewPulseTimer("mute", 2).WithPayload("extra")

	ev, err := tm.Step(0, 1)
	require.NoError(t, err)
	assert.Nil(t, ev)

	ev, err = tm.Step(1, 1)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, core.ActionCustom, ev.Action)
	assert.Equal(t, "mute", ev.Kind)
	assert.Equal(t, "extra", ev.Payload)
	assert.False(t, ev.IsStructural())

	ev, err = tm.Step(2, 1)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestPulseTimer_InheritCarriesFiredState(t *testing.T) {
	tm := NewPulseTimer("mute", 1)

	ev, err := tm.Step(0, 1)
	require.NoError(t, err)
	require.NotNil(t, ev)

	child, err := tm.Inherit(1)
	require.NoError(t, err)
	require.NotSame(t, tm, child)

	ev, err = child.Step(1, 1)
	require.NoError(t, err)
	assert.Nil(t, ev, "an emitted pulse must stay spent in the daughter")
}
