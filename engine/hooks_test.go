package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cellmesh/core"
	"github.com/hupe1980/cellmesh/internal/testutil"
)

func TestHookManager_ExecutionOrder(t *testing.T) {
	m := NewHookManager()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		m.Register(NewFunctionHook(HookBeforeStep, func(context.Context, *HookContext) error {
			order = append(order, name)
			return nil
		}))
	}

	require.NoError(t, m.Execute(context.Background(), HookBeforeStep, &HookContext{}))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestHookManager_FirstErrorStops(t *testing.T) {
	m := NewHookManager()
	boom := errors.New("boom")

	var thirdRan bool
	m.Register(NewFunctionHook(HookAfterApply, func(context.Context, *HookContext) error { return nil }))
	m.Register(NewFunctionHook(HookAfterApply, func(context.Context, *HookContext) error { return boom }))
	m.Register(NewFunctionHook(HookAfterApply, func(context.Context, *HookContext) error {
		thirdRan = true
		return nil
	}))

	require.ErrorIs(t, m.Execute(context.Background(), HookAfterApply, &HookContext{}), boom)
	assert.False(t, thirdRan)
}

func TestHookManager_UnregisteredTypeIsNoOp(t *testing.T) {
	m := NewHookManager()
	require.NoError(t, m.Execute(context.Background(), HookOnError, &HookContext{}))
}

func TestLoggingHook_Format(t *testing.T) {
	var messages []string
	h := NewLoggingHook(HookBeforeStep, func(msg string) { messages = append(messages, msg) })

	assert.Equal(t, HookBeforeStep, h.Type())
	require.NoError(t, h.Execute(context.Background(), &HookContext{Step: 3, Time: 1.5, Size: 42}))

	require.Len(t, messages, 1)
	assert.Equal(t, "[before_step] step=3 time=1.5 size=42", messages[0])
}

func TestLoggingHook_NilLogger(t *testing.T) {
	h := NewLoggingHook(HookAfterApply, nil)
	require.NoError(t, h.Execute(context.Background(), &HookContext{}))
}

func TestStep_BeforeStepVetoAbortsTick(t *testing.T) {
	factory := func(birth core.Time) (*core.Cell, error) {
		c := core.NewCell(birth)
		if err := c.AddTimer(testutil.NewScriptTimer().DeathAt(1)); err != nil {
			return nil, err
		}
		return c, nil
	}

	veto := errors.New("veto")
	hooks := NewHookManager()
	hooks.Register(NewFunctionHook(HookBeforeStep, func(context.Context, *HookContext) error {
		return veto
	}))

	pop, err := New(1, factory, WithHooks(hooks))
	require.NoError(t, err)

	require.ErrorIs(t, pop.Step(context.Background()), veto)

	// The vetoed tick must leave the population untouched.
	assert.Equal(t, 1, pop.Size())
	assert.Equal(t, core.Time(0), pop.Time())
	assert.Equal(t, uint64(0), pop.StepCount())
}

func TestStep_AfterApplyHookSeesStats(t *testing.T) {
	factory := func(birth core.Time) (*core.Cell, error) {
		c := core.NewCell(birth)
		if err := c.AddTimer(testutil.NewScriptTimer().DivideAt(1)); err != nil {
			return nil, err
		}
		return c, nil
	}

	var captured *HookContext
	hooks := NewHookManager()
	hooks.Register(NewFunctionHook(HookAfterApply, func(_ context.Context, hc *HookContext) error {
		captured = hc
		return nil
	}))

	pop, err := New(1, factory, WithHooks(hooks))
	require.NoError(t, err)

	require.NoError(t, pop.Step(context.Background()))

	require.NotNil(t, captured)
	assert.Equal(t, uint64(1), captured.Step)
	assert.Equal(t, core.Time(1), captured.Time)
	assert.Equal(t, 2, captured.Size)
	assert.Equal(t, core.StepStats{Step: 1, Divisions: 1, Births: 2}, captured.Stats)
}

func TestStep_OnErrorHookReceivesFailure(t *testing.T) {
	boom := errors.New("boom")
	factory := func(birth core.Time) (*core.Cell, error) {
		c := core.NewCell(birth)
		if err := c.AddTimer(testutil.NewScriptTimer().FailAt(1, boom)); err != nil {
			return nil, err
		}
		return c, nil
	}

	var captured error
	hooks := NewHookManager()
	hooks.Register(NewFunctionHook(HookOnError, func(_ context.Context, hc *HookContext) error {
		captured = hc.Err
		return nil
	}))

	pop, err := New(1, factory, WithHooks(hooks))
	require.NoError(t, err)

	require.ErrorIs(t, pop.Step(context.Background()), boom)
	require.ErrorIs(t, captured, boom)
}
