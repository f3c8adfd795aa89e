package engine

import (
	"context"
	"fmt"

	"github.com/hupe1980/cellmesh/core"
)

// HookType identifies the lifecycle point within a tick where a hook runs.
//
// Hooks are the engine-side complement to observers: where observers are
// strictly read-only and see only fully applied ticks, hooks run inside the
// tick and can veto progress by returning an error. Use hooks for
// validation, instrumentation and fail-fast guards; use observers for data
// collection.
type HookType string

const (
	// HookBeforeStep runs before the advance phase of every tick.
	// Use for setup, validation, or instrumentation.
	HookBeforeStep HookType = "before_step"

	// HookAfterAdvance runs after every cell has been advanced but before
	// structural events are applied. The population is still in its
	// pre-tick state at this point.
	HookAfterAdvance HookType = "after_advance"

	// HookAfterApply runs after structural events have been applied and the
	// clock advanced, immediately before observers are notified.
	HookAfterApply HookType = "after_apply"

	// HookOnError runs when a tick is aborted by an extension failure.
	// Use for alerting or diagnostics; the original error still propagates.
	HookOnError HookType = "on_error"
)

// HookContext carries the tick state relevant at a hook's lifecycle point.
// Fields that are not meaningful for a given hook type are zero-valued
// (e.g. Stats is only populated for HookAfterApply, Err only for
// HookOnError).
type HookContext struct {
	// Step is the 1-based index of the tick being executed.
	Step uint64

	// Time is the simulation time at the hook's lifecycle point: the
	// pre-tick time for before-step/after-advance/on-error, the post-tick
	// time for after-apply.
	Time core.Time

	// Size is the live-cell count at the hook's lifecycle point.
	Size int

	// Stats holds the structural bookkeeping of the tick (after-apply only).
	Stats core.StepStats

	// Err is the extension failure that aborted the tick (on-error only).
	Err error
}

// Hook is a lifecycle extension point executed synchronously inside a tick.
//
// Implementations should be fast (they block the tick), safe (no panics)
// and deterministic. Returning an error from a before-step, after-advance
// or after-apply hook aborts the tick and propagates to the Step caller.
type Hook interface {
	// Type returns the lifecycle point this hook handles.
	Type() HookType

	// Execute performs the hook logic with the provided tick context.
	Execute(ctx context.Context, hookCtx *HookContext) error
}

// FunctionHook wraps a plain function as a Hook implementation.
//
// Example:
//
//	guard := engine.NewFunctionHook(engine.HookAfterApply,
//	    func(ctx context.Context, hc *engine.HookContext) error {
//	        if hc.Size > 1_000_000 {
//	            return fmt.Errorf("population exploded: %d cells", hc.Size)
//	        }
//	        return nil
//	    },
//	)
type FunctionHook struct {
	hookType HookType
	fn       func(ctx context.Context, hookCtx *HookContext) error
}

// NewFunctionHook creates a function-based hook for the given lifecycle point.
func NewFunctionHook(hookType HookType, fn func(ctx context.Context, hookCtx *HookContext) error) *FunctionHook {
	return &FunctionHook{hookType: hookType, fn: fn}
}

// Type returns the lifecycle point this hook handles.
func (h *FunctionHook) Type() HookType { return h.hookType }

// Execute calls the wrapped function.
func (h *FunctionHook) Execute(ctx context.Context, hookCtx *HookContext) error {
	return h.fn(ctx, hookCtx)
}

// LoggingHook formats tick lifecycle events into a logging function. Useful
// for debugging and audit trails without a full Logger implementation.
type LoggingHook struct {
	hookType HookType
	logger   func(message string)
}

// NewLoggingHook creates a hook that forwards formatted lifecycle messages
// to the given function.
func NewLoggingHook(hookType HookType, logger func(message string)) *LoggingHook {
	return &LoggingHook{hookType: hookType, logger: logger}
}

// Type returns the lifecycle point this hook handles.
func (h *LoggingHook) Type() HookType { return h.hookType }

// Execute logs the lifecycle event with tick context.
func (h *LoggingHook) Execute(_ context.Context, hookCtx *HookContext) error {
	if h.logger != nil {
		h.logger(fmt.Sprintf("[%s] step=%d time=%v size=%d", h.hookType, hookCtx.Step, hookCtx.Time, hookCtx.Size))
	}
	return nil
}

// HookManager routes tick lifecycle notifications to registered hooks.
//
// Hooks are executed sequentially in registration order; the first hook
// returning an error stops execution and the error is propagated. The
// manager is not safe for concurrent registration; register all hooks
// before stepping begins.
type HookManager struct {
	hooks map[HookType][]Hook
}

// NewHookManager creates an empty hook manager.
func NewHookManager() *HookManager {
	return &HookManager{hooks: make(map[HookType][]Hook)}
}

// Register adds a hook for its declared lifecycle point. Multiple hooks per
// point run in registration order.
func (m *HookManager) Register(h Hook) {
	hookType := h.Type()
	m.hooks[hookType] = append(m.hooks[hookType], h)
}

// Execute runs all hooks registered for the given lifecycle point.
func (m *HookManager) Execute(ctx context.Context, hookType HookType, hookCtx *HookContext) error {
	hooks, exists := m.hooks[hookType]
	if !exists {
		return nil
	}

	for _, h := range hooks {
		if err := h.Execute(ctx, hookCtx); err != nil {
			return err
		}
	}

	return nil
}
