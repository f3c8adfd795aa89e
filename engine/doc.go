// Package engine implements the population stepper at the heart of CellMesh.
//
// The Population owns the collection of live cells and drives them through
// discrete ticks of constant size Dt. Each tick is a small state machine
// with three phases:
//
//	┌─────────────────────────────────────────────────────────┐
//	│                     Advance phase                       │
//	│  snapshot live cells; run every timer of every cell     │
//	│  exactly once; resolve intra-cell signals; collect      │
//	│  structural events without applying them                │
//	├─────────────────────────────────────────────────────────┤
//	│                      Apply phase                        │
//	│  resolve death/division per cell (death wins ties by    │
//	│  default); remove dead cells; replace dividing parents  │
//	│  with two daughters, atomically and single-threaded     │
//	├─────────────────────────────────────────────────────────┤
//	│                   Observation phase                     │
//	│  advance the clock by Dt; notify hooks and observers    │
//	│  with the fully applied population view                 │
//	└─────────────────────────────────────────────────────────┘
//
// Cells created during a tick are not advanced until the next tick, and the
// live collection never changes size mid-phase, so timers and observers only
// ever see consistent population states.
//
// # Concurrency Model
//
// A population runs ticks strictly sequentially. Within a tick the Advance
// phase may fan cells out across a bounded worker pool (Config.Workers):
// each cell's advance touches only that cell's own timers, the snapshot is
// fixed before any worker starts, and per-cell results are collected by
// snapshot index so the merge into the Apply phase is deterministic
// regardless of worker scheduling. The Apply phase always runs on the
// calling goroutine.
//
// # Error Handling
//
// Extension failures (timer Step/Inherit errors, factory errors) are never
// swallowed: they abort the current tick before the Apply phase mutates
// anything and propagate to the Step/Run caller, so corrupted per-tick state
// cannot leak into subsequent ticks. A cell emitting both death and division
// in one tick is not an error; it is resolved by the configured TiePolicy
// and logged as a policy decision.
package engine
