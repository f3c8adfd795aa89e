// Package core provides the foundational domain types, interfaces and
// contracts used by CellMesh. It defines the core abstractions for:
//
//   - Cells (independently evolving agents owning stochastic fate timers)
//   - FateTimers (per-cell sub-processes emitting at most one event per tick)
//   - Events (immutable signals carrying a structural or custom action)
//   - Observers (read-only per-tick instrumentation of a population)
//   - Factories and inheritance hooks supplied by the modeller
//
// The package intentionally keeps implementation concerns (the stepping loop,
// concrete timer implementations, output sinks) out of scope, exposing small
// interfaces to enable custom extensions. All exported identifiers include
// concise documentation to aid discoverability and external consumption.
package core
