// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer CellMeshLogger with contextual
// helpers (run, component) and domain specific logging helpers for ticks,
// divisions and timer failures.
package logging
