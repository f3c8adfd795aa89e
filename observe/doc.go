// Package observe provides ready-made Observer implementations for common
// instrumentation needs:
//
//   - CountObserver: in-memory population-size (and optionally generation)
//     time series for analysis and tests
//   - MetricsObserver: Prometheus gauges and counters for live monitoring
//   - Recorder: SQLite persistence of the step-by-step trajectory
//
// All observers honor the read-only contract: they inspect the population
// view handed to OnStep and accumulate state of their own, but never mutate
// cells or timers.
package observe
