// Package testutil provides shared helpers for CellMesh tests: a scriptable
// fate timer, a fluent cell builder and a static population view so observer
// and cell behavior can be exercised without a full engine run.
package testutil
