package testutil

import (
	"github.com/hupe1980/cellmesh/core"
)

// View is a static core.PopulationView for observer tests.
type View struct {
	T        core.Time
	CellList []*core.Cell
	Stats    core.StepStats
}

// Time returns the static simulation time.
func (v *View) Time() core.Time { return v.T }

// Size returns the number of cells in the static snapshot.
func (v *View) Size() int { return len(v.CellList) }

// Cells returns the static snapshot.
func (v *View) Cells() []*core.Cell { return v.CellList }

// LastStepStats returns the static step stats.
func (v *View) LastStepStats() core.StepStats { return v.Stats }
