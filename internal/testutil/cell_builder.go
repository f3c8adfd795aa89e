package testutil

import (
	"github.com/hupe1980/cellmesh/core"
)

// CellBuilder provides a fluent helper for constructing cells in tests.
// Example:
//
//	c := NewCellBuilder().Birth(2).Payload("marker").Timers(NewScriptTimer().DeathAt(3)).Build()
//
// Generations above 0 are reached by actually dividing, so lineage
// bookkeeping stays consistent with production paths.
type CellBuilder struct {
	birth      core.Time
	generation int
	payload    any
	inherit    core.PayloadInheritFunc
	timers     []core.FateTimer
}

// NewCellBuilder creates a builder for a generation-0 cell born at time 0.
func NewCellBuilder() *CellBuilder { return &CellBuilder{} }

// Birth sets the cell's birth time (chainable).
func (b *CellBuilder) Birth(t core.Time) *CellBuilder { b.birth = t; return b }

// Generation sets the target generation; the builder divides its way there
// (chainable).
func (b *CellBuilder) Generation(g int) *CellBuilder { b.generation = g; return b }

// Payload sets the cell payload (chainable).
func (b *CellBuilder) Payload(p any) *CellBuilder { b.payload = p; return b }

// InheritPayload sets the payload inheritance hook (chainable).
func (b *CellBuilder) InheritPayload(fn core.PayloadInheritFunc) *CellBuilder {
	b.inherit = fn
	return b
}

// Timers appends fate timers in the given order (chainable).
func (b *CellBuilder) Timers(timers ...core.FateTimer) *CellBuilder {
	b.timers = append(b.timers, timers...)
	return b
}

// Build constructs the cell, panicking on invalid builder input since tests
// have no error path worth exercising here.
func (b *CellBuilder) Build() *core.Cell {
	c := core.NewCell(b.birth, func(o *core.CellOptions) {
		o.Payload = b.payload
		o.InheritPayload = b.inherit
	})

	for _, tm := range b.timers {
		if err := c.AddTimer(tm); err != nil {
			panic(err)
		}
	}

	for g := 0; g < b.generation; g++ {
		daughter, _, err := c.SpawnDaughters(b.birth)
		if err != nil {
			panic(err)
		}
		c = daughter
	}

	return c
}
