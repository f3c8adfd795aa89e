package observe

import (
	"sync"

	"github.com/hupe1980/cellmesh/core"
)

// Sample is one recorded point of a population trajectory.
type Sample struct {
	Step      uint64
	Time      core.Time
	Size      int
	Deaths    int
	Divisions int

	// Generations maps generation number to cell count. Nil unless the
	// observer was created with generation tracking enabled.
	Generations map[int]int
}

// CountObserverOptions configures a CountObserver.
type CountObserverOptions struct {
	// TrackGenerations enables a per-generation cell count in every sample.
	// Costs one pass over the cell snapshot per tick.
	TrackGenerations bool
}

// CountObserver records a population-size time series in memory. It is the
// default sink for tests and small analyses; larger runs should prefer the
// SQLite Recorder.
//
// Safe for concurrent use, though a population notifies observers from a
// single goroutine.
type CountObserver struct {
	mu               sync.Mutex
	trackGenerations bool
	samples          []Sample
}

// NewCountObserver creates an in-memory trajectory recorder.
func NewCountObserver(optFns ...func(o *CountObserverOptions)) *CountObserver {
	opts := CountObserverOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &CountObserver{trackGenerations: opts.TrackGenerations}
}

// WithGenerations enables per-generation counting.
func WithGenerations() func(o *CountObserverOptions) {
	return func(o *CountObserverOptions) { o.TrackGenerations = true }
}

// OnStep appends one sample for the completed tick.
func (c *CountObserver) OnStep(view core.PopulationView, t core.Time) {
	stats := view.LastStepStats()

	s := Sample{
		Step:      stats.Step,
		Time:      t,
		Size:      view.Size(),
		Deaths:    stats.Deaths,
		Divisions: stats.Divisions,
	}

	if c.trackGenerations {
		s.Generations = make(map[int]int)
		for _, cell := range view.Cells() {
			s.Generations[cell.Generation()]++
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, s)
}

// Samples returns a copy of all recorded samples in tick order.
func (c *CountObserver) Samples() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	for i := range out {
		if out[i].Generations == nil {
			continue
		}
		gens := make(map[int]int, len(out[i].Generations))
		for k, v := range out[i].Generations {
			gens[k] = v
		}
		out[i].Generations = gens
	}
	return out
}

// Sizes returns just the population-size trajectory in tick order.
func (c *CountObserver) Sizes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]int, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Size
	}
	return out
}

// Times returns the simulation times of the recorded samples in tick order.
func (c *CountObserver) Times() []core.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]core.Time, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Time
	}
	return out
}

// Len returns the number of recorded samples.
func (c *CountObserver) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}
