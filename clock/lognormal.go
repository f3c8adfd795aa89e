package clock

import (
	"math"
	"math/rand"

	"github.com/hupe1980/cellmesh/core"
)

// LogNormalTimer fires a single event of the configured action after a
// waiting period drawn from a log-normal distribution. It models the classic
// competing death/division clocks of cell fate simulation: attach one timer
// per competing process and let the earliest draw decide the cell's fate.
//
// The waiting period is sampled once at construction (relative to the
// creation time) and re-sampled independently for each daughter at
// inheritance, so lineages decorrelate the way the underlying biology does.
type LogNormalTimer struct {
	action core.Action
	mu     float64
	sigma  float64
	rng    *rand.Rand
	fireAt core.Time
	fired  bool
}

// NewLogNormalTimer creates a timer whose waiting period is exp(N(mu,
// sigma²)), measured from now. The rand source must be non-nil and is
// retained for daughter draws; pass a seeded source to make runs
// reproducible. Timers sharing one source must belong to the same
// population, where inheritance draws are serialized by the apply phase.
func NewLogNormalTimer(action core.Action, mu, sigma float64, rng *rand.Rand, now core.Time) *LogNormalTimer {
	if rng == nil {
		panic("clock: LogNormalTimer requires a non-nil rand source")
	}

	l := &LogNormalTimer{action: action, mu: mu, sigma: sigma, rng: rng}
	l.fireAt = now + l.draw()
	return l
}

func (l *LogNormalTimer) draw() core.Time {
	return core.Time(math.Exp(l.mu + l.sigma*l.rng.NormFloat64()))
}

// Step fires the configured event exactly once, on the first tick whose end
// time reaches the drawn firing time.
func (l *LogNormalTimer) Step(t core.Time, dt core.Duration) (*core.Event, error) {
	if l.fired {
		return nil, nil
	}

	end := t + core.Time(dt)
	if end < l.fireAt {
		return nil, nil
	}
	l.fired = true

	switch l.action {
	case core.ActionDeath:
		return core.NewDeathEvent(end), nil
	case core.ActionDivide:
		return core.NewDivisionEvent(end), nil
	default:
		return nil, nil
	}
}

// Inherit returns a fresh timer with an independently re-drawn firing time
// measured from the division time t. The parent's rand source is shared
// with daughters; draws stay deterministic because division is applied
// single-threaded in snapshot order.
func (l *LogNormalTimer) Inherit(t core.Time) (core.FateTimer, error) {
	child := &LogNormalTimer{action: l.action, mu: l.mu, sigma: l.sigma, rng: l.rng}
	child.fireAt = t + child.draw()
	return child, nil
}

// FireAt returns the drawn absolute firing time.
func (l *LogNormalTimer) FireAt() core.Time { return l.fireAt }
