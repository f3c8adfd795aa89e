package observe

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/cellmesh/core"
)

// MetricsObserverOptions configures a MetricsObserver.
type MetricsObserverOptions struct {
	// Registerer receives the observer's collectors. Defaults to
	// prometheus.DefaultRegisterer. Tests should pass a fresh
	// prometheus.NewRegistry() to avoid duplicate registration.
	Registerer prometheus.Registerer

	// Namespace prefixes all metric names. Defaults to "cellmesh".
	Namespace string
}

// MetricsObserver exports the population trajectory as Prometheus metrics:
//
//	<ns>_population_size    gauge    live cells after the last tick
//	<ns>_sim_time           gauge    current simulation time
//	<ns>_max_generation     gauge    highest generation among live cells
//	<ns>_deaths_total       counter  cells removed since observer creation
//	<ns>_divisions_total    counter  divisions since observer creation
type MetricsObserver struct {
	size          prometheus.Gauge
	simTime       prometheus.Gauge
	maxGeneration prometheus.Gauge
	deaths        prometheus.Counter
	divisions     prometheus.Counter
}

// NewMetricsObserver creates and registers the Prometheus collectors.
func NewMetricsObserver(optFns ...func(o *MetricsObserverOptions)) (*MetricsObserver, error) {
	opts := MetricsObserverOptions{
		Registerer: prometheus.DefaultRegisterer,
		Namespace:  "cellmesh",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	m := &MetricsObserver{
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: opts.Namespace,
			Name:      "population_size",
			Help:      "Number of live cells after the last completed tick.",
		}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: opts.Namespace,
			Name:      "sim_time",
			Help:      "Current simulation time.",
		}),
		maxGeneration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: opts.Namespace,
			Name:      "max_generation",
			Help:      "Highest generation number among live cells.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "deaths_total",
			Help:      "Total number of cell deaths observed.",
		}),
		divisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "divisions_total",
			Help:      "Total number of cell divisions observed.",
		}),
	}

	for _, c := range []prometheus.Collector{m.size, m.simTime, m.maxGeneration, m.deaths, m.divisions} {
		if err := opts.Registerer.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return m, nil
}

// OnStep updates gauges from the post-apply view and accumulates the tick's
// structural counts.
func (m *MetricsObserver) OnStep(view core.PopulationView, t core.Time) {
	stats := view.LastStepStats()

	m.size.Set(float64(view.Size()))
	m.simTime.Set(float64(t))
	m.deaths.Add(float64(stats.Deaths))
	m.divisions.Add(float64(stats.Divisions))

	maxGen := 0
	for _, c := range view.Cells() {
		if g := c.Generation(); g > maxGen {
			maxGen = g
		}
	}
	m.maxGeneration.Set(float64(maxGen))
}
