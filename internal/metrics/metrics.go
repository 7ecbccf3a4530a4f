// v0
// Package metrics defines the engine's prometheus collectors. New
// registers them once, at process start, against the Registerer the
// caller supplies, mirroring the teacher's convention of passing the
// *Metrics handle down to the components that record against it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every collector the engine records against.
type Metrics struct {
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	BreakerState    *prometheus.GaugeVec
	CheckOutcomes   *prometheus.CounterVec
	EventsEmitted   *prometheus.CounterVec
	RegistryErrors  *prometheus.CounterVec
	ObservationsIn  prometheus.Counter
	DispatchPanics  prometheus.Counter
}

// New constructs and registers all collectors against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamqc",
			Subsystem: "registry_cache",
			Name:      "hits_total",
			Help:      "Registry lookup cache hits, including cached absences.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamqc",
			Subsystem: "registry_cache",
			Name:      "misses_total",
			Help:      "Registry lookup cache misses requiring a store round-trip.",
		}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "streamqc",
			Subsystem: "resilience",
			Name:      "breaker_state",
			Help:      "Circuit breaker state per named breaker: 0=closed 1=open 2=half-open.",
		}, []string{"breaker"}),
		CheckOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamqc",
			Subsystem: "checks",
			Name:      "outcomes_total",
			Help:      "Check outcomes by family, test id and outcome.",
		}, []string{"family", "test_id", "outcome"}),
		EventsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamqc",
			Subsystem: "checks",
			Name:      "events_total",
			Help:      "QC events emitted by family.",
		}, []string{"family"}),
		RegistryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamqc",
			Subsystem: "registry",
			Name:      "errors_total",
			Help:      "Registry lookup errors by kind (transient, malformed).",
		}, []string{"kind"}),
		ObservationsIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamqc",
			Subsystem: "engine",
			Name:      "observations_in_total",
			Help:      "Observations consumed from the observation topic.",
		}),
		DispatchPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamqc",
			Subsystem: "engine",
			Name:      "dispatch_panics_total",
			Help:      "Recovered panics at the per-observation dispatch boundary.",
		}),
	}

	reg.MustRegister(
		m.CacheHits, m.CacheMisses, m.BreakerState, m.CheckOutcomes,
		m.EventsEmitted, m.RegistryErrors, m.ObservationsIn, m.DispatchPanics,
	)
	return m
}

// CacheHit implements registry.CacheObserver.
func (m *Metrics) CacheHit() { m.CacheHits.Inc() }

// CacheMiss implements registry.CacheObserver.
func (m *Metrics) CacheMiss() { m.CacheMisses.Inc() }

// SetBreakerState records a breaker's numeric state under its name.
func (m *Metrics) SetBreakerState(name string, state int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}
