package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	Generations        *prometheus.CounterVec
	Fallbacks          *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	Enrichments        *prometheus.CounterVec
	TripsPromoted      prometheus.Counter
	TripsDeleted       prometheus.Counter
	PersistenceErrors  *prometheus.CounterVec
}

// NewMetrics creates metrics registered on their own registry
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itineraries_generated_total",
			Help:      "The total number of itineraries produced, by source",
		}, []string{"source"}),
		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "The total number of fallback itineraries, by reason",
		}, []string{"reason"}),
		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting on the generation endpoint",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60, 90},
		}),
		Enrichments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichments_total",
			Help:      "Locale lookups, by outcome",
		}, []string{"outcome"}),
		TripsPromoted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_promoted_total",
			Help:      "The total number of trips saved by their owner",
		}),
		TripsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_deleted_total",
			Help:      "The total number of trips deleted",
		}),
		PersistenceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_errors_total",
			Help:      "The total number of store failures",
		}, []string{"operation"}),
	}
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
