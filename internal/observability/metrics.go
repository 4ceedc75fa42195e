package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// claim evaluation service.
type Metrics struct {
	ClaimsConsumed    prometheus.Counter
	DecisionsProduced prometheus.Counter
	ParseErrors       prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Evaluation metrics.
	Evaluations         *prometheus.CounterVec // labels: reason_code
	ValidationRejects   prometheus.Counter
	DistanceResolutions *prometheus.CounterVec // labels: source={curated,reversed,computed,default}

	// Reference-data cache metrics.
	CacheLookups *prometheus.CounterVec // labels: dataset, result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ClaimsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims_engine",
			Name:      "claims_consumed_total",
			Help:      "Total claim submissions read from the intake topic.",
		}),
		DecisionsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims_engine",
			Name:      "decisions_produced_total",
			Help:      "Total decision events written to the decisions topic.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims_engine",
			Name:      "parse_errors_total",
			Help:      "Total submissions that could not be deserialized.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "claims_engine",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "claims_engine",
			Name:      "batch_size",
			Help:      "Number of submissions per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "claims_engine",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-evaluate-load cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claims_engine",
			Name:      "evaluations_total",
			Help:      "Eligibility evaluations by outcome reason code.",
		}, []string{"reason_code"}),
		ValidationRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claims_engine",
			Name:      "validation_rejects_total",
			Help:      "Submissions rejected by claim validation.",
		}),
		DistanceResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claims_engine",
			Name:      "distance_resolutions_total",
			Help:      "Route distance resolutions by data source.",
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claims_engine",
			Name:      "cache_lookups_total",
			Help:      "Reference-data cache lookups by dataset and result.",
		}, []string{"dataset", "result"}),
	}

	prometheus.MustRegister(
		m.ClaimsConsumed,
		m.DecisionsProduced,
		m.ParseErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Evaluations,
		m.ValidationRejects,
		m.DistanceResolutions,
		m.CacheLookups,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ClaimsConsumed:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "claims_engine", Name: "claims_consumed_total"}),
		DecisionsProduced:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "claims_engine", Name: "decisions_produced_total"}),
		ParseErrors:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "claims_engine", Name: "parse_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "claims_engine", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "claims_engine", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "claims_engine", Name: "batch_processing_duration_seconds"}),
		Evaluations:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "claims_engine", Name: "evaluations_total"}, []string{"reason_code"}),
		ValidationRejects:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "claims_engine", Name: "validation_rejects_total"}),
		DistanceResolutions:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "claims_engine", Name: "distance_resolutions_total"}, []string{"source"}),
		CacheLookups:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "claims_engine", Name: "cache_lookups_total"}, []string{"dataset", "result"}),
	}
}
