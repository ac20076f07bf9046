package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spamguard"

// Metrics holds the prediction collectors
type Metrics struct {
	Predictions       *prometheus.CounterVec
	PredictionErrors  *prometheus.CounterVec
	PredictionLatency prometheus.Histogram
	CacheLookups      *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Successful predictions by predicted class.",
		}, []string{"prediction"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Failed predictions by error kind.",
		}, []string{"kind"}),
		PredictionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent in the inference pipeline.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.Predictions,
		m.PredictionErrors,
		m.PredictionLatency,
		m.CacheLookups,
		m.HTTPRequests,
	)

	return m
}

// NewNop returns collectors registered nowhere
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
