package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// outcomeError labels requests whose validation failed with an error.
const outcomeError = "error"

type metrics struct {
	requestsTotal      *prometheus.CounterVec
	validationDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		requestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "oasguard",
			Name:      "requests_total",
			Help:      "Total number of validated requests by outcome.",
		}, []string{"outcome"}),
		validationDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "oasguard",
			Name:      "validation_duration_seconds",
			Help:      "Time (in seconds) spent validating a request.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
	}
}
