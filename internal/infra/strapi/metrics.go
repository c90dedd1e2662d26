package strapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	// requestsTotal counts content API calls.
	// Labels: resource (articles, categories, health), outcome (ok, network, status, decode, unavailable, canceled)
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_api_requests_total",
			Help: "Total number of content API requests by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_api_request_duration_seconds",
			Help:    "Content API request latency in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)

	// circuitState is 0 closed, 1 half-open, 2 open.
	circuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_api_circuit_state",
			Help: "Content API circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"circuit"},
	)
)

func recordRequest(resource string, err error, elapsed time.Duration) {
	outcome := "ok"
	if fe, ok := AsFetchError(err); ok {
		outcome = fe.Kind.String()
	} else if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(resource, outcome).Inc()
	requestDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
}

func recordCircuitState(name string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	circuitState.WithLabelValues(name).Set(v)
}
