package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts category page requests.
	// Labels: status (HTTP status code), page_range (page bucket: 1-10, 11-50, etc.), mode (category, search)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "category_page_requests_total",
			Help: "Total number of category page requests",
		},
		[]string{"status", "page_range", "mode"},
	)

	// DurationSeconds tracks page load duration.
	// Labels: operation (handler, service)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "category_page_duration_seconds",
			Help:    "Category page load duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// ErrorsTotal counts page errors by type.
	// Labels: type (upstream, internal, canceled)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "category_page_errors_total",
			Help: "Total number of category page errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a page request metric.
func RecordRequest(statusCode int, page int, searching bool) {
	mode := "category"
	if searching {
		mode = "search"
	}
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		getPageRangeBucket(page),
		mode,
	).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordError records an error metric.
// errorType should be one of: "upstream", "internal", "canceled"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
