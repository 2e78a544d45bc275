package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики HTTP слоя.
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stepline_api_http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stepline_api_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// orderComputedTotal считает вычисления порядка по исходу:
	// ok или cycle.
	orderComputedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stepline_api_execution_order_total",
		Help: "Execution order computations by outcome",
	}, []string{"outcome"})
)
