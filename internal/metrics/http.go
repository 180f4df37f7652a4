package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tronbridge",
			Subsystem: "server",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tronbridge",
			Subsystem: "server",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tronbridge",
			Subsystem: "server",
			Name:      "http_errors_total",
			Help:      "Total number of HTTP errors (status >= 500)",
		},
		[]string{"method", "path", "status"},
	)
)

// HTTPMiddleware returns Echo middleware for HTTP metrics collection.
// Labels use the route pattern, not the raw path, to keep cardinality low.
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			method := c.Request().Method
			path := c.Path()
			if path == "" {
				path = "unknown"
			}

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(duration)

			if c.Response().Status >= 500 {
				httpErrorsTotal.WithLabelValues(method, path, status).Inc()
			}

			return err
		}
	}
}
