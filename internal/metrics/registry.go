package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Service names accepted by RegisterMetrics.
const (
	ServiceHTTP     = "http"
	ServiceUpstream = "upstream"
)

// RegisterMetrics registers metrics for the specified services
func RegisterMetrics(services []string, logger *logrus.Logger) {
	// Always register Go and process metrics
	registerIfNotExists(collectors.NewGoCollector(), "go_collector", logger)
	registerIfNotExists(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), "process_collector", logger)

	for _, service := range services {
		switch service {
		case ServiceHTTP:
			registerHTTPMetrics(logger)
		case ServiceUpstream:
			registerUpstreamMetrics(logger)
		default:
			logger.Warnf("Unknown service type for metrics registration: %s", service)
		}
	}
}

// registerIfNotExists registers a collector if it's not already registered
func registerIfNotExists(collector prometheus.Collector, name string, logger *logrus.Logger) {
	if err := prometheus.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			// Expected on restart/reload
			logger.Debugf("%s already registered", name)
		} else {
			logger.Errorf("Failed to register %s: %v", name, err)
		}
	}
}

func registerHTTPMetrics(logger *logrus.Logger) {
	registerIfNotExists(httpRequestsTotal, "http_requests_total", logger)
	registerIfNotExists(httpRequestDuration, "http_request_duration", logger)
	registerIfNotExists(httpErrorsTotal, "http_errors_total", logger)
}

func registerUpstreamMetrics(logger *logrus.Logger) {
	registerIfNotExists(upstreamRequestsTotal, "upstream_requests_total", logger)
	registerIfNotExists(upstreamRequestDuration, "upstream_request_duration", logger)
	registerIfNotExists(broadcastsTotal, "broadcasts_total", logger)
}
