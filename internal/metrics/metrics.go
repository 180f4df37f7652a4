// Package metrics provides Prometheus metrics collection: HTTP request
// instrumentation for the API server, upstream client instrumentation for
// the fullnode and indexer calls, and the scrape endpoint server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server exposes the Prometheus scrape endpoint on its own port.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
}

// StartMetricsServer registers the requested service metrics and starts the
// scrape endpoint in the background. Returns nil when port is empty.
func StartMetricsServer(port string, services []string, logger *logrus.Logger) *Server {
	if port == "" {
		return nil
	}

	RegisterMetrics(services, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		},
		logger: logger,
	}

	go func() {
		logger.Infof("metrics server listening on :%s", port)
		if err := server.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("metrics server failed: %v", err)
		}
	}()

	return server
}

// Stop shuts the scrape endpoint down, waiting briefly for in-flight scrapes.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
