// Package health serves liveness probes on a dedicated port.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Server struct {
	port string
}

func New(port string) *Server {
	return &Server{port: port}
}

// Start serves /healthz until ctx is cancelled.
func (s *Server) Start(ctx context.Context, logger *logrus.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("health server listening on :%s", s.port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
