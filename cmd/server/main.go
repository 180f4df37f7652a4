package main

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/larahfelipe/tronbridge/internal/account"
	"github.com/larahfelipe/tronbridge/internal/api"
	"github.com/larahfelipe/tronbridge/internal/graceful"
	"github.com/larahfelipe/tronbridge/internal/health"
	"github.com/larahfelipe/tronbridge/internal/logging"
	"github.com/larahfelipe/tronbridge/internal/metrics"
	"github.com/larahfelipe/tronbridge/internal/token"
	"github.com/larahfelipe/tronbridge/internal/transaction"
	"github.com/larahfelipe/tronbridge/internal/tron"
	"github.com/larahfelipe/tronbridge/internal/trongrid"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat)

	metricsServer := metrics.StartMetricsServer(
		cfg.MetricsPort,
		[]string{metrics.ServiceHTTP, metrics.ServiceUpstream},
		logger,
	)
	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Stop(ctx); err != nil {
				logger.Errorf("failed to stop metrics server: %v", err)
			}
		}
	}()

	healthServer := health.New(cfg.HealthPort)
	go func() {
		if err := healthServer.Start(ctx, logger); err != nil {
			logger.Errorf("health server failed: %v", err)
		}
	}()

	networks := map[string]api.Services{
		"mainnet": newNetworkServices(cfg.MainnetNodeURL, cfg.MainnetIndexURL, logger),
		"shasta":  newNetworkServices(cfg.ShastaNodeURL, cfg.ShastaIndexURL, logger),
	}

	server := api.NewServer(networks, cfg.TxListLimit, logger)

	go func() {
		sig := <-graceful.MakeSigintChan()
		logger.Infof("received exit signal: %v", sig)
		cancel()
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Stop(shutdownCtx); err != nil {
			logger.Errorf("failed to stop api server: %v", err)
		}
	}()

	if err := server.Start(net.JoinHostPort(cfg.Host, cfg.Port)); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

// newNetworkServices wires one network's gateway handles into its service
// set. Handles are built once and live for the process lifetime.
func newNetworkServices(nodeURL, indexURL string, logger *logrus.Logger) api.Services {
	node := tron.NewClient(nodeURL)
	index := trongrid.NewClient(indexURL)

	return api.Services{
		Account:     account.NewService(node, index, logger),
		Token:       token.NewInspector(node, logger),
		Transaction: transaction.NewService(node, index, logger),
	}
}
