package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/larahfelipe/tronbridge/internal/logging"
)

type config struct {
	Host        string            `envconfig:"HOST" default:"0.0.0.0"`
	Port        string            `envconfig:"PORT" default:"8080"`
	LogFormat   logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	HealthPort  string            `envconfig:"HEALTH_PORT" default:"8081"`
	MetricsPort string            `envconfig:"METRICS_PORT" default:"9090"`

	// TxListLimit is the transaction listing size applied when the request
	// carries no explicit limit.
	TxListLimit int `envconfig:"TX_LIST_LIMIT" default:"5"`

	MainnetNodeURL  string `envconfig:"MAINNET_NODE_URL" default:"https://api.trongrid.io"`
	MainnetIndexURL string `envconfig:"MAINNET_INDEX_URL" default:"https://api.trongrid.io"`
	ShastaNodeURL   string `envconfig:"SHASTA_NODE_URL" default:"https://api.shasta.trongrid.io"`
	ShastaIndexURL  string `envconfig:"SHASTA_INDEX_URL" default:"https://api.shasta.trongrid.io"`
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
