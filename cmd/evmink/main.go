// evmink signs and batch-submits inscription mint transactions from one or
// more funded accounts to a single JSON-RPC endpoint. All input comes from
// the environment (and an optional .env file); see internal/config.
package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/gateway-fm/evmink/internal/campaign"
	"github.com/gateway-fm/evmink/internal/config"
	"github.com/gateway-fm/evmink/internal/logging"
	"github.com/gateway-fm/evmink/internal/metrics"
	"github.com/gateway-fm/evmink/internal/rpc"
)

func main() {
	// Missing .env is fine; the process environment may carry everything.
	_ = godotenv.Load()

	logger, err := logging.Setup()
	if err != nil {
		logrus.WithError(err).Fatal("logger setup failed")
	}

	logging.PrintBanner(logger)
	logger.Info("starting campaign run")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("configuration error")
	}

	m := metrics.New(nil)
	if cfg.MetricsAddr != "" {
		metrics.Serve(cfg.MetricsAddr, nil, logger)
	}

	clientCfg := rpc.DefaultClientConfig(cfg.RPCURL)
	clientCfg.Logger = logger
	client, err := rpc.New(clientCfg)
	if err != nil {
		logger.WithError(err).Fatal("endpoint connection failed")
	}
	defer client.Close()

	runner := campaign.NewRunner(client, m, logger)
	if err := runner.Run(context.Background(), cfg); err != nil {
		logger.WithError(err).Fatal("campaign failed")
	}

	logger.Info("campaign complete")
}
