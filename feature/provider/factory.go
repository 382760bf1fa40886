package provider

import (
	"fmt"

	"order-reconciler/core/clock"
	"order-reconciler/core/httpclient"

	"go.uber.org/zap"
)

// New selects the provider variant once, at startup: the network client
// when cfg.Enabled is set and the in-memory simulation otherwise.
func New(cfg Config, clk clock.Clock, logger *zap.Logger) (Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled {
		logger.Info("Provider disabled, using simulated client")
		return NewSimulatedClient(), nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tlsCfg, err := httpclient.NewTLSConfig(cfg.CertPath, cfg.InsecureSkipVerify)
	if err != nil {
		return nil, fmt.Errorf("failed to configure provider TLS: %w", err)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Provider TLS verification disabled")
	}

	client := httpclient.NewClient(httpclient.Options{
		Timeout: cfg.Timeout(),
		TLS:     tlsCfg,
		Logger:  logger.Named("provider.http"),
	})

	logger.Info("Using provider portal", zap.String("url", cfg.URL))
	return NewPortalClient(cfg, client, clk, logger), nil
}
