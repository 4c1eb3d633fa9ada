package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tournevent/commerce-ups/internal/config"
	"github.com/tournevent/commerce-ups/internal/graphql"
	"github.com/tournevent/commerce-ups/internal/telemetry"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"github.com/tournevent/commerce-ups/pkg/shipper/ups"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.Attributes())
	return shutdown, err
}

func newUPSClient(cfg *config.Config, logger *otelzap.Logger) (*ups.Client, error) {
	upsCfg := cfg.UPS()
	if err := upsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid UPS configuration: %w", err)
	}
	return ups.New(upsCfg, logger, otel.Tracer(cfg.ServiceName)), nil
}

func initShipperRegistry(cfg *config.Config, logger *otelzap.Logger, metrics *telemetry.Metrics) (*shipper.Registry, error) {
	registry := shipper.NewRegistry()

	if cfg.UPSEnabled {
		client, err := newUPSClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		registry.Register(client.WithMetrics(metrics))
	}

	return registry, nil
}

// initLookup prepares a UPS client and the shipment for the one-shot commands.
func initLookup() (*ups.Client, *shipper.Shipment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if useMock {
		cfg.UPSUseMock = true
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	client, err := newUPSClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	shipment, err := readShipment(shipmentFile)
	if err != nil {
		return nil, nil, err
	}
	return client, shipment, nil
}

// readShipment loads a shipment file shaped like the GraphQL ShipmentInput.
func readShipment(path string) (*shipper.Shipment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shipment file: %w", err)
	}
	defer f.Close()

	return graphql.DecodeShipment(f)
}
