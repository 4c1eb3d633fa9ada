package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tournevent/commerce-ups/internal/server"
	"github.com/tournevent/commerce-ups/internal/telemetry"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "commerce-ups",
	Short:   "UPS shipping rates and transit times for checkout",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL server",
	RunE:  runServe,
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Look up UPS rates for a shipment file",
	RunE:  runRates,
}

var transitCmd = &cobra.Command{
	Use:   "transit",
	Short: "Look up UPS transit times for a shipment file",
	RunE:  runTransit,
}

var (
	shipmentFile string
	useMock      bool
)

func init() {
	for _, cmd := range []*cobra.Command{ratesCmd, transitCmd} {
		cmd.Flags().StringVar(&shipmentFile, "shipment", "", "path to a shipment JSON file")
		cmd.Flags().BoolVar(&useMock, "mock", false, "answer from the mock UPS API")
		cmd.MarkFlagRequired("shipment")
	}
	rootCmd.AddCommand(serveCmd, ratesCmd, transitCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(context.Background())
	}

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	registry, err := initShipperRegistry(cfg, logger, metrics)
	if err != nil {
		return err
	}

	logger.Info("Starting commerce-ups",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Int("carrier_count", registry.Count()),
		zap.Strings("carriers", registry.Names()),
	)

	srv := server.New(server.Config{Port: cfg.Port}, registry, logger, metrics)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runRates(cmd *cobra.Command, args []string) error {
	client, shipment, err := initLookup()
	if err != nil {
		return err
	}

	rates, err := client.CalculateRates(cmd.Context(), shipment)
	if err != nil {
		return err
	}
	return printJSON(cmd, rates)
}

func runTransit(cmd *cobra.Command, args []string) error {
	client, shipment, err := initLookup()
	if err != nil {
		return err
	}

	estimates, err := client.TransitTime(cmd.Context(), shipment)
	if err != nil {
		return err
	}
	return printJSON(cmd, estimates)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
