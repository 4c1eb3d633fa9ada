package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"github.com/tournevent/commerce-ups/pkg/shipper/ups"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// UPS
	UPSEnabled       bool          `envconfig:"UPS_ENABLED" default:"true"`
	UPSAccessKey     string        `envconfig:"UPS_ACCESS_KEY"`
	UPSUserID        string        `envconfig:"UPS_USER_ID"`
	UPSPassword      string        `envconfig:"UPS_PASSWORD"`
	UPSAccountNumber string        `envconfig:"UPS_ACCOUNT_NUMBER"`
	UPSMode          string        `envconfig:"UPS_MODE" default:"test"`
	UPSRateType      string        `envconfig:"UPS_RATE_TYPE" default:"standard"`
	UPSServices      []string      `envconfig:"UPS_SERVICES"`
	UPSLogRequest    bool          `envconfig:"UPS_LOG_REQUEST" default:"false"`
	UPSLogResponse   bool          `envconfig:"UPS_LOG_RESPONSE" default:"false"`
	UPSTimeout       time.Duration `envconfig:"UPS_TIMEOUT" default:"15s"`
	UPSTestBaseURL   string        `envconfig:"UPS_TEST_BASE_URL" default:"https://wwwcie.ups.com"`
	UPSLiveBaseURL   string        `envconfig:"UPS_LIVE_BASE_URL" default:"https://onlinetools.ups.com"`
	UPSUseMock       bool          `envconfig:"UPS_USE_MOCK" default:"false"`

	// Default package type, used when a shipment has none
	PackageLength     float64 `envconfig:"UPS_PACKAGE_LENGTH" default:"0"`
	PackageWidth      float64 `envconfig:"UPS_PACKAGE_WIDTH" default:"0"`
	PackageHeight     float64 `envconfig:"UPS_PACKAGE_HEIGHT" default:"0"`
	PackageLengthUnit string  `envconfig:"UPS_PACKAGE_LENGTH_UNIT" default:"in"`
	PackageWeight     float64 `envconfig:"UPS_PACKAGE_WEIGHT" default:"0"`
	PackageWeightUnit string  `envconfig:"UPS_PACKAGE_WEIGHT_UNIT" default:"lb"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"commerce-ups"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// UPS builds the UPS shipping method configuration.
func (c *Config) UPS() ups.Config {
	cfg := ups.DefaultConfig()
	cfg.AccessKey = c.UPSAccessKey
	cfg.UserID = c.UPSUserID
	cfg.Password = c.UPSPassword
	cfg.AccountNumber = c.UPSAccountNumber
	cfg.Mode = c.UPSMode
	cfg.RateType = c.UPSRateType
	cfg.LogRequest = c.UPSLogRequest
	cfg.LogResponse = c.UPSLogResponse
	cfg.Timeout = c.UPSTimeout
	cfg.UseMock = c.UPSUseMock
	cfg.DefaultPackage = c.DefaultPackage()

	if len(c.UPSServices) > 0 {
		cfg.Services = c.UPSServices
	}

	if cfg.IntegrationMode() {
		cfg.BaseURL = c.UPSTestBaseURL
	} else {
		cfg.BaseURL = c.UPSLiveBaseURL
	}

	return cfg
}

// DefaultPackage returns the configured default package type, or the zero
// package type when no dimension or weight is set.
func (c *Config) DefaultPackage() shipper.PackageType {
	if c.PackageLength == 0 && c.PackageWidth == 0 && c.PackageHeight == 0 && c.PackageWeight == 0 {
		return shipper.PackageType{}
	}
	unit := shipper.LengthUnit(c.PackageLengthUnit)
	return shipper.PackageType{
		ID:     "default",
		Label:  "Default package",
		Length: shipper.NewLength(c.PackageLength, unit),
		Width:  shipper.NewLength(c.PackageWidth, unit),
		Height: shipper.NewLength(c.PackageHeight, unit),
		Weight: shipper.NewWeight(c.PackageWeight, shipper.WeightUnit(c.PackageWeightUnit)),
	}
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("ups.enabled", c.UPSEnabled),
		attribute.String("ups.mode", c.UPSMode),
		attribute.String("ups.rate_type", c.UPSRateType),
	}
}
