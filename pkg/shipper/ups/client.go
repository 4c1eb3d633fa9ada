// Package ups provides integration with the UPS rating and time-in-transit APIs.
package ups

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const carrierName = "ups"

// Configuration values.
const (
	ModeTest = "test"
	ModeLive = "live"

	RateTypeStandard   = "standard"
	RateTypeNegotiated = "negotiated"

	// DefaultTimeout bounds a single carrier call.
	DefaultTimeout = 15 * time.Second
)

// Config holds UPS configuration.
type Config struct {
	AccessKey     string `validate:"required_if=UseMock false"`
	UserID        string `validate:"required_if=UseMock false"`
	Password      string `validate:"required_if=UseMock false"`
	AccountNumber string

	Mode     string `validate:"oneof=test live"`
	RateType string `validate:"oneof=standard negotiated"`

	// Services are the enabled service codes, with or without the "_" prefix.
	// Empty enables the whole catalogue.
	Services []string

	LogRequest  bool
	LogResponse bool

	Timeout time.Duration `validate:"gte=0"`
	BaseURL string        `validate:"omitempty,url"` // overrides the mode's host

	// DefaultPackage is used for shipments without a package type.
	DefaultPackage shipper.PackageType

	UseMock bool // When true, uses mock API client
}

// DefaultConfig returns the configuration defaults: test mode, standard rates,
// every service enabled and no payload logging.
func DefaultConfig() Config {
	return Config{
		Mode:     ModeTest,
		RateType: RateTypeStandard,
		Services: AllServiceCodes(),
		Timeout:  DefaultTimeout,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration before any request is built.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid ups configuration: %w", err)
	}
	if !c.DefaultPackage.IsZero() && c.DefaultPackage.Weight.IsZero() {
		return shipper.NewShipperError(carrierName, "ZERO_PACKAGE_WEIGHT",
			"The weight for a package type cannot be 0 for UPS").
			WithKind(shipper.ErrInvalidPackage)
	}
	return nil
}

// IsConfigured reports whether all API credentials are present.
// Mock mode needs none.
func (c Config) IsConfigured() bool {
	if c.UseMock {
		return true
	}
	return c.AccessKey != "" && c.UserID != "" && c.Password != ""
}

// IntegrationMode reports whether requests go to the test environment.
func (c Config) IntegrationMode() bool {
	return c.Mode != ModeLive
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.IntegrationMode() {
		return TestBaseURL
	}
	return LiveBaseURL
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// RateRequestContext derives the per-configuration request context.
func (c Config) RateRequestContext() RateRequestContext {
	services := c.Services
	if len(services) == 0 {
		services = AllServiceCodes()
	}
	return RateRequestContext{
		Credentials: Credentials{
			AccessKey: c.AccessKey,
			UserID:    c.UserID,
			Password:  c.Password,
		},
		AccountNumber:   c.AccountNumber,
		TestMode:        c.IntegrationMode(),
		NegotiatedRates: c.RateType == RateTypeNegotiated,
		EnabledServices: NormalizeServiceCodes(services),
	}
}

// Recorder receives lookup metrics.
type Recorder interface {
	RecordRequest(operation, carrier, status string, duration float64)
	RecordError(carrier, errorType string)
}

// Client is the UPS shipping method.
// It implements the shipper.Shipper interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	rc        RateRequestContext
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
	metrics   Recorder
	now       func() time.Time
}

// New creates a new UPS client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.baseURL(),
			Credentials: Credentials{
				AccessKey: cfg.AccessKey,
				UserID:    cfg.UserID,
				Password:  cfg.Password,
			},
			Timeout:     cfg.timeout(),
			Logger:      logger,
			LogRequest:  cfg.LogRequest,
			LogResponse: cfg.LogResponse,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new UPS client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(carrierName)
	}

	return &Client{
		config:    cfg,
		rc:        cfg.RateRequestContext(),
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
		now:       time.Now,
	}
}

// WithMetrics attaches a metrics recorder.
func (c *Client) WithMetrics(m Recorder) *Client {
	c.metrics = m
	return c
}

// WithClock replaces the clock used for pickup dates.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// Services returns the enabled services, in catalogue order.
func (c *Client) Services() []shipper.ShippingService {
	services := make([]shipper.ShippingService, 0, len(c.rc.EnabledServices))
	for _, s := range catalogue {
		if c.rc.ServiceEnabled(s.ID) {
			services = append(services, s)
		}
	}
	return services
}

// CalculateRates returns the UPS rates for a shipment. A shipment without a
// destination, a missing configuration or any carrier failure yields no rates.
func (c *Client) CalculateRates(ctx context.Context, shipment *shipper.Shipment) ([]shipper.Rate, error) {
	if shipment == nil {
		return nil, shipper.ErrShipmentNotProvided
	}

	ctx, span := c.tracer.Start(ctx, "ups.CalculateRates",
		trace.WithAttributes(attribute.String("shipment.id", shipment.ID)))
	defer span.End()

	if shipment.ShippingAddress.IsEmpty() {
		c.logger.Ctx(ctx).Debug("Shipment has no destination, skipping UPS rates",
			zap.String("shipment_id", shipment.ID))
		return []shipper.Rate{}, nil
	}

	if !c.config.IsConfigured() {
		c.logger.Ctx(ctx).Warn("UPS is not configured, no rates available")
		c.recordError(shipper.NewShipperError(carrierName, "NOT_CONFIGURED", "missing credentials").
			WithKind(shipper.ErrNotConfigured))
		return []shipper.Rate{}, nil
	}

	c.logger.Ctx(ctx).Info("Getting UPS rates",
		zap.String("shipment_id", shipment.ID),
		zap.String("destination_postal_code", shipment.ShippingAddress.PostalCode),
		zap.String("destination_country", shipment.ShippingAddress.CountryCode),
	)

	start := time.Now()
	req := BuildRateRequest(c.withDefaultPackage(shipment), c.rc)

	callCtx, cancel := context.WithTimeout(ctx, c.config.timeout())
	defer cancel()

	resp, err := c.apiClient.ShopRates(callCtx, req)
	if err != nil {
		c.fail(ctx, span, "rates", start, err)
		return []shipper.Rate{}, nil
	}

	rates, skipped := MapRates(resp, c.rc.EnabledServices)
	for _, skipErr := range skipped {
		c.logger.Ctx(ctx).Warn("Skipping UPS rate", zap.Error(skipErr))
	}

	span.SetAttributes(attribute.Int("rates.count", len(rates)))
	c.recordRequest("rates", "success", start)
	return rates, nil
}

// TransitTime returns UPS delivery estimates for a shipment. Carrier failures
// yield no estimates.
func (c *Client) TransitTime(ctx context.Context, shipment *shipper.Shipment) ([]shipper.TransitEstimate, error) {
	if shipment == nil {
		return nil, shipper.ErrShipmentNotProvided
	}

	ctx, span := c.tracer.Start(ctx, "ups.TransitTime",
		trace.WithAttributes(attribute.String("shipment.id", shipment.ID)))
	defer span.End()

	if shipment.ShippingAddress.IsEmpty() {
		return []shipper.TransitEstimate{}, nil
	}

	if !c.config.IsConfigured() {
		c.logger.Ctx(ctx).Warn("UPS is not configured, no transit estimates available")
		return []shipper.TransitEstimate{}, nil
	}

	c.logger.Ctx(ctx).Info("Getting UPS transit time",
		zap.String("shipment_id", shipment.ID),
		zap.String("destination_postal_code", shipment.ShippingAddress.PostalCode),
	)

	start := time.Now()
	shipment = c.withDefaultPackage(shipment)
	built := BuildRateRequest(shipment, c.rc)
	req := BuildTransitRequest(shipment, &built.Shipment, c.now())

	callCtx, cancel := context.WithTimeout(ctx, c.config.timeout())
	defer cancel()

	resp, err := c.apiClient.TimeInTransit(callCtx, req)
	if err != nil {
		c.fail(ctx, span, "transit", start, err)
		return []shipper.TransitEstimate{}, nil
	}

	estimates := MapTransit(resp)
	span.SetAttributes(attribute.Int("estimates.count", len(estimates)))
	c.recordRequest("transit", "success", start)
	return estimates, nil
}

func (c *Client) withDefaultPackage(shipment *shipper.Shipment) *shipper.Shipment {
	if !shipment.PackageType.IsZero() || c.config.DefaultPackage.IsZero() {
		return shipment
	}
	s := *shipment
	s.PackageType = c.config.DefaultPackage
	return &s
}

// fail absorbs a carrier failure: it is logged, traced and counted.
func (c *Client) fail(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	shipErr := ToShipperError(err)

	c.logger.Ctx(ctx).Error("UPS API error",
		zap.String("operation", operation),
		zap.String("error_type", shipErr.Type()),
		zap.Error(err),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, shipErr.Message)

	c.recordError(shipErr)
	c.recordRequest(operation, "error", start)
}

func (c *Client) recordRequest(operation, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordRequest(operation, carrierName, status, time.Since(start).Seconds())
}

func (c *Client) recordError(err *shipper.ShipperError) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordError(carrierName, err.Type())
}

// ============================================================================
// Error classification
// ============================================================================

// UPS error codes with a known meaning.
var (
	authErrorCodes    = map[string]bool{"250001": true, "250002": true, "250003": true, "250007": true}
	addressErrorCodes = map[string]bool{"111285": true, "111286": true, "111210": true, "111057": true}
	packageErrorCodes = map[string]bool{"111035": true, "111036": true, "111050": true, "111500": true}
)

// ToShipperError converts an APIClient error into a classified ShipperError.
func ToShipperError(err error) *shipper.ShipperError {
	var shipErr *shipper.ShipperError
	if errors.As(err, &shipErr) {
		return shipErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return shipper.NewShipperError(carrierName, "TIMEOUT", "carrier call timed out").
			WithKind(shipper.ErrServiceUnavailable).
			WithRetryable(true).
			WithCause(err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return shipper.NewShipperError(carrierName, "TRANSPORT", "carrier call failed").
			WithKind(shipper.ErrServiceUnavailable).
			WithRetryable(true).
			WithCause(err)
	}

	result := shipper.NewShipperError(carrierName, apiErr.Code, apiErr.Description).
		WithStatusCode(apiErr.StatusCode).
		WithCause(err)

	switch {
	case authErrorCodes[apiErr.Code] || apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
		result.WithKind(shipper.ErrAuthenticationFailed)
	case apiErr.StatusCode == 429:
		result.WithKind(shipper.ErrRateLimitExceeded).WithRetryable(true)
	case apiErr.StatusCode >= 500:
		result.WithKind(shipper.ErrServiceUnavailable).WithRetryable(true)
	case addressErrorCodes[apiErr.Code]:
		result.WithKind(shipper.ErrInvalidAddress)
	case packageErrorCodes[apiErr.Code]:
		result.WithKind(shipper.ErrInvalidPackage)
	}
	return result
}

// Ensure Client implements the shipper.Shipper interface
var _ shipper.Shipper = (*Client)(nil)
