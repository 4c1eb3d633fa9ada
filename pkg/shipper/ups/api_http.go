package ups

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// UPS API hosts. Test mode uses the customer integration environment.
const (
	TestBaseURL = "https://wwwcie.ups.com"
	LiveBaseURL = "https://onlinetools.ups.com"

	ratePath    = "/rest/Rate"
	transitPath = "/rest/TimeInTransit"
)

// HTTPAPIClient is the production implementation of APIClient using HTTP.
type HTTPAPIClient struct {
	baseURL     string
	credentials Credentials
	httpClient  *http.Client
	logger      *otelzap.Logger
	logRequest  bool
	logResponse bool
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL     string
	Credentials Credentials
	Timeout     time.Duration
	Logger      *otelzap.Logger
	LogRequest  bool // log outgoing payloads, without credentials
	LogResponse bool // log raw response bodies
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = TestBaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}

	return &HTTPAPIClient{
		baseURL:     baseURL,
		credentials: cfg.Credentials,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:      logger,
		logRequest:  cfg.LogRequest,
		logResponse: cfg.LogResponse,
	}
}

type rateEnvelope struct {
	UPSSecurity Security     `json:"UPSSecurity"`
	RateRequest *RateRequest `json:"RateRequest"`
}

type rateResult struct {
	RateResponse *RateResponse `json:"RateResponse"`
	Fault        *Fault        `json:"Fault"`
}

type transitEnvelope struct {
	UPSSecurity          Security              `json:"UPSSecurity"`
	TimeInTransitRequest *TimeInTransitRequest `json:"TimeInTransitRequest"`
}

type transitResult struct {
	TimeInTransitResponse *TimeInTransitResponse `json:"TimeInTransitResponse"`
	Fault                 *Fault                 `json:"Fault"`
}

// ShopRates requests rates for all service levels.
func (c *HTTPAPIClient) ShopRates(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	c.logPayload(ctx, "UPS rate request", req)

	body, status, err := c.doRequest(ctx, ratePath, rateEnvelope{
		UPSSecurity: securityFor(c.credentials),
		RateRequest: req,
	})
	if err != nil {
		return nil, err
	}

	var result rateResult
	if err := json.Unmarshal(body, &result); err != nil {
		if status != http.StatusOK {
			return nil, c.parseError(status, body)
		}
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if result.Fault != nil {
		return nil, result.Fault.apiError(status)
	}
	if status != http.StatusOK || result.RateResponse == nil {
		return nil, c.parseError(status, body)
	}

	return result.RateResponse, nil
}

// TimeInTransit requests delivery time estimates.
func (c *HTTPAPIClient) TimeInTransit(ctx context.Context, req *TimeInTransitRequest) (*TimeInTransitResponse, error) {
	c.logPayload(ctx, "UPS time in transit request", req)

	body, status, err := c.doRequest(ctx, transitPath, transitEnvelope{
		UPSSecurity:          securityFor(c.credentials),
		TimeInTransitRequest: req,
	})
	if err != nil {
		return nil, err
	}

	var result transitResult
	if err := json.Unmarshal(body, &result); err != nil {
		if status != http.StatusOK {
			return nil, c.parseError(status, body)
		}
		return nil, fmt.Errorf("failed to decode time in transit response: %w", err)
	}
	if result.Fault != nil {
		return nil, result.Fault.apiError(status)
	}
	if status != http.StatusOK || result.TimeInTransitResponse == nil {
		return nil, c.parseError(status, body)
	}

	return result.TimeInTransitResponse, nil
}

// doRequest posts a JSON envelope and returns the raw response body.
func (c *HTTPAPIClient) doRequest(ctx context.Context, path string, envelope interface{}) ([]byte, int, error) {
	jsonBody, err := json.Marshal(envelope)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "commerce-ups/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.logResponse {
		c.logger.Ctx(ctx).Info("UPS response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
	}

	return body, resp.StatusCode, nil
}

func (c *HTTPAPIClient) logPayload(ctx context.Context, msg string, payload interface{}) {
	if !c.logRequest {
		return
	}
	c.logger.Ctx(ctx).Info(msg, zap.Any("payload", payload))
}

// parseError extracts error information from a failed response.
func (c *HTTPAPIClient) parseError(status int, body []byte) error {
	var fault struct {
		Fault *Fault `json:"Fault"`
	}
	if err := json.Unmarshal(body, &fault); err == nil && fault.Fault != nil {
		return fault.Fault.apiError(status)
	}

	// Try to parse as a simple error message
	var simpleErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &simpleErr); err == nil {
		msg := simpleErr.Error
		if msg == "" {
			msg = simpleErr.Message
		}
		if msg != "" {
			return &APIError{
				Code:        fmt.Sprintf("HTTP_%d", status),
				Description: msg,
				StatusCode:  status,
			}
		}
	}

	return &APIError{
		Code:        fmt.Sprintf("HTTP_%d", status),
		Description: string(body),
		StatusCode:  status,
	}
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
