package ups

import (
	"context"
	"sync"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	mu          sync.Mutex
	lastRate    *RateRequest
	lastTransit *TimeInTransitRequest

	OnShopRates     func(ctx context.Context, req *RateRequest) (*RateResponse, error)
	OnTimeInTransit func(ctx context.Context, req *TimeInTransitRequest) (*TimeInTransitResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// LastRateRequest returns the most recent rate request received.
func (m *MockAPIClient) LastRateRequest() *RateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRate
}

// LastTransitRequest returns the most recent time-in-transit request received.
func (m *MockAPIClient) LastTransitRequest() *TimeInTransitRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTransit
}

// wait sleeps for the simulated latency or until ctx is done.
func (m *MockAPIClient) wait(ctx context.Context) error {
	if m.SimulateLatency <= 0 {
		return nil
	}
	select {
	case <-time.After(m.SimulateLatency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShopRates returns mock rates for three service levels.
func (m *MockAPIClient) ShopRates(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	m.mu.Lock()
	m.lastRate = req
	m.mu.Unlock()
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Description: "Simulated API error"}
	}

	if m.OnShopRates != nil {
		return m.OnShopRates(ctx, req)
	}

	return &RateResponse{
		Response: ResponseHeader{
			ResponseStatus: ResponseStatus{Code: "1", Description: "Success"},
		},
		RatedShipment: oneOrMany[RatedShipment]{
			{
				Service:      CodeDescription{Code: "01"},
				TotalCharges: Charges{CurrencyCode: "USD", MonetaryValue: "48.62"},
			},
			{
				Service:      CodeDescription{Code: "03"},
				TotalCharges: Charges{CurrencyCode: "USD", MonetaryValue: "13.29"},
			},
			{
				Service:      CodeDescription{Code: "12"},
				TotalCharges: Charges{CurrencyCode: "USD", MonetaryValue: "22.05"},
			},
		},
	}, nil
}

// TimeInTransit returns mock estimates counted from the requested pickup date.
func (m *MockAPIClient) TimeInTransit(ctx context.Context, req *TimeInTransitRequest) (*TimeInTransitResponse, error) {
	m.mu.Lock()
	m.lastTransit = req
	m.mu.Unlock()
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Description: "Simulated API error"}
	}

	if m.OnTimeInTransit != nil {
		return m.OnTimeInTransit(ctx, req)
	}

	pickup, err := time.Parse(PickupDateLayout, req.Pickup.Date)
	if err != nil {
		pickup = time.Now()
	}
	arrival := func(days int) Arrival {
		return Arrival{Date: pickup.AddDate(0, 0, days).Format(PickupDateLayout), Time: "230000"}
	}

	return &TimeInTransitResponse{
		Response: ResponseHeader{
			ResponseStatus: ResponseStatus{Code: "1", Description: "Success"},
		},
		TransitResponse: TransitResponse{
			PickupDate: req.Pickup.Date,
			ServiceSummary: oneOrMany[ServiceSummary]{
				{
					Service:          CodeDescription{Code: "1DA", Description: "UPS Next Day Air"},
					Guaranteed:       CodeDescription{Code: "Y"},
					EstimatedArrival: EstimatedArrival{Arrival: arrival(1), BusinessDaysInTransit: "1"},
				},
				{
					Service:          CodeDescription{Code: "3DS", Description: "UPS Three Day Select"},
					Guaranteed:       CodeDescription{Code: "Y"},
					EstimatedArrival: EstimatedArrival{Arrival: arrival(3), BusinessDaysInTransit: "3"},
				},
				{
					Service:          CodeDescription{Code: "GND", Description: "UPS Ground"},
					Guaranteed:       CodeDescription{Code: "N"},
					EstimatedArrival: EstimatedArrival{Arrival: arrival(5), BusinessDaysInTransit: "5"},
				},
			},
		},
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
