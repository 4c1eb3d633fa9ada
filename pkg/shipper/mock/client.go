// Package mock provides a mock shipper implementation for testing.
package mock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

// Client is a mock shipper for testing.
type Client struct {
	name string

	// Calls counts CalculateRates invocations.
	Calls int

	OnCalculateRates func(ctx context.Context, shipment *shipper.Shipment) ([]shipper.Rate, error)
	OnTransitTime    func(ctx context.Context, shipment *shipper.Shipment) ([]shipper.TransitEstimate, error)
}

// New creates a new mock shipper.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the shipper name.
func (c *Client) Name() string {
	return c.name
}

// Services returns two canned services.
func (c *Client) Services() []shipper.ShippingService {
	return []shipper.ShippingService{
		{ID: "01", Label: c.name + " Next Day"},
		{ID: "03", Label: c.name + " Ground"},
	}
}

// CalculateRates returns canned rates, or none when the shipment has no destination.
func (c *Client) CalculateRates(ctx context.Context, shipment *shipper.Shipment) ([]shipper.Rate, error) {
	c.Calls++
	if c.OnCalculateRates != nil {
		return c.OnCalculateRates(ctx, shipment)
	}
	if shipment == nil {
		return nil, shipper.ErrShipmentNotProvided
	}
	if shipment.ShippingAddress.IsEmpty() {
		return []shipper.Rate{}, nil
	}

	services := c.Services()
	return []shipper.Rate{
		{
			ID:      services[0].ID,
			Service: services[0],
			Amount:  shipper.Money{Number: decimal.RequireFromString("42.10"), CurrencyCode: "USD"},
		},
		{
			ID:      services[1].ID,
			Service: services[1],
			Amount:  shipper.Money{Number: decimal.RequireFromString("12.75"), CurrencyCode: "USD"},
		},
	}, nil
}

// TransitTime returns canned transit estimates.
func (c *Client) TransitTime(ctx context.Context, shipment *shipper.Shipment) ([]shipper.TransitEstimate, error) {
	if c.OnTransitTime != nil {
		return c.OnTransitTime(ctx, shipment)
	}
	if shipment == nil {
		return nil, shipper.ErrShipmentNotProvided
	}

	now := time.Now()
	nextDay := now.AddDate(0, 0, 1)
	ground := now.AddDate(0, 0, 5)
	return []shipper.TransitEstimate{
		{ServiceCode: "1DA", Description: c.name + " Next Day", BusinessDays: 1, ArrivalDate: &nextDay, Guaranteed: true},
		{ServiceCode: "GND", Description: c.name + " Ground", BusinessDays: 5, ArrivalDate: &ground},
	}, nil
}

var _ shipper.Shipper = (*Client)(nil)
