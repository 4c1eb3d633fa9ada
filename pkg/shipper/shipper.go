// Package shipper provides the storefront-facing model and the abstraction
// shipping methods implement to offer rates at checkout.
package shipper

import (
	"context"
)

// Shipper defines the interface that all shipping methods must implement.
type Shipper interface {
	// Name returns the method identifier (e.g., "ups").
	Name() string

	// Services returns the service levels the method is able to quote.
	Services() []ShippingService

	// CalculateRates returns the rates for a shipment. Carrier failures
	// yield an empty slice rather than an error.
	CalculateRates(ctx context.Context, shipment *Shipment) ([]Rate, error)

	// TransitTime returns delivery time estimates for a shipment.
	TransitTime(ctx context.Context, shipment *Shipment) ([]TransitEstimate, error)
}
