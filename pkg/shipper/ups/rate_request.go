package ups

import (
	"github.com/shopspring/decimal"
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

const (
	// RequestOptionShop rates every available service in one call.
	RequestOptionShop = "Shop"

	// PackagingCustomerSupplied is the UPS packaging code for merchant boxes.
	PackagingCustomerSupplied = "02"

	// measurementPlaces is the number of decimals sent for dimensions and weights.
	measurementPlaces = 2
)

// minimumWeight is the lightest weight UPS rates, in either pounds or kilograms.
var minimumWeight = decimal.New(1, -1)

// RateRequestContext carries what a rate lookup needs beyond the shipment.
// It is built once per configuration.
type RateRequestContext struct {
	Credentials     Credentials
	AccountNumber   string
	TestMode        bool
	NegotiatedRates bool
	EnabledServices map[string]struct{}
}

// ServiceEnabled reports whether a carrier service code is enabled.
func (rc RateRequestContext) ServiceEnabled(code string) bool {
	_, ok := rc.EnabledServices[code]
	return ok
}

// BuildRateRequest assembles a rate-shop request for a single-package
// shipment. The caller must ensure the shipment has a destination address.
func BuildRateRequest(shipment *shipper.Shipment, rc RateRequestContext) *RateRequest {
	store := shipment.Order.Store

	req := &RateRequest{
		Request: RequestHeader{RequestOption: RequestOptionShop},
		Shipment: Shipment{
			Shipper:  ShipperParty(store, rc.AccountNumber),
			ShipTo:   ShipTo(shipment.ShippingAddress),
			ShipFrom: ShipFrom(store),
			Package:  []Package{BuildPackage(shipment.PackageType)},
		},
	}
	if shipment.ID != "" {
		req.Request.TransactionReference = &TransactionReference{CustomerContext: shipment.ID}
	}

	if rc.NegotiatedRates {
		req.Shipment.RateInformation = &RateInformation{
			NegotiatedRatesIndicator: true,
			RateChartIndicator:       false,
		}
	}

	return req
}

// BuildPackage normalizes a package type into a UPS package. Dimensions and
// weight carry their own unit codes, which may differ.
func BuildPackage(pt shipper.PackageType) Package {
	n := NormalizePackage(pt)

	return Package{
		PackagingType: CodeDescription{Code: PackagingCustomerSupplied},
		Dimensions: Dimensions{
			UnitOfMeasurement: CodeDescription{Code: UnitOfMeasureCode(string(n.LengthUnit))},
			Length:            formatMeasurement(n.Length),
			Width:             formatMeasurement(n.Width),
			Height:            formatMeasurement(n.Height),
		},
		PackageWeight: PackageWeight{
			UnitOfMeasurement: CodeDescription{Code: UnitOfMeasureCode(string(n.WeightUnit))},
			Weight:            formatWeight(n.Weight),
		},
	}
}

func formatMeasurement(d decimal.Decimal) string {
	return d.Round(measurementPlaces).String()
}

// formatWeight rounds like formatMeasurement but never lets a positive
// weight drop below minimumWeight.
func formatWeight(d decimal.Decimal) string {
	rounded := d.Round(measurementPlaces)
	if d.IsPositive() && rounded.LessThan(minimumWeight) {
		return minimumWeight.String()
	}
	return rounded.String()
}
