package ups

import (
	"fmt"

	"github.com/tournevent/commerce-ups/pkg/shipper"
)

// MapRates translates rated shipments into storefront rates, keeping only
// enabled services, in carrier order. Entries whose amount cannot be parsed
// are skipped and reported in the returned error slice.
func MapRates(resp *RateResponse, enabled map[string]struct{}) ([]shipper.Rate, []error) {
	if resp == nil || len(resp.RatedShipment) == 0 {
		return []shipper.Rate{}, nil
	}

	rates := make([]shipper.Rate, 0, len(resp.RatedShipment))
	var skipped []error

	for _, rated := range resp.RatedShipment {
		code := rated.Service.Code
		if _, ok := enabled[code]; !ok {
			continue
		}

		amount, err := shipper.NewMoney(rated.TotalCharges.MonetaryValue, rated.TotalCharges.CurrencyCode)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("service %s: invalid monetary value %q: %w",
				code, rated.TotalCharges.MonetaryValue, err))
			continue
		}

		service := shipper.ShippingService{
			ID:    code,
			Label: serviceName(rated.Service),
		}
		rates = append(rates, shipper.Rate{
			ID:      code,
			Service: service,
			Amount:  amount,
		})
	}

	return rates, skipped
}

func serviceName(service CodeDescription) string {
	if label := ServiceLabel(service.Code); label != "" {
		return label
	}
	if service.Description != "" {
		return service.Description
	}
	return service.Code
}
