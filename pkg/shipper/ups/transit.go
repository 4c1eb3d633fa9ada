package ups

import (
	"strconv"
	"time"

	"github.com/tournevent/commerce-ups/pkg/shipper"
)

const (
	// TransitDestinationCountry is the destination country sent with every
	// time-in-transit request. The transit lookup is only offered for
	// domestic US destinations.
	TransitDestinationCountry = "US"

	// PickupOffsetDays is how far ahead of now the pickup date is placed.
	PickupOffsetDays = 8

	// RequestOptionTransit is the request option of the time-in-transit service.
	RequestOptionTransit = "TNT"

	// PickupDateLayout is the date layout of the transit service.
	PickupDateLayout = "20060102"

	arrivalLayout = "20060102150405"
)

// BuildTransitRequest assembles a time-in-transit request. The package count
// is taken from the carrier shipment already built for rating.
func BuildTransitRequest(shipment *shipper.Shipment, built *Shipment, now time.Time) *TimeInTransitRequest {
	origin := shipment.Order.Store.Address

	weight := shipment.Weight
	if weight.IsZero() {
		weight = shipment.PackageType.Weight
	}
	value, unit := NormalizeWeight(weight.Number, weight.Unit)

	packages := 0
	if built != nil {
		packages = len(built.Package)
	}

	subtotal := shipment.Order.Subtotal

	return &TimeInTransitRequest{
		Request: RequestHeader{RequestOption: RequestOptionTransit},
		ShipFrom: TransitParty{
			Address: TransitAddress(origin, origin.CountryCode),
		},
		ShipTo: TransitParty{
			Address: TransitAddress(shipment.ShippingAddress, TransitDestinationCountry),
		},
		Pickup: Pickup{
			Date: now.AddDate(0, 0, PickupOffsetDays).Format(PickupDateLayout),
		},
		ShipmentWeight: PackageWeight{
			UnitOfMeasurement: CodeDescription{Code: UnitOfMeasureCode(string(unit))},
			Weight:            formatWeight(value),
		},
		TotalPackagesInShipment: strconv.Itoa(packages),
		InvoiceLineTotal: Charges{
			CurrencyCode:  subtotal.CurrencyCode,
			MonetaryValue: subtotal.Number.StringFixed(2),
		},
	}
}

// MapTransit translates service summaries into transit estimates, in
// carrier order.
func MapTransit(resp *TimeInTransitResponse) []shipper.TransitEstimate {
	if resp == nil {
		return []shipper.TransitEstimate{}
	}

	summaries := resp.TransitResponse.ServiceSummary
	estimates := make([]shipper.TransitEstimate, 0, len(summaries))
	for _, s := range summaries {
		days, _ := strconv.Atoi(s.EstimatedArrival.BusinessDaysInTransit)
		estimates = append(estimates, shipper.TransitEstimate{
			ServiceCode:  s.Service.Code,
			Description:  s.Service.Description,
			BusinessDays: days,
			ArrivalDate:  parseArrival(s.EstimatedArrival.Arrival),
			Guaranteed:   s.Guaranteed.Code == "Y",
		})
	}
	return estimates
}

func parseArrival(a Arrival) *time.Time {
	if a.Date == "" {
		return nil
	}
	if a.Time != "" {
		if t, err := time.Parse(arrivalLayout, a.Date+a.Time); err == nil {
			return &t
		}
	}
	if t, err := time.Parse(PickupDateLayout, a.Date); err == nil {
		return &t
	}
	return nil
}
