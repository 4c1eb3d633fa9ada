package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

var errShipmentRequired = errors.New("shipment is required")

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func addressInputToModel(input *AddressInput) shipper.Address {
	if input == nil {
		return shipper.Address{}
	}
	return shipper.Address{
		GivenName:          deref(input.GivenName),
		FamilyName:         deref(input.FamilyName),
		Organization:       deref(input.Organization),
		Line1:              deref(input.Line1),
		Line2:              deref(input.Line2),
		Locality:           deref(input.Locality),
		DependentLocality:  deref(input.DependentLocality),
		AdministrativeArea: deref(input.AdministrativeArea),
		PostalCode:         deref(input.PostalCode),
		CountryCode:        deref(input.CountryCode),
	}
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid number %q", field, s)
	}
	return d, nil
}

func lengthInputToModel(field string, input *LengthInput) (shipper.Length, error) {
	if input == nil {
		return shipper.Length{}, nil
	}
	n, err := parseDecimal(field, input.Number)
	if err != nil {
		return shipper.Length{}, err
	}
	return shipper.Length{Number: n, Unit: shipper.LengthUnit(input.Unit)}, nil
}

func weightInputToModel(field string, input *WeightInput) (shipper.Weight, error) {
	if input == nil {
		return shipper.Weight{}, nil
	}
	n, err := parseDecimal(field, input.Number)
	if err != nil {
		return shipper.Weight{}, err
	}
	return shipper.Weight{Number: n, Unit: shipper.WeightUnit(input.Unit)}, nil
}

func packageTypeInputToModel(input *PackageTypeInput) (shipper.PackageType, error) {
	if input == nil {
		return shipper.PackageType{}, nil
	}

	pt := shipper.PackageType{ID: deref(input.ID), Label: deref(input.Label)}
	var err error
	if pt.Length, err = lengthInputToModel("packageType.length", input.Length); err != nil {
		return pt, err
	}
	if pt.Width, err = lengthInputToModel("packageType.width", input.Width); err != nil {
		return pt, err
	}
	if pt.Height, err = lengthInputToModel("packageType.height", input.Height); err != nil {
		return pt, err
	}
	if pt.Weight, err = weightInputToModel("packageType.weight", input.Weight); err != nil {
		return pt, err
	}
	return pt, nil
}

func shipmentInputToModel(input *ShipmentInput) (*shipper.Shipment, error) {
	if input == nil {
		return nil, errShipmentRequired
	}

	shipment := &shipper.Shipment{
		ID:              deref(input.ID),
		ShippingAddress: addressInputToModel(input.ShippingAddress),
		Order:           shipper.Order{ID: deref(input.OrderID)},
	}

	if input.Store != nil {
		shipment.Order.Store = shipper.Store{
			ID:      deref(input.Store.ID),
			Name:    deref(input.Store.Name),
			Address: addressInputToModel(input.Store.Address),
		}
	}

	if input.Subtotal != nil {
		subtotal, err := shipper.NewMoney(input.Subtotal.Number, input.Subtotal.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("subtotal: invalid number %q", input.Subtotal.Number)
		}
		shipment.Order.Subtotal = subtotal
	}

	var err error
	if shipment.PackageType, err = packageTypeInputToModel(input.PackageType); err != nil {
		return nil, err
	}
	if shipment.Weight, err = weightInputToModel("weight", input.Weight); err != nil {
		return nil, err
	}

	return shipment, nil
}

// DecodeShipment reads a JSON document shaped like ShipmentInput.
func DecodeShipment(r io.Reader) (*shipper.Shipment, error) {
	var input ShipmentInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, fmt.Errorf("decoding shipment: %w", err)
	}
	return shipmentInputToModel(&input)
}

func servicesToGraphQL(services []shipper.ShippingService) []*ShippingService {
	result := make([]*ShippingService, len(services))
	for i, s := range services {
		result[i] = &ShippingService{ID: s.ID, Label: s.Label}
	}
	return result
}

func moneyToGraphQL(m shipper.Money) *Money {
	return &Money{
		Number:       m.Number.StringFixed(2),
		CurrencyCode: m.CurrencyCode,
	}
}

func rateToGraphQL(rate shipper.Rate) *Rate {
	return &Rate{
		ID:      rate.ID,
		Service: &ShippingService{ID: rate.Service.ID, Label: rate.Service.Label},
		Amount:  moneyToGraphQL(rate.Amount),
	}
}

func transitEstimateToGraphQL(e shipper.TransitEstimate) *TransitEstimate {
	var arrival *string
	if e.ArrivalDate != nil {
		s := e.ArrivalDate.Format(time.RFC3339)
		arrival = &s
	}
	return &TransitEstimate{
		ServiceCode:  e.ServiceCode,
		Description:  e.Description,
		BusinessDays: e.BusinessDays,
		ArrivalDate:  arrival,
		Guaranteed:   e.Guaranteed,
	}
}

func errorsToGraphQL(errs []error) []*Error {
	if len(errs) == 0 {
		return nil
	}
	result := make([]*Error, len(errs))
	for i, err := range errs {
		result[i] = &Error{
			Code:    errorCode(err),
			Message: err.Error(),
		}
	}
	return result
}

func errorCode(err error) string {
	var shipErr *shipper.ShipperError
	switch {
	case errors.As(err, &shipErr):
		return shipErr.Code
	case errors.Is(err, shipper.ErrShipmentNotProvided):
		return "SHIPMENT_NOT_PROVIDED"
	case errors.Is(err, shipper.ErrCarrierNotFound):
		return "CARRIER_NOT_FOUND"
	default:
		return "CARRIER_ERROR"
	}
}
