package graphql

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

func strPtr(s string) *string { return &s }

func TestAddressInputToModel(t *testing.T) {
	input := &AddressInput{
		GivenName:          strPtr("Ada"),
		FamilyName:         strPtr("Lovelace"),
		Line1:              strPtr("1 Infinite Loop"),
		Line2:              strPtr("Suite 2"),
		Locality:           strPtr("Cupertino"),
		AdministrativeArea: strPtr("CA"),
		PostalCode:         strPtr("95014"),
		CountryCode:        strPtr("US"),
	}

	result := addressInputToModel(input)

	assert.Equal(t, "Ada Lovelace", result.FullName())
	assert.Equal(t, "1 Infinite Loop", result.Line1)
	assert.Equal(t, "Suite 2", result.Line2)
	assert.Equal(t, "Cupertino", result.Locality)
	assert.Equal(t, "CA", result.AdministrativeArea)
	assert.Equal(t, "95014", result.PostalCode)
	assert.Equal(t, "US", result.CountryCode)
	assert.Empty(t, result.Organization)
}

func TestAddressInputToModel_Nil(t *testing.T) {
	assert.Equal(t, shipper.Address{}, addressInputToModel(nil))
}

func TestShipmentInputToModel(t *testing.T) {
	input := &ShipmentInput{
		ID:              strPtr("shp_1"),
		OrderID:         strPtr("ord_1"),
		ShippingAddress: &AddressInput{Locality: strPtr("Austin"), PostalCode: strPtr("78701")},
		Store: &StoreInput{
			Name:    strPtr("Corner Shop"),
			Address: &AddressInput{Locality: strPtr("Dallas"), CountryCode: strPtr("US")},
		},
		Subtotal: &MoneyInput{Number: "120.50", CurrencyCode: "USD"},
		PackageType: &PackageTypeInput{
			Length: &LengthInput{Number: "12", Unit: "in"},
			Width:  &LengthInput{Number: "8", Unit: "in"},
			Height: &LengthInput{Number: "4", Unit: "in"},
			Weight: &WeightInput{Number: "1.5", Unit: "lb"},
		},
		Weight: &WeightInput{Number: "3", Unit: "lb"},
	}

	shipment, err := shipmentInputToModel(input)
	require.NoError(t, err)

	assert.Equal(t, "shp_1", shipment.ID)
	assert.Equal(t, "ord_1", shipment.Order.ID)
	assert.Equal(t, "Corner Shop", shipment.Order.Store.Name)
	assert.Equal(t, "Dallas", shipment.Order.Store.Address.Locality)
	assert.Equal(t, "120.50 USD", shipment.Order.Subtotal.String())
	assert.True(t, shipment.PackageType.Length.Number.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, shipper.LengthIN, shipment.PackageType.Height.Unit)
	assert.Equal(t, shipper.WeightLB, shipment.Weight.Unit)
	assert.True(t, shipment.Weight.Number.Equal(decimal.NewFromInt(3)))
}

func TestShipmentInputToModel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   *ShipmentInput
		wantErr string
	}{
		{
			name:    "nil shipment",
			input:   nil,
			wantErr: "shipment is required",
		},
		{
			name: "bad subtotal",
			input: &ShipmentInput{
				Subtotal: &MoneyInput{Number: "lots", CurrencyCode: "USD"},
			},
			wantErr: `subtotal: invalid number "lots"`,
		},
		{
			name: "bad package width",
			input: &ShipmentInput{
				PackageType: &PackageTypeInput{Width: &LengthInput{Number: "wide", Unit: "in"}},
			},
			wantErr: `packageType.width: invalid number "wide"`,
		},
		{
			name:    "bad weight",
			input:   &ShipmentInput{Weight: &WeightInput{Number: "", Unit: "lb"}},
			wantErr: `weight: invalid number ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shipmentInputToModel(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestRateToGraphQL(t *testing.T) {
	rate := shipper.Rate{
		ID:      "03",
		Service: shipper.ShippingService{ID: "03", Label: "UPS Ground"},
		Amount:  shipper.Money{Number: decimal.RequireFromString("13.5"), CurrencyCode: "USD"},
	}

	result := rateToGraphQL(rate)

	assert.Equal(t, "03", result.ID)
	assert.Equal(t, "UPS Ground", result.Service.Label)
	assert.Equal(t, "13.50", result.Amount.Number)
	assert.Equal(t, "USD", result.Amount.CurrencyCode)
}

func TestTransitEstimateToGraphQL(t *testing.T) {
	arrival := time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC)

	result := transitEstimateToGraphQL(shipper.TransitEstimate{
		ServiceCode:  "1DA",
		Description:  "UPS Next Day Air",
		BusinessDays: 1,
		ArrivalDate:  &arrival,
		Guaranteed:   true,
	})

	require.NotNil(t, result.ArrivalDate)
	assert.Equal(t, "2026-03-12T10:30:00Z", *result.ArrivalDate)
	assert.Equal(t, 1, result.BusinessDays)
	assert.True(t, result.Guaranteed)

	noDate := transitEstimateToGraphQL(shipper.TransitEstimate{ServiceCode: "GND"})
	assert.Nil(t, noDate.ArrivalDate)
}

func TestErrorsToGraphQL(t *testing.T) {
	assert.Nil(t, errorsToGraphQL(nil))

	errs := []error{
		shipper.NewShipperError("ups", "AUTH_FAILED", "bad credentials"),
		fmt.Errorf("lookup: %w", shipper.ErrShipmentNotProvided),
		fmt.Errorf("lookup: %w", shipper.ErrCarrierNotFound),
		errors.New("boom"),
	}

	result := errorsToGraphQL(errs)
	require.Len(t, result, 4)
	assert.Equal(t, "AUTH_FAILED", result[0].Code)
	assert.Equal(t, "SHIPMENT_NOT_PROVIDED", result[1].Code)
	assert.Equal(t, "CARRIER_NOT_FOUND", result[2].Code)
	assert.Equal(t, "CARRIER_ERROR", result[3].Code)
	assert.Equal(t, "boom", result[3].Message)
}

func TestDecodeShipment(t *testing.T) {
	doc := `{
		"id": "shp_9",
		"shippingAddress": {"locality": "Austin", "postalCode": "78701", "countryCode": "US"},
		"store": {"name": "Corner Shop", "address": {"locality": "Dallas", "countryCode": "US"}},
		"weight": {"number": "4.25", "unit": "kg"}
	}`

	shipment, err := DecodeShipment(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "shp_9", shipment.ID)
	assert.Equal(t, "Austin", shipment.ShippingAddress.Locality)
	assert.Equal(t, shipper.WeightKG, shipment.Weight.Unit)
	assert.Equal(t, "4.25", shipment.Weight.Number.String())

	_, err = DecodeShipment(strings.NewReader("[]"))
	assert.Error(t, err)
}
