package graphql_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/commerce-ups/internal/graphql"
	"github.com/tournevent/commerce-ups/internal/telemetry"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"github.com/tournevent/commerce-ups/pkg/shipper/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newTestResolver() (*graphql.Resolver, *mock.Client, *telemetry.Metrics) {
	carrier := mock.New("ups")
	registry := shipper.NewRegistry()
	registry.Register(carrier)

	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	resolver := graphql.NewResolver(registry, otelzap.New(zap.NewNop()), metrics)
	return resolver, carrier, metrics
}

func testLookupInput() graphql.LookupInput {
	return graphql.LookupInput{
		Shipment: &graphql.ShipmentInput{
			ID: strPtr("shp_1"),
			ShippingAddress: &graphql.AddressInput{
				GivenName:          strPtr("Ada"),
				FamilyName:         strPtr("Lovelace"),
				Line1:              strPtr("500 Congress Ave"),
				Locality:           strPtr("Austin"),
				AdministrativeArea: strPtr("TX"),
				PostalCode:         strPtr("78701"),
				CountryCode:        strPtr("US"),
			},
			Store: &graphql.StoreInput{
				Name: strPtr("Corner Shop"),
				Address: &graphql.AddressInput{
					Line1:       strPtr("1 Elm St"),
					Locality:    strPtr("Dallas"),
					PostalCode:  strPtr("75201"),
					CountryCode: strPtr("US"),
				},
			},
			Subtotal: &graphql.MoneyInput{Number: "80", CurrencyCode: "USD"},
			Weight:   &graphql.WeightInput{Number: "2", Unit: "lb"},
		},
	}
}

func TestQuery_Health(t *testing.T) {
	resolver, _, _ := newTestResolver()

	health, err := resolver.Query().Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health)
}

func TestQuery_Carriers(t *testing.T) {
	resolver, _, _ := newTestResolver()

	carriers, err := resolver.Query().Carriers(context.Background())
	require.NoError(t, err)
	require.Len(t, carriers, 1)
	assert.Equal(t, "ups", carriers[0].Name)
	assert.Len(t, carriers[0].Services, 2)
}

func TestQuery_Services(t *testing.T) {
	resolver, _, _ := newTestResolver()

	services, err := resolver.Query().Services(context.Background(), "ups")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "01", services[0].ID)

	_, err = resolver.Query().Services(context.Background(), "fedex")
	assert.ErrorIs(t, err, shipper.ErrCarrierNotFound)
}

func TestQuery_Rates_Success(t *testing.T) {
	resolver, carrier, metrics := newTestResolver()

	payload, err := resolver.Query().Rates(context.Background(), testLookupInput())
	require.NoError(t, err)

	assert.True(t, payload.Success)
	assert.Empty(t, payload.Errors)
	require.Len(t, payload.Rates, 2)
	assert.Equal(t, "01", payload.Rates[0].ID)
	assert.Equal(t, "42.10", payload.Rates[0].Amount.Number)
	assert.Equal(t, "12.75", payload.Rates[1].Amount.Number)
	assert.NotEmpty(t, payload.Metadata.RequestID)
	assert.Equal(t, "ups", payload.Metadata.Carrier)
	assert.Equal(t, 1, carrier.Calls)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("graphql_rates", "ups", "success")))
}

func TestQuery_Rates_EmptyDestination(t *testing.T) {
	resolver, _, _ := newTestResolver()
	input := testLookupInput()
	input.Shipment.ShippingAddress = &graphql.AddressInput{}

	payload, err := resolver.Query().Rates(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, payload.Success)
	assert.Empty(t, payload.Rates)
	assert.NotNil(t, payload.Rates)
}

func TestQuery_Rates_UnknownCarrier(t *testing.T) {
	resolver, carrier, _ := newTestResolver()
	input := testLookupInput()
	input.Carrier = strPtr("fedex")

	payload, err := resolver.Query().Rates(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, payload.Success)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "CARRIER_NOT_FOUND", payload.Errors[0].Code)
	assert.Equal(t, "fedex", payload.Metadata.Carrier)
	assert.Zero(t, carrier.Calls)
}

func TestQuery_Rates_InvalidInput(t *testing.T) {
	resolver, carrier, _ := newTestResolver()
	input := testLookupInput()
	input.Shipment.Weight = &graphql.WeightInput{Number: "heavy", Unit: "lb"}

	payload, err := resolver.Query().Rates(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, payload.Success)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "INVALID_INPUT", payload.Errors[0].Code)
	assert.Zero(t, carrier.Calls)
}

func TestQuery_Rates_MissingShipment(t *testing.T) {
	resolver, _, _ := newTestResolver()

	payload, err := resolver.Query().Rates(context.Background(), graphql.LookupInput{})
	require.NoError(t, err)
	assert.False(t, payload.Success)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "INVALID_INPUT", payload.Errors[0].Code)
}

func TestQuery_Rates_CarrierError(t *testing.T) {
	resolver, carrier, _ := newTestResolver()
	carrier.OnCalculateRates = func(ctx context.Context, s *shipper.Shipment) ([]shipper.Rate, error) {
		return nil, shipper.NewShipperError("ups", "TIMEOUT", "request timed out").
			WithKind(shipper.ErrServiceUnavailable)
	}

	payload, err := resolver.Query().Rates(context.Background(), testLookupInput())
	require.NoError(t, err)
	assert.False(t, payload.Success)
	assert.Empty(t, payload.Rates)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "TIMEOUT", payload.Errors[0].Code)
}

func TestQuery_TransitTime(t *testing.T) {
	resolver, _, _ := newTestResolver()

	payload, err := resolver.Query().TransitTime(context.Background(), testLookupInput())
	require.NoError(t, err)
	assert.True(t, payload.Success)
	require.Len(t, payload.Estimates, 2)
	assert.Equal(t, "1DA", payload.Estimates[0].ServiceCode)
	assert.True(t, payload.Estimates[0].Guaranteed)
	assert.NotNil(t, payload.Estimates[0].ArrivalDate)
	assert.Equal(t, 5, payload.Estimates[1].BusinessDays)
}
