package shipper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"github.com/tournevent/commerce-ups/pkg/shipper/mock"
)

func TestRegistry_Register(t *testing.T) {
	registry := shipper.NewRegistry()

	mockShipper := mock.New("test-shipper")
	registry.Register(mockShipper)

	got, err := registry.Get("test-shipper")
	require.NoError(t, err, "shipper should be registered")
	assert.Equal(t, "test-shipper", got.Name())
}

func TestRegistry_Register_Override(t *testing.T) {
	registry := shipper.NewRegistry()

	first := mock.New("test-shipper")
	registry.Register(first)
	assert.Equal(t, 1, registry.Count())

	// Register again with same name should override
	second := mock.New("test-shipper")
	registry.Register(second)
	assert.Equal(t, 1, registry.Count())

	got, err := registry.Get("test-shipper")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestRegistry_Get_NotFound(t *testing.T) {
	registry := shipper.NewRegistry()

	_, err := registry.Get("nonexistent")
	assert.Error(t, err, "should return error for unregistered shipper")
	assert.True(t, errors.Is(err, shipper.ErrCarrierNotFound))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestRegistry_Names(t *testing.T) {
	registry := shipper.NewRegistry()

	registry.Register(mock.New("ups"))
	registry.Register(mock.New("flat-rate"))
	registry.Register(mock.New("pickup"))

	assert.Equal(t, []string{"flat-rate", "pickup", "ups"}, registry.Names())
}

func TestRegistry_Count(t *testing.T) {
	registry := shipper.NewRegistry()
	assert.Equal(t, 0, registry.Count())

	registry.Register(mock.New("shipper-a"))
	assert.Equal(t, 1, registry.Count())

	registry.Register(mock.New("shipper-b"))
	assert.Equal(t, 2, registry.Count())
}

func TestRegistry_CalculateRatesThroughShipper(t *testing.T) {
	registry := shipper.NewRegistry()
	registry.Register(mock.New("ups"))

	s, err := registry.Get("ups")
	require.NoError(t, err)

	shipment := &shipper.Shipment{
		ShippingAddress: shipper.Address{
			Line1:       "456 Oak Ave",
			Locality:    "Portland",
			PostalCode:  "97201",
			CountryCode: "US",
		},
	}

	rates, err := s.CalculateRates(context.Background(), shipment)
	require.NoError(t, err)
	assert.Len(t, rates, 2)

	rates, err = s.CalculateRates(context.Background(), &shipper.Shipment{})
	require.NoError(t, err)
	assert.Empty(t, rates, "no destination means no rates")

	_, err = s.CalculateRates(context.Background(), nil)
	assert.ErrorIs(t, err, shipper.ErrShipmentNotProvided)
}
