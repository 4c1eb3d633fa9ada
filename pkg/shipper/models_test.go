package shipper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

func TestAddress_IsEmpty(t *testing.T) {
	assert.True(t, shipper.Address{}.IsEmpty())
	assert.True(t, shipper.Address{GivenName: "Ada", FamilyName: "Lovelace"}.IsEmpty())
	assert.False(t, shipper.Address{PostalCode: "02110"}.IsEmpty())
	assert.False(t, shipper.Address{CountryCode: "US"}.IsEmpty())
}

func TestAddress_FullName(t *testing.T) {
	addr := shipper.Address{GivenName: "Ada", FamilyName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", addr.FullName())

	assert.Equal(t, "Ada", shipper.Address{GivenName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", shipper.Address{FamilyName: "Lovelace"}.FullName())
	assert.Empty(t, shipper.Address{}.FullName())
}

func TestNewMoney(t *testing.T) {
	m, err := shipper.NewMoney("12.5", "USD")
	require.NoError(t, err)
	assert.Equal(t, "12.50 USD", m.String())

	_, err = shipper.NewMoney("twelve", "USD")
	assert.Error(t, err)
}

func TestPackageType_IsZero(t *testing.T) {
	assert.True(t, shipper.PackageType{}.IsZero())
	assert.False(t, shipper.PackageType{ID: "box"}.IsZero())
	assert.False(t, shipper.PackageType{Weight: shipper.NewWeight(1, shipper.WeightKG)}.IsZero())
}
