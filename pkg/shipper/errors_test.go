package shipper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

func TestShipperError_Error(t *testing.T) {
	err := shipper.NewShipperError("ups", "111285", "Invalid postal code")
	assert.Equal(t, "ups error (111285): Invalid postal code", err.Error())
}

func TestShipperError_ErrorWithCause(t *testing.T) {
	cause := errors.New("network timeout")
	err := shipper.NewShipperError("ups", "API_ERROR", "API call failed").WithCause(cause)
	assert.Contains(t, err.Error(), "API call failed")
	assert.Contains(t, err.Error(), "network timeout")
}

func TestShipperError_Unwrap(t *testing.T) {
	cause := errors.New("network timeout")
	err := shipper.NewShipperError("ups", "API_ERROR", "API call failed").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestShipperError_UnwrapKind(t *testing.T) {
	cause := errors.New("401 Unauthorized")
	err := shipper.NewShipperError("ups", "250003", "Invalid Access License number").
		WithKind(shipper.ErrAuthenticationFailed).
		WithCause(cause)

	assert.True(t, errors.Is(err, shipper.ErrAuthenticationFailed))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, shipper.ErrInvalidAddress))
}

func TestShipperError_Is(t *testing.T) {
	err1 := shipper.NewShipperError("ups", "INVALID_ADDRESS", "Invalid postal code")
	err2 := shipper.NewShipperError("mock", "INVALID_ADDRESS", "Different message")

	// Same code should match
	assert.True(t, errors.Is(err1, err2))
}

func TestShipperError_IsNot(t *testing.T) {
	err1 := shipper.NewShipperError("ups", "INVALID_ADDRESS", "Invalid postal code")
	err2 := shipper.NewShipperError("ups", "DIFFERENT_CODE", "Different error")

	// Different codes should not match
	assert.False(t, errors.Is(err1, err2))
}

func TestShipperError_Type(t *testing.T) {
	tests := []struct {
		kind error
		want string
	}{
		{nil, "other"},
		{shipper.ErrAuthenticationFailed, "auth"},
		{shipper.ErrRateLimitExceeded, "rate_limit"},
		{shipper.ErrServiceUnavailable, "unavailable"},
		{shipper.ErrInvalidAddress, "address"},
		{shipper.ErrInvalidPackage, "package"},
		{shipper.ErrNotConfigured, "not_configured"},
		{errors.New("unclassified"), "other"},
	}

	for _, tt := range tests {
		err := shipper.NewShipperError("ups", "SOME_CODE", "msg").WithKind(tt.kind)
		assert.Equal(t, tt.want, err.Type())
	}
}

func TestShipperError_WithStatusCode(t *testing.T) {
	err := shipper.NewShipperError("ups", "AUTH_ERROR", "Unauthorized").WithStatusCode(401)
	assert.Equal(t, 401, err.StatusCode)
}

func TestShipperError_WithRetryable(t *testing.T) {
	err := shipper.NewShipperError("ups", "RATE_LIMIT", "Too many requests").WithRetryable(true)
	assert.True(t, err.Retryable)
}

func TestIsRetryable_ShipperError(t *testing.T) {
	err := shipper.NewShipperError("ups", "RATE_LIMIT", "Too many requests").WithRetryable(true)
	assert.True(t, shipper.IsRetryable(err))
}

func TestIsRetryable_ShipperErrorNotRetryable(t *testing.T) {
	err := shipper.NewShipperError("ups", "INVALID_ADDRESS", "Bad address").WithRetryable(false)
	assert.False(t, shipper.IsRetryable(err))
}

func TestIsRetryable_ServiceUnavailable(t *testing.T) {
	assert.True(t, shipper.IsRetryable(shipper.ErrServiceUnavailable))
}

func TestIsRetryable_RateLimitExceeded(t *testing.T) {
	assert.True(t, shipper.IsRetryable(shipper.ErrRateLimitExceeded))
}

func TestIsRetryable_InvalidAddress(t *testing.T) {
	assert.False(t, shipper.IsRetryable(shipper.ErrInvalidAddress))
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrShipmentNotProvided", shipper.ErrShipmentNotProvided},
		{"ErrInvalidAddress", shipper.ErrInvalidAddress},
		{"ErrInvalidPackage", shipper.ErrInvalidPackage},
		{"ErrNotConfigured", shipper.ErrNotConfigured},
		{"ErrServiceUnavailable", shipper.ErrServiceUnavailable},
		{"ErrAuthenticationFailed", shipper.ErrAuthenticationFailed},
		{"ErrRateLimitExceeded", shipper.ErrRateLimitExceeded},
		{"ErrCarrierNotFound", shipper.ErrCarrierNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}
