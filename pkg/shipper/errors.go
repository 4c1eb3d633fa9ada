package shipper

import (
	"errors"
	"fmt"
)

// ShipperError represents an error from a shipping carrier.
type ShipperError struct {
	Carrier    string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool
	Kind       error // one of the sentinel errors below, if classified
	Cause      error
}

// Error implements the error interface.
func (e *ShipperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Carrier, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Carrier, e.Code, e.Message)
}

// Unwrap returns the classification and the underlying cause.
func (e *ShipperError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is matches another ShipperError with the same code.
func (e *ShipperError) Is(target error) bool {
	t, ok := target.(*ShipperError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Type returns a short label suitable for metrics.
func (e *ShipperError) Type() string {
	switch {
	case e.Kind == nil:
		return "other"
	case errors.Is(e.Kind, ErrAuthenticationFailed):
		return "auth"
	case errors.Is(e.Kind, ErrRateLimitExceeded):
		return "rate_limit"
	case errors.Is(e.Kind, ErrServiceUnavailable):
		return "unavailable"
	case errors.Is(e.Kind, ErrInvalidAddress):
		return "address"
	case errors.Is(e.Kind, ErrInvalidPackage):
		return "package"
	case errors.Is(e.Kind, ErrNotConfigured):
		return "not_configured"
	default:
		return "other"
	}
}

// NewShipperError creates a new ShipperError.
func NewShipperError(carrier, code, message string) *ShipperError {
	return &ShipperError{
		Carrier: carrier,
		Code:    code,
		Message: message,
	}
}

// WithCause adds a cause to the error.
func (e *ShipperError) WithCause(err error) *ShipperError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *ShipperError) WithStatusCode(code int) *ShipperError {
	e.StatusCode = code
	return e
}

// WithRetryable marks the error as retryable.
func (e *ShipperError) WithRetryable(retryable bool) *ShipperError {
	e.Retryable = retryable
	return e
}

// WithKind classifies the error with one of the sentinel errors.
func (e *ShipperError) WithKind(kind error) *ShipperError {
	e.Kind = kind
	return e
}

// Sentinel errors for common shipping scenarios.
var (
	// ErrShipmentNotProvided indicates a rate lookup was attempted without a shipment.
	ErrShipmentNotProvided = errors.New("shipment not provided")

	// ErrInvalidAddress indicates the address is invalid or incomplete.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidPackage indicates package dimensions or weight are invalid.
	ErrInvalidPackage = errors.New("invalid package")

	// ErrNotConfigured indicates the shipping method lacks API credentials.
	ErrNotConfigured = errors.New("shipping method not configured")

	// ErrServiceUnavailable indicates the carrier service is temporarily unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrAuthenticationFailed indicates carrier authentication failed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrRateLimitExceeded indicates the carrier rate limit was exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")
)

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var shipperErr *ShipperError
	if errors.As(err, &shipperErr) {
		return shipperErr.Retryable
	}
	return errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrRateLimitExceeded)
}
