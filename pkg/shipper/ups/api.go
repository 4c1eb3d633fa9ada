package ups

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// APIClient defines the interface for UPS API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// ShopRates fetches rates for every service level in a single call.
	ShopRates(ctx context.Context, req *RateRequest) (*RateResponse, error)

	// TimeInTransit fetches delivery time estimates.
	TimeInTransit(ctx context.Context, req *TimeInTransitRequest) (*TimeInTransitResponse, error)
}

// Credentials authenticate every call against the UPS API.
type Credentials struct {
	AccessKey string
	UserID    string
	Password  string
}

// ============================================================================
// Envelope and security (match UPS JSON API structure)
// ============================================================================

// Security is the UPSSecurity block sent with every request.
type Security struct {
	UsernameToken      UsernameToken      `json:"UsernameToken"`
	ServiceAccessToken ServiceAccessToken `json:"ServiceAccessToken"`
}

// UsernameToken holds the account user id and password.
type UsernameToken struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// ServiceAccessToken holds the access license number.
type ServiceAccessToken struct {
	AccessLicenseNumber string `json:"AccessLicenseNumber"`
}

func securityFor(c Credentials) Security {
	return Security{
		UsernameToken:      UsernameToken{Username: c.UserID, Password: c.Password},
		ServiceAccessToken: ServiceAccessToken{AccessLicenseNumber: c.AccessKey},
	}
}

// RequestHeader is the common Request block.
type RequestHeader struct {
	RequestOption        string                `json:"RequestOption"`
	TransactionReference *TransactionReference `json:"TransactionReference,omitempty"`
}

// TransactionReference is echoed back by UPS in the response.
type TransactionReference struct {
	CustomerContext string `json:"CustomerContext,omitempty"`
}

// ResponseHeader is the common Response block.
type ResponseHeader struct {
	ResponseStatus ResponseStatus `json:"ResponseStatus"`
}

// ResponseStatus reports whether the call succeeded ("1") or not.
type ResponseStatus struct {
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

// Indicator is a UPS presence flag: it is sent as an empty string when set
// and omitted when unset.
type Indicator bool

// MarshalJSON encodes a set indicator as an empty string.
func (i Indicator) MarshalJSON() ([]byte, error) {
	if i {
		return []byte(`""`), nil
	}
	return []byte(`null`), nil
}

// UnmarshalJSON treats any present value as set.
func (i *Indicator) UnmarshalJSON(data []byte) error {
	*i = Indicator(!bytes.Equal(data, []byte("null")))
	return nil
}

// oneOrMany decodes a field UPS sends as a single object when there is one
// element and as an array otherwise.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}
	if data[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*o = oneOrMany[T]{one}
	return nil
}

// ============================================================================
// Rate (POST /rest/Rate)
// ============================================================================

// RateRequest represents a UPS rate-shop request.
type RateRequest struct {
	Request  RequestHeader `json:"Request"`
	Shipment Shipment      `json:"Shipment"`
}

// Shipment describes the parties and package being rated.
type Shipment struct {
	Shipper         Party            `json:"Shipper"`
	ShipTo          Party            `json:"ShipTo"`
	ShipFrom        Party            `json:"ShipFrom"`
	Package         []Package        `json:"Package"`
	RateInformation *RateInformation `json:"ShipmentRatingOptions,omitempty"`
}

// Party is a shipper, ship-to or ship-from party.
type Party struct {
	Name          string  `json:"Name,omitempty"`
	AttentionName string  `json:"AttentionName,omitempty"`
	ShipperNumber string  `json:"ShipperNumber,omitempty"`
	Address       Address `json:"Address"`
}

// Address is a full street address.
type Address struct {
	AddressLine       []string `json:"AddressLine,omitempty"`
	City              string   `json:"City,omitempty"`
	StateProvinceCode string   `json:"StateProvinceCode,omitempty"`
	PostalCode        string   `json:"PostalCode,omitempty"`
	CountryCode       string   `json:"CountryCode"`
}

// Package is a single rated package.
type Package struct {
	PackagingType CodeDescription `json:"PackagingType"`
	Dimensions    Dimensions      `json:"Dimensions"`
	PackageWeight PackageWeight   `json:"PackageWeight"`
}

// CodeDescription is the generic UPS code/description pair.
type CodeDescription struct {
	Code        string `json:"Code"`
	Description string `json:"Description,omitempty"`
}

// Dimensions are the package dimensions with their unit of measurement.
type Dimensions struct {
	UnitOfMeasurement CodeDescription `json:"UnitOfMeasurement"`
	Length            string          `json:"Length"`
	Width             string          `json:"Width"`
	Height            string          `json:"Height"`
}

// PackageWeight is the package weight with its unit of measurement.
type PackageWeight struct {
	UnitOfMeasurement CodeDescription `json:"UnitOfMeasurement"`
	Weight            string          `json:"Weight"`
}

// RateInformation requests negotiated rates.
type RateInformation struct {
	NegotiatedRatesIndicator Indicator `json:"NegotiatedRatesIndicator,omitempty"`
	RateChartIndicator       Indicator `json:"RateChartIndicator,omitempty"`
}

// RateResponse represents the UPS rate-shop response.
type RateResponse struct {
	Response      ResponseHeader           `json:"Response"`
	RatedShipment oneOrMany[RatedShipment] `json:"RatedShipment"`
}

// RatedShipment is the quote for one service level.
type RatedShipment struct {
	Service               CodeDescription        `json:"Service"`
	TotalCharges          Charges                `json:"TotalCharges"`
	NegotiatedRateCharges *NegotiatedRateCharges `json:"NegotiatedRateCharges,omitempty"`
	GuaranteedDelivery    *GuaranteedDelivery    `json:"GuaranteedDelivery,omitempty"`
}

// Charges is a monetary value as sent by UPS.
type Charges struct {
	CurrencyCode  string `json:"CurrencyCode"`
	MonetaryValue string `json:"MonetaryValue"`
}

// NegotiatedRateCharges holds the account-specific total.
type NegotiatedRateCharges struct {
	TotalCharge Charges `json:"TotalCharge"`
}

// GuaranteedDelivery is returned for guaranteed services.
type GuaranteedDelivery struct {
	BusinessDaysInTransit string `json:"BusinessDaysInTransit,omitempty"`
	DeliveryByTime        string `json:"DeliveryByTime,omitempty"`
}

// ============================================================================
// Time in transit (POST /rest/TimeInTransit)
// ============================================================================

// TimeInTransitRequest represents a UPS time-in-transit request.
type TimeInTransitRequest struct {
	Request                 RequestHeader `json:"Request"`
	ShipFrom                TransitParty  `json:"ShipFrom"`
	ShipTo                  TransitParty  `json:"ShipTo"`
	Pickup                  Pickup        `json:"Pickup"`
	ShipmentWeight          PackageWeight `json:"ShipmentWeight"`
	TotalPackagesInShipment string        `json:"TotalPackagesInShipment"`
	InvoiceLineTotal        Charges       `json:"InvoiceLineTotal"`
	MaximumListSize         string        `json:"MaximumListSize,omitempty"`
}

// TransitParty wraps an address artifact.
type TransitParty struct {
	Address AddressArtifact `json:"Address"`
}

// AddressArtifact is the reduced address format of the transit service.
type AddressArtifact struct {
	PoliticalDivision2 string `json:"PoliticalDivision2,omitempty"`
	PostcodePrimaryLow string `json:"PostcodePrimaryLow,omitempty"`
	CountryCode        string `json:"CountryCode"`
}

// Pickup holds the pickup date in YYYYMMDD form.
type Pickup struct {
	Date string `json:"Date"`
}

// TimeInTransitResponse represents the UPS time-in-transit response.
type TimeInTransitResponse struct {
	Response        ResponseHeader  `json:"Response"`
	TransitResponse TransitResponse `json:"TransitResponse"`
}

// TransitResponse lists the per-service summaries.
type TransitResponse struct {
	PickupDate     string                    `json:"PickupDate,omitempty"`
	ServiceSummary oneOrMany[ServiceSummary] `json:"ServiceSummary"`
}

// ServiceSummary is the estimate for one service level.
type ServiceSummary struct {
	Service          CodeDescription  `json:"Service"`
	Guaranteed       CodeDescription  `json:"Guaranteed"`
	EstimatedArrival EstimatedArrival `json:"EstimatedArrival"`
}

// EstimatedArrival holds the arrival date and business days in transit.
type EstimatedArrival struct {
	Arrival               Arrival `json:"Arrival"`
	BusinessDaysInTransit string  `json:"BusinessDaysInTransit"`
	DayOfWeek             string  `json:"DayOfWeek,omitempty"`
}

// Arrival is a date (YYYYMMDD) and time (HHMMSS).
type Arrival struct {
	Date string `json:"Date"`
	Time string `json:"Time,omitempty"`
}

// ============================================================================
// Errors
// ============================================================================

// Fault is the error envelope returned by UPS.
type Fault struct {
	FaultCode   string      `json:"faultcode"`
	FaultString string      `json:"faultstring"`
	Detail      FaultDetail `json:"detail"`
}

// FaultDetail wraps the error details.
type FaultDetail struct {
	Errors struct {
		ErrorDetail oneOrMany[ErrorDetail] `json:"ErrorDetail"`
	} `json:"Errors"`
}

// ErrorDetail is one reported error.
type ErrorDetail struct {
	Severity         string          `json:"Severity"`
	PrimaryErrorCode CodeDescription `json:"PrimaryErrorCode"`
}

// APIError represents an error from the UPS API.
type APIError struct {
	Code        string
	Description string
	StatusCode  int
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Description, e.StatusCode)
	}
	return e.Code + ": " + e.Description
}

func (f *Fault) apiError(statusCode int) *APIError {
	if len(f.Detail.Errors.ErrorDetail) > 0 {
		primary := f.Detail.Errors.ErrorDetail[0].PrimaryErrorCode
		return &APIError{Code: primary.Code, Description: primary.Description, StatusCode: statusCode}
	}
	return &APIError{Code: f.FaultCode, Description: f.FaultString, StatusCode: statusCode}
}
