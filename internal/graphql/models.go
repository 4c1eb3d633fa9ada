package graphql

import (
	_ "embed"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSource string

// Schema parses the GraphQL schema served by the resolvers.
func Schema() *ast.Schema {
	return gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSource})
}

// ============================================================================
// Inputs
// ============================================================================

type AddressInput struct {
	GivenName          *string `json:"givenName,omitempty"`
	FamilyName         *string `json:"familyName,omitempty"`
	Organization       *string `json:"organization,omitempty"`
	Line1              *string `json:"line1,omitempty"`
	Line2              *string `json:"line2,omitempty"`
	Locality           *string `json:"locality,omitempty"`
	DependentLocality  *string `json:"dependentLocality,omitempty"`
	AdministrativeArea *string `json:"administrativeArea,omitempty"`
	PostalCode         *string `json:"postalCode,omitempty"`
	CountryCode        *string `json:"countryCode,omitempty"`
}

type LengthInput struct {
	Number string `json:"number"`
	Unit   string `json:"unit"`
}

type WeightInput struct {
	Number string `json:"number"`
	Unit   string `json:"unit"`
}

type MoneyInput struct {
	Number       string `json:"number"`
	CurrencyCode string `json:"currencyCode"`
}

type PackageTypeInput struct {
	ID     *string      `json:"id,omitempty"`
	Label  *string      `json:"label,omitempty"`
	Length *LengthInput `json:"length"`
	Width  *LengthInput `json:"width"`
	Height *LengthInput `json:"height"`
	Weight *WeightInput `json:"weight"`
}

type StoreInput struct {
	ID      *string       `json:"id,omitempty"`
	Name    *string       `json:"name,omitempty"`
	Address *AddressInput `json:"address"`
}

type ShipmentInput struct {
	ID              *string           `json:"id,omitempty"`
	OrderID         *string           `json:"orderId,omitempty"`
	ShippingAddress *AddressInput     `json:"shippingAddress"`
	Store           *StoreInput       `json:"store"`
	Subtotal        *MoneyInput       `json:"subtotal,omitempty"`
	PackageType     *PackageTypeInput `json:"packageType,omitempty"`
	Weight          *WeightInput      `json:"weight,omitempty"`
}

type LookupInput struct {
	Carrier  *string        `json:"carrier,omitempty"`
	Shipment *ShipmentInput `json:"shipment"`
}

// ============================================================================
// Outputs
// ============================================================================

type Carrier struct {
	Name     string             `json:"name"`
	Services []*ShippingService `json:"services"`
}

type ShippingService struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Money struct {
	Number       string `json:"number"`
	CurrencyCode string `json:"currencyCode"`
}

type Rate struct {
	ID      string           `json:"id"`
	Service *ShippingService `json:"service"`
	Amount  *Money           `json:"amount"`
}

type TransitEstimate struct {
	ServiceCode  string  `json:"serviceCode"`
	Description  string  `json:"description"`
	BusinessDays int     `json:"businessDays"`
	ArrivalDate  *string `json:"arrivalDate"`
	Guaranteed   bool    `json:"guaranteed"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Metadata struct {
	RequestID  string `json:"requestId"`
	Carrier    string `json:"carrier"`
	DurationMs int    `json:"durationMs"`
}

type RatesPayload struct {
	Success  bool      `json:"success"`
	Rates    []*Rate   `json:"rates"`
	Errors   []*Error  `json:"errors,omitempty"`
	Metadata *Metadata `json:"metadata"`
}

type TransitPayload struct {
	Success   bool               `json:"success"`
	Estimates []*TransitEstimate `json:"estimates"`
	Errors    []*Error           `json:"errors,omitempty"`
	Metadata  *Metadata          `json:"metadata"`
}
