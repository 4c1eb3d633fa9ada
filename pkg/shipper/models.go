package shipper

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WeightUnit represents weight measurement unit.
type WeightUnit string

const (
	WeightG  WeightUnit = "g"
	WeightKG WeightUnit = "kg"
	WeightOZ WeightUnit = "oz"
	WeightLB WeightUnit = "lb"
)

// LengthUnit represents length measurement unit.
type LengthUnit string

const (
	LengthMM LengthUnit = "mm"
	LengthCM LengthUnit = "cm"
	LengthM  LengthUnit = "m"
	LengthIN LengthUnit = "in"
	LengthFT LengthUnit = "ft"
)

// Weight is a physical weight as provided by the storefront.
type Weight struct {
	Number decimal.Decimal
	Unit   WeightUnit
}

// NewWeight creates a Weight from a float value.
func NewWeight(number float64, unit WeightUnit) Weight {
	return Weight{Number: decimal.NewFromFloat(number), Unit: unit}
}

// IsZero reports whether the weight number is zero.
func (w Weight) IsZero() bool {
	return w.Number.IsZero()
}

// Length is a physical length as provided by the storefront.
type Length struct {
	Number decimal.Decimal
	Unit   LengthUnit
}

// NewLength creates a Length from a float value.
func NewLength(number float64, unit LengthUnit) Length {
	return Length{Number: decimal.NewFromFloat(number), Unit: unit}
}

// Address represents a postal address on a shipping profile or a store.
type Address struct {
	GivenName          string
	FamilyName         string
	Organization       string
	Line1              string
	Line2              string
	Locality           string // city
	DependentLocality  string
	AdministrativeArea string // state / province code, e.g. "ON", "NY"
	PostalCode         string
	CountryCode        string // ISO 3166-1 alpha-2, e.g. "CA", "US"
}

// IsEmpty reports whether the address carries no location data at all.
func (a Address) IsEmpty() bool {
	return a.Line1 == "" && a.Locality == "" && a.PostalCode == "" && a.CountryCode == ""
}

// FullName joins the given and family names. It is empty when both are.
func (a Address) FullName() string {
	return strings.TrimSpace(a.GivenName + " " + a.FamilyName)
}

// Money represents a monetary amount.
type Money struct {
	Number       decimal.Decimal
	CurrencyCode string
}

// NewMoney parses a decimal string into Money.
func NewMoney(number, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(number)
	if err != nil {
		return Money{}, err
	}
	return Money{Number: d, CurrencyCode: currencyCode}, nil
}

// String formats the amount with two decimals followed by the currency code.
func (m Money) String() string {
	return m.Number.StringFixed(2) + " " + m.CurrencyCode
}

// PackageType describes the box a shipment is packed into.
type PackageType struct {
	ID     string
	Label  string
	Length Length
	Width  Length
	Height Length
	Weight Weight
}

// IsZero reports whether no package type has been set.
func (p PackageType) IsZero() bool {
	return p.ID == "" && p.Length.Number.IsZero() && p.Width.Number.IsZero() &&
		p.Height.Number.IsZero() && p.Weight.IsZero()
}

// Store is the merchant store the order was placed in.
type Store struct {
	ID      string
	Name    string
	Address Address
}

// Order is the order a shipment belongs to.
type Order struct {
	ID       string
	Store    Store
	Subtotal Money
}

// Shipment is a single shipment of an order, as handed over at checkout.
type Shipment struct {
	ID              string
	ShippingAddress Address // destination, from the customer's shipping profile
	Order           Order
	PackageType     PackageType
	Weight          Weight // aggregate shipment weight
}

// ShippingService is a selectable shipping service level.
type ShippingService struct {
	ID    string
	Label string
}

// Rate is a shipping rate offered at checkout.
type Rate struct {
	ID      string
	Service ShippingService
	Amount  Money
}

// TransitEstimate is the expected delivery time for one service level.
type TransitEstimate struct {
	ServiceCode  string
	Description  string
	BusinessDays int
	ArrivalDate  *time.Time
	Guaranteed   bool
}
