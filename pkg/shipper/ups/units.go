package ups

import (
	"github.com/shopspring/decimal"
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

// Unit-of-measurement codes understood by the UPS API.
const (
	UOMPounds      = "LBS"
	UOMKilograms   = "KGS"
	UOMInches      = "IN"
	UOMCentimeters = "CM"
	UOMMeters      = "M"
	UOMFeet        = "FT"
)

var (
	ouncesPerKilogram = decimal.RequireFromString("35.274")
	gramsPerKilogram  = decimal.NewFromInt(1000)

	centimetersPerMeter      = decimal.NewFromInt(100)
	centimetersPerMillimeter = decimal.RequireFromString("0.1")
	centimetersPerFoot       = decimal.RequireFromString("30.48")

	// division precision for ounce/gram conversion
	divisionPrecision int32 = 16
)

// NormalizeWeight converts ounces and grams to kilograms. Kilograms and
// pounds are accepted by UPS as-is and pass through unchanged.
func NormalizeWeight(value decimal.Decimal, unit shipper.WeightUnit) (decimal.Decimal, shipper.WeightUnit) {
	switch unit {
	case shipper.WeightOZ:
		return value.DivRound(ouncesPerKilogram, divisionPrecision), shipper.WeightKG
	case shipper.WeightG:
		return value.DivRound(gramsPerKilogram, divisionPrecision), shipper.WeightKG
	default:
		return value, unit
	}
}

// NormalizeLength converts meters, millimeters and feet to centimeters.
// Centimeters and inches pass through unchanged.
func NormalizeLength(value decimal.Decimal, unit shipper.LengthUnit) (decimal.Decimal, shipper.LengthUnit) {
	switch unit {
	case shipper.LengthM:
		return value.Mul(centimetersPerMeter), shipper.LengthCM
	case shipper.LengthMM:
		return value.Mul(centimetersPerMillimeter), shipper.LengthCM
	case shipper.LengthFT:
		return value.Mul(centimetersPerFoot), shipper.LengthCM
	default:
		return value, unit
	}
}

// UnitOfMeasureCode maps a storefront unit abbreviation to the UPS code.
// Unknown abbreviations are returned unchanged.
func UnitOfMeasureCode(unit string) string {
	switch unit {
	case "lb":
		return UOMPounds
	case "kg":
		return UOMKilograms
	case "in":
		return UOMInches
	case "cm":
		return UOMCentimeters
	case "m":
		return UOMMeters
	case "ft":
		return UOMFeet
	}
	return unit
}

// NormalizedPackage holds package measurements in units UPS accepts.
type NormalizedPackage struct {
	Length     decimal.Decimal
	Width      decimal.Decimal
	Height     decimal.Decimal
	LengthUnit shipper.LengthUnit
	Weight     decimal.Decimal
	WeightUnit shipper.WeightUnit
}

// NormalizePackage normalizes all dimensions and the weight of a package type.
// All three dimensions are taken to share the unit of the length dimension.
func NormalizePackage(pt shipper.PackageType) NormalizedPackage {
	unit := pt.Length.Unit
	length, lengthUnit := NormalizeLength(pt.Length.Number, unit)
	width, _ := NormalizeLength(pt.Width.Number, unit)
	height, _ := NormalizeLength(pt.Height.Number, unit)
	weight, weightUnit := NormalizeWeight(pt.Weight.Number, pt.Weight.Unit)

	return NormalizedPackage{
		Length:     length,
		Width:      width,
		Height:     height,
		LengthUnit: lengthUnit,
		Weight:     weight,
		WeightUnit: weightUnit,
	}
}
