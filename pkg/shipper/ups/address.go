package ups

import (
	"github.com/tournevent/commerce-ups/pkg/shipper"
)

// ShipTo maps the shipment destination to a UPS ship-to party.
// The attention name is the recipient's given and family name.
func ShipTo(addr shipper.Address) Party {
	return Party{
		Name:          addr.FullName(),
		AttentionName: addr.FullName(),
		Address:       addressToAPI(addr),
	}
}

// ShipFrom maps the store address to a UPS ship-from party.
func ShipFrom(store shipper.Store) Party {
	return Party{
		Name:    store.Name,
		Address: addressToAPI(store.Address),
	}
}

// ShipperParty maps the store to the shipper party of a rate request.
func ShipperParty(store shipper.Store, accountNumber string) Party {
	p := ShipFrom(store)
	p.ShipperNumber = accountNumber
	return p
}

func addressToAPI(addr shipper.Address) Address {
	lines := make([]string, 0, 2)
	if addr.Line1 != "" {
		lines = append(lines, addr.Line1)
	}
	if addr.Line2 != "" {
		lines = append(lines, addr.Line2)
	}
	return Address{
		AddressLine:       lines,
		City:              addr.Locality,
		StateProvinceCode: addr.AdministrativeArea,
		PostalCode:        addr.PostalCode,
		CountryCode:       addr.CountryCode,
	}
}

// TransitAddress maps an address to the reduced form the time-in-transit
// service accepts: locality, postal code and country only.
func TransitAddress(addr shipper.Address, countryCode string) AddressArtifact {
	return AddressArtifact{
		PoliticalDivision2: addr.Locality,
		PostcodePrimaryLow: addr.PostalCode,
		CountryCode:        countryCode,
	}
}
