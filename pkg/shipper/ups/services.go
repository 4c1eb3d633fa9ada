package ups

import (
	"strings"

	"github.com/tournevent/commerce-ups/pkg/shipper"
)

// LegacyServiceKeyPrefix is the prefix older storefront settings put in front
// of service codes ("03" for "03"). It is stripped on load.
const LegacyServiceKeyPrefix = "_"

// catalogue lists every UPS service the method can offer, in display order.
var catalogue = []shipper.ShippingService{
	{ID: "01", Label: "UPS Next Day Air"},
	{ID: "02", Label: "UPS Second Day Air"},
	{ID: "03", Label: "UPS Ground"},
	{ID: "07", Label: "UPS Worldwide Express"},
	{ID: "08", Label: "UPS Worldwide Expedited"},
	{ID: "11", Label: "UPS Standard"},
	{ID: "12", Label: "UPS Three-Day Select"},
	{ID: "13", Label: "Next Day Air Saver"},
	{ID: "14", Label: "UPS Next Day Air Early AM"},
	{ID: "54", Label: "UPS Worldwide Express Plus"},
	{ID: "59", Label: "UPS Second Day Air AM"},
	{ID: "65", Label: "UPS Saver"},
	{ID: "70", Label: "UPS Access Point Economy"},
}

// Catalogue returns a copy of the UPS service catalogue.
func Catalogue() []shipper.ShippingService {
	out := make([]shipper.ShippingService, len(catalogue))
	copy(out, catalogue)
	return out
}

// ServiceCode returns the carrier service code for a configured key,
// accepting the legacy prefixed form.
func ServiceCode(key string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), LegacyServiceKeyPrefix)
}

// ServiceLabel returns the catalogue label for a service code, or "" if unknown.
func ServiceLabel(code string) string {
	for _, s := range catalogue {
		if s.ID == code {
			return s.Label
		}
	}
	return ""
}

// NormalizeServiceCodes returns the set of carrier service codes for the
// configured keys. Blank entries are ignored.
func NormalizeServiceCodes(keys []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if code := ServiceCode(key); code != "" {
			codes[code] = struct{}{}
		}
	}
	return codes
}

// AllServiceCodes returns the codes of the whole catalogue.
func AllServiceCodes() []string {
	codes := make([]string, len(catalogue))
	for i, s := range catalogue {
		codes[i] = s.ID
	}
	return codes
}
