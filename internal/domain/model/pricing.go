// Package model defines the core domain entities for the pack pricing service.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PricingMode selects how a bundle is expanded into order lines.
//
// @Description Pack pricing mode
type PricingMode string

const (
	// ModeUnset is the zero value; bundles in this mode cannot be composed.
	ModeUnset PricingMode = ""
	// ModeDetailedDisplayed lists every component at its own price.
	ModeDetailedDisplayed PricingMode = "detailed_displayed"
	// ModeDetailedIgnored lists every component at zero; the pack line carries the price.
	ModeDetailedIgnored PricingMode = "detailed_ignored"
	// ModeDetailedTotalized lists every component with a proportional share of the pack price.
	ModeDetailedTotalized PricingMode = "detailed_totalized"
	// ModeNonDetailedTotalized produces a single aggregate line for the pack.
	ModeNonDetailedTotalized PricingMode = "non_detailed_totalized"
)

// PricingModes lists every supported mode in display order.
var PricingModes = []PricingMode{
	ModeDetailedDisplayed,
	ModeDetailedIgnored,
	ModeDetailedTotalized,
	ModeNonDetailedTotalized,
}

// Valid reports whether m is one of the supported modes.
func (m PricingMode) Valid() bool {
	switch m {
	case ModeDetailedDisplayed, ModeDetailedIgnored, ModeDetailedTotalized, ModeNonDetailedTotalized:
		return true
	default:
		return false
	}
}

// Detailed reports whether the mode exposes component lines in the cart.
func (m PricingMode) Detailed() bool {
	return m == ModeDetailedDisplayed || m == ModeDetailedIgnored || m == ModeDetailedTotalized
}

// Label returns the storefront label used for the mode.
func (m PricingMode) Label() string {
	switch m {
	case ModeDetailedDisplayed:
		return "Detailed - Displayed Components Price"
	case ModeDetailedIgnored:
		return "Detailed - Ignored Components Price"
	case ModeDetailedTotalized:
		return "Detailed - Totalized Components Price"
	case ModeNonDetailedTotalized:
		return "Non Detailed - Totalized Components Price"
	default:
		return "unset"
	}
}

// ParsePricingMode parses a mode name, accepting dashes and any letter case.
func ParsePricingMode(s string) (PricingMode, error) {
	m := PricingMode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !m.Valid() {
		return ModeUnset, fmt.Errorf("%w: unknown pricing mode %q", ErrInvalidConfiguration, s)
	}
	return m, nil
}

// RoundMoney rounds an amount half away from zero to the currency precision.
func RoundMoney(amount decimal.Decimal, precision int32) decimal.Decimal {
	return amount.Round(precision)
}
