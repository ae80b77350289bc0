// Package money formats computed amounts for display. Calculations keep
// full float precision; rounding happens only here.
package money

import "github.com/shopspring/decimal"

// Yen rounds an amount to whole yen, halves away from zero.
func Yen(v float64) string {
	return decimal.NewFromFloat(v).Round(0).String()
}

// UnitPrice formats a per-base-unit price with three decimals.
func UnitPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(3)
}

// Percent formats a rate with one decimal.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
