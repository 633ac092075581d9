// Package money implements minor-unit monetary arithmetic.
//
// Amounts are always integer minor units (cents, fils, paise) paired with an
// ISO 4217 currency code. Floating-point values never represent money for
// storage or comparison; the only float in the system is an exchange rate,
// and it touches an amount exactly once, inside Convert.
package money

import "github.com/shopspring/decimal"

// Amount is a monetary value: integer minor units of a single currency.
type Amount struct {
	Minor    int64  `json:"minor"`
	Currency string `json:"currency"`
}

// New returns an Amount for the given minor units and currency code.
func New(minor int64, currency string) Amount {
	return Amount{Minor: minor, Currency: currency}
}

// Convert multiplies minor units by an exchange rate and rounds to the
// nearest integer, half away from zero (100 at 1.005 becomes 101, at
// 1.0049 becomes 100). Rounding is applied exactly once per conversion;
// callers must never re-convert an already converted amount.
func Convert(minor int64, rate float64) int64 {
	product := decimal.NewFromInt(minor).Mul(decimal.NewFromFloat(rate))
	return product.Round(0).IntPart()
}

// Scale returns minor units as a decimal shifted by the currency's digit
// count, e.g. Scale(12345, 2) = 123.45.
func Scale(minor int64, decimalDigits int32) decimal.Decimal {
	return decimal.New(minor, -decimalDigits)
}

// Format renders minor units as a plain decimal string using the
// currency's digit count, e.g. Format(12345, 2) = "123.45".
func Format(minor int64, decimalDigits int32) string {
	return Scale(minor, decimalDigits).StringFixed(decimalDigits)
}
