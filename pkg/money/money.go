// Package money converts between the decimal amounts used on the wire and
// the integer cents stored in the database.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents converts a decimal amount (e.g. 19.99) to cents (1999).
// Amounts are rounded to the nearest cent.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// ToFloat converts cents to a decimal amount for API responses.
func ToFloat(cents int64) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

// Format renders cents as a fixed two-decimal string, e.g. "19.99".
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
