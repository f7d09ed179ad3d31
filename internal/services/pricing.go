package services

import "github.com/shopspring/decimal"

// TotalPayable is qty × price in exact decimal arithmetic, rounded half away
// from zero to two places: 3 × 4.995 = 14.985 → "14.99".
func TotalPayable(price float64, qty int) string {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))).StringFixed(2)
}
