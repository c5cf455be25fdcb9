package models

import "fmt"

// Money is an amount in minor units (e.g. kopecks, cents) with a currency
// code. Integer arithmetic avoids the rounding issues floats would introduce.
type Money struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.AmountMinor == 0
}

// IsPositive reports whether the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.AmountMinor > 0
}

// String formats the amount with two decimal places
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.AmountMinor/100, m.AmountMinor%100, m.Currency)
}
