package domain

import "github.com/shopspring/decimal"

// DefaultExchangeRate is the fallback local-per-reference currency rate
// used when none is configured. The rate is a crude fixed approximation,
// not a live FX feed; it must be the same value everywhere compatibility
// or display math happens.
const DefaultExchangeRate = "75"

// ToLocal converts a reference-currency price per tonne into the local
// currency using the shared conversion rate.
func ToLocal(refPrice, rate decimal.Decimal) decimal.Decimal {
	return refPrice.Mul(rate)
}

// ToReference converts a local-currency price per tonne into the
// reference currency, rounded to two decimal places.
func ToReference(localPrice, rate decimal.Decimal) decimal.Decimal {
	return localPrice.DivRound(rate, 2)
}
