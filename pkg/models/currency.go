package models

import "time"

// CurrencyPair represents a currency pair.
type CurrencyPair struct {
	BaseCurrency  string `json:"base_currency"`  // e.g., "USD"
	QuoteCurrency string `json:"quote_currency"` // e.g., "VND"
}

// USDVND is the pair quoted by the converter.
var USDVND = CurrencyPair{BaseCurrency: "USD", QuoteCurrency: "VND"}

// String returns the pair in "USD-VND" form, as used in quote page URLs.
func (p CurrencyPair) String() string {
	return p.BaseCurrency + "-" + p.QuoteCurrency
}

// CachedRate is the last known exchange rate and the moment it was observed.
// Rate is expressed in quote currency units per one unit of base currency.
type CachedRate struct {
	Rate       float64
	LastUpdate time.Time
}

// Age returns how long before now the rate was observed.
func (c CachedRate) Age(now time.Time) time.Duration {
	return now.Sub(c.LastUpdate)
}
