// Package currency converts monetary amounts between a fixed set of
// currencies using a static rate table.
package currency

import "log/slog"

// Supported currency codes.
const (
	INR = "INR"
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	JPY = "JPY"
	CAD = "CAD"
	AUD = "AUD"
)

// Codes lists every supported currency code.
var Codes = []string{INR, USD, EUR, GBP, JPY, CAD, AUD}

// IsSupported reports whether code is one of the recognized currencies.
func IsSupported(code string) bool {
	for _, c := range Codes {
		if c == code {
			return true
		}
	}
	return false
}

// RateTable maps [from][to] to a multiplicative conversion rate. Rates for
// each pair are specified independently, not derived from a single pivot,
// so converting A -> B -> A need not return the original amount.
type RateTable map[string]map[string]float64

// Conversion is the result of a rate lookup. Converted is false when no
// rate exists for the pair and the amount passed through unchanged, so
// callers can assert which path was taken instead of inferring it from logs.
type Conversion struct {
	Amount    float64
	Converted bool
}

// Converter converts amounts using an injected rate table.
type Converter struct {
	rates RateTable
}

// NewConverter creates a Converter backed by the given table. Tests can
// supply synthetic tables, including deliberately inconsistent or sparse
// ones.
func NewConverter(rates RateTable) *Converter {
	return &Converter{rates: rates}
}

// Convert converts amount from one currency to another.
//
// Same-currency conversion is an exact identity: no lookup, no
// floating-point drift. A missing rate fails open: the condition is logged
// and the original amount is returned with Converted=false, so one bad pair
// degrades a single expense's contribution instead of crashing a whole
// group's balance computation.
func (c *Converter) Convert(amount float64, from, to string) Conversion {
	if from == to {
		return Conversion{Amount: amount, Converted: true}
	}

	rate, ok := c.rates[from][to]
	if !ok {
		slog.Warn("conversion rate not found", "from", from, "to", to)
		return Conversion{Amount: amount, Converted: false}
	}

	return Conversion{Amount: amount * rate, Converted: true}
}
