// Package pricing computes customer-facing quote prices from supplier
// quotes. Supplier prices arrive as free-form strings ("$2.45/pc",
// "2,450.00 USD") and are sanitized before parsing; anything that does
// not yield a usable number produces an empty Quote rather than an
// error, so callers can persist partial updates without blocking on
// bad pricing input.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote holds the computed customer price. Both fields are nil when
// the inputs could not produce a price.
type Quote struct {
	PerUnit *float64
	Total   *float64
}

// Empty reports whether no price could be computed.
func (q Quote) Empty() bool {
	return q.PerUnit == nil && q.Total == nil
}

// Parse extracts the numeric value from a raw supplier price string.
// Returns false when the string holds no usable number.
func Parse(supplierPrice string) (float64, bool) {
	cleaned := sanitize(supplierPrice)
	if cleaned == "" {
		return 0, false
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	value, _ := price.Float64()
	return value, true
}

// Final computes the per-unit and total customer price from a raw
// supplier price string, a margin percentage, and a quantity.
//
//	perUnit = round2(price * (1 + margin/100))
//	total   = round2(perUnit * quantity)
//
// Rounding is half away from zero at two decimal places. Returns an
// empty Quote when the price is unparseable or the quantity is not
// positive.
func Final(supplierPrice string, marginPercent float64, quantity int) Quote {
	cleaned := sanitize(supplierPrice)
	if cleaned == "" {
		return Quote{}
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Quote{}
	}
	return compute(price, marginPercent, quantity)
}

// FinalFromFloat is Final for supplier prices already stored as
// numbers.
func FinalFromFloat(supplierPrice float64, marginPercent float64, quantity int) Quote {
	if math.IsNaN(supplierPrice) || math.IsInf(supplierPrice, 0) {
		return Quote{}
	}
	return compute(decimal.NewFromFloat(supplierPrice), marginPercent, quantity)
}

func compute(price decimal.Decimal, marginPercent float64, quantity int) Quote {
	if quantity <= 0 {
		return Quote{}
	}
	if math.IsNaN(marginPercent) || math.IsInf(marginPercent, 0) {
		return Quote{}
	}

	factor := decimal.NewFromFloat(1).Add(decimal.NewFromFloat(marginPercent).Shift(-2))
	perUnit := price.Mul(factor).Round(2)
	total := perUnit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	perUnitF, _ := perUnit.Float64()
	totalF, _ := total.Float64()
	return Quote{PerUnit: &perUnitF, Total: &totalF}
}

// sanitize strips everything except digits and decimal points.
// "$2,450.00/pc" becomes "2450.00". Malformed results ("", ".",
// "1.2.3") fail the decimal parse in Final and yield an empty Quote.
func sanitize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
