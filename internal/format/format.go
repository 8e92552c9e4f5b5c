// Package format renders amounts and percentages for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a currency code is empty or unknown.
const DefaultCurrency = money.USD

// KnownCurrency reports whether code is an ISO 4217 code go-money can format.
func KnownCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Money formats amount in currency, e.g. "$11,850.00". The amount is rounded
// half away from zero to the currency's minor unit. Amounts too large to count
// in minor units are shown in Compact form.
func Money(amount float64, currency string) string {
	code := strings.ToUpper(currency)
	cur := money.GetCurrency(code)
	if cur == nil {
		code = DefaultCurrency
		cur = money.GetCurrency(code)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		// go-money counts minor units in an int64.
		return Compact(amount)
	}
	return money.New(minor.IntPart(), code).Display()
}

// Compact formats large dollar amounts with a K, M or B suffix, e.g. "$1.23B".
func Compact(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("%s$%.2fB", sign, amount/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("%s$%.2fM", sign, amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("%s$%.2fK", sign, amount/1_000)
	default:
		return fmt.Sprintf("%s$%.2f", sign, amount)
	}
}

// SignedPercent formats p with an explicit sign, e.g. "+9.30%".
func SignedPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}
