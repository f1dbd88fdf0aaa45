// Package format provides locale-aware currency and number rendering for
// the presentation surfaces. No business logic lives here.
package format

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the platform's display currency.
const DefaultCurrency = "INR"

// Amount renders a monetary value with its currency symbol and Indian-system
// digit grouping, e.g. ₹12,34,567. Fractional digits are dropped; the engine
// already rounds monetary outputs to whole units.
func Amount(amount decimal.Decimal) string {
	return AmountIn(DefaultCurrency, amount)
}

// AmountIn renders a monetary value in the given ISO currency code. Symbol
// and fraction metadata come from the currency table; unknown codes fall
// back to the code itself.
func AmountIn(code string, amount decimal.Decimal) string {
	symbol := code + " "
	if cur := money.GetCurrency(code); cur != nil {
		symbol = cur.Grapheme
	}

	if amount.IsNegative() {
		return "-" + symbol + groupIndian(amount.Abs().Round(0).String())
	}
	return symbol + groupIndian(amount.Round(0).String())
}

// Percent renders a percentage value with two decimal places.
func Percent(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

// Compact renders a value in lakh/crore notation for dense report surfaces:
// 1.25Cr, 50L, 75K. Values under a thousand render plain.
func Compact(amount decimal.Decimal) string {
	abs := amount.Abs()
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	thousand := decimal.NewFromInt(1000)

	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + trimZeros(abs.Div(crore).StringFixed(2)) + "Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + trimZeros(abs.Div(lakh).StringFixed(2)) + "L"
	case abs.GreaterThanOrEqual(thousand):
		return sign + trimZeros(abs.Div(thousand).StringFixed(2)) + "K"
	default:
		return sign + abs.Round(0).String()
	}
}

// groupIndian inserts Indian-system separators into a plain digit string:
// the last three digits form one group, the rest pair off (12,34,567).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)

	return strings.Join(groups, ",")
}

func trimZeros(s string) string {
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
