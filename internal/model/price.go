package model

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// zeroPrice is what the price display shows for an empty or zero cost.
const zeroPrice = "0.00"

var (
	hundred = decimal.NewFromInt(100)

	// maxGrouped is the largest integer part handed to the grouping printer.
	maxGrouped = decimal.New(1, 18)

	pricePrinter = message.NewPrinter(language.AmericanEnglish)
)

// PriceValue computes cost / (1 - margin/100) rounded half away from zero
// to cents. ok is false for a zero cost or an invalid margin.
func PriceValue(cost decimal.Decimal, margin int) (price decimal.Decimal, ok bool) {
	if cost.Sign() <= 0 || !ValidMargin(margin) {
		return decimal.Zero, false
	}
	divisor := decimal.NewFromInt(int64(100 - margin))
	return cost.Mul(hundred).Div(divisor).Round(2), true
}

// SellingPrice returns the formatted selling price for a cost text and margin.
func SellingPrice(cost CostText, margin int) string {
	price, ok := PriceValue(cost.Decimal(), margin)
	if !ok {
		return zeroPrice
	}
	return FormatPrice(price)
}

// FormatPrice renders d with exactly two fractional digits and en-US
// thousands separators, e.g. "1,234.50".
func FormatPrice(d decimal.Decimal) string {
	r := d.Round(2)
	fixed := r.StringFixed(2)
	if r.Abs().GreaterThanOrEqual(maxGrouped) {
		return fixed
	}
	_, frac, _ := strings.Cut(fixed, ".")
	grouped := pricePrinter.Sprintf("%d", r.Abs().Truncate(0).IntPart())
	if r.IsNegative() {
		grouped = "-" + grouped
	}
	return grouped + "." + frac
}
