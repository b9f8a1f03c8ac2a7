package model

import "github.com/shopspring/decimal"

// PriceRow is the selling price of one cost at one margin.
type PriceRow struct {
	Margin int
	Price  decimal.Decimal
}

// MarginRange lists margins from..to inclusive in steps of step, keeping
// only selectable values. A non-positive step is treated as 1.
func MarginRange(from, to, step int) []int {
	if step <= 0 {
		step = 1
	}
	from = clampMargin(from)
	to = clampMargin(to)
	var margins []int
	for m := from; m <= to; m += step {
		margins = append(margins, m)
	}
	return margins
}

// PriceTable prices cost at each margin. Invalid margins are skipped.
func PriceTable(cost CostText, margins []int) []PriceRow {
	d := cost.Decimal()
	rows := make([]PriceRow, 0, len(margins))
	for _, m := range margins {
		if !ValidMargin(m) {
			continue
		}
		price, _ := PriceValue(d, m)
		rows = append(rows, PriceRow{Margin: m, Price: price})
	}
	return rows
}
