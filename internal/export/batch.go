package export

import (
	"fmt"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// PriceCostLines prices imported cost lines at margin, producing one quote
// per line.
func PriceCostLines(lines []model.CostLine, margin int) ([]model.Quote, error) {
	if !model.ValidMargin(margin) {
		return nil, fmt.Errorf("margin %d outside %d-%d", margin, model.MinMargin, model.MaxMargin)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no cost lines to price")
	}
	return model.QuotesFromLines(lines, margin), nil
}
