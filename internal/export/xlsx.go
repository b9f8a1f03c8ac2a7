package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PriceWheel/internal/model"
)

const quoteSheet = "Quotes"

var quoteHeaders = []string{"ID", "Item", "Cost", "Margin %", "Unit Price", "Qty", "Total", "Created"}

// ExportQuotesExcel writes the quotes to an xlsx workbook with a header row
// and a SUM total under the Total column.
func ExportQuotesExcel(path string, quotes []model.Quote) error {
	if len(quotes) == 0 {
		return fmt.Errorf("no quotes to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), quoteSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	if err := f.SetSheetRow(quoteSheet, "A1", &quoteHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(quoteSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, q := range quotes {
		row := []interface{}{
			q.ID,
			q.Label,
			q.Cost.InexactFloat64(),
			q.Margin,
			q.Price.InexactFloat64(),
			q.Quantity,
			q.Total().InexactFloat64(),
			q.CreatedAt.Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(quoteSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	last := len(quotes) + 1
	totalRow := last + 1
	if err := f.SetCellValue(quoteSheet, fmt.Sprintf("F%d", totalRow), "Total"); err != nil {
		return fmt.Errorf("failed to write total label: %w", err)
	}
	if err := f.SetCellFormula(quoteSheet, fmt.Sprintf("G%d", totalRow), fmt.Sprintf("SUM(G2:G%d)", last)); err != nil {
		return fmt.Errorf("failed to write total formula: %w", err)
	}
	if err := f.SetCellStyle(quoteSheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("G%d", totalRow), bold); err != nil {
		return fmt.Errorf("failed to style total: %w", err)
	}
	if err := f.SetCellStyle(quoteSheet, "C2", fmt.Sprintf("G%d", last), money); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}
	if err := f.SetColWidth(quoteSheet, "B", "B", 30); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
