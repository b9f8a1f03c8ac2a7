// Package export writes saved quotes and price tables to PDF and Excel
// files, and prints QR-coded price tags.
package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	contentWidth = pageWidth - marginLeft - marginRight
)

const footerText = "Generated by PriceWheel"

// column describes one table column.
type column struct {
	header string
	width  float64
	align  string
}

var quoteColumns = []column{
	{"ID", 20, "L"},
	{"Item", 54, "L"},
	{"Cost", 24, "R"},
	{"Margin", 16, "C"},
	{"Unit Price", 24, "R"},
	{"Qty", 12, "C"},
	{"Total", 30, "R"},
}

// ExportQuotesPDF writes the quotes as a table with a grand total.
func ExportQuotesPDF(path string, quotes []model.Quote) error {
	if len(quotes) == 0 {
		return fmt.Errorf("no quotes to export")
	}

	pdf := newDocument()
	pdf.AddPage()
	y := renderTitle(pdf, "Quotes", fmt.Sprintf("%d item(s), %s", len(quotes), time.Now().Format("2006-01-02")))
	y = renderHeaderRow(pdf, quoteColumns, y)

	pdf.SetFont("Helvetica", "", 9)
	total := decimal.Zero
	for i, q := range quotes {
		if y+rowHeight > pageHeight-marginBottom-rowHeight*2 {
			renderFooter(pdf)
			pdf.AddPage()
			y = renderHeaderRow(pdf, quoteColumns, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		cells := []string{
			q.ID,
			truncate(pdf, q.Label, quoteColumns[1].width-2),
			model.FormatPrice(q.Cost),
			fmt.Sprintf("%d%%", q.Margin),
			model.FormatPrice(q.Price),
			fmt.Sprintf("%d", q.Quantity),
			model.FormatPrice(q.Total()),
		}
		renderRow(pdf, quoteColumns, cells, y, i%2 == 0)
		y += rowHeight
		total = total.Add(q.Total())
	}

	pdf.SetFont("Helvetica", "B", 10)
	labelWidth := contentWidth - quoteColumns[len(quoteColumns)-1].width
	pdf.SetXY(marginLeft, y+2)
	pdf.CellFormat(labelWidth, rowHeight+1, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(quoteColumns[len(quoteColumns)-1].width, rowHeight+1, model.FormatPrice(total), "1", 0, "R", false, 0, "")

	renderFooter(pdf)
	return pdf.OutputFileAndClose(path)
}

var tableColumns = []column{
	{"Margin", 40, "C"},
	{"Selling Price", 70, "R"},
	{"Profit", 70, "R"},
}

// ExportPriceTablePDF writes the selling price of cost at every margin in rows.
func ExportPriceTablePDF(path string, cost model.CostText, rows []model.PriceRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("no margins to export")
	}
	if cost.IsZero() {
		return fmt.Errorf("cost must be greater than zero")
	}

	pdf := newDocument()
	pdf.AddPage()
	y := renderTitle(pdf, "Price Table", "Cost "+model.FormatPrice(cost.Decimal()))
	y = renderHeaderRow(pdf, tableColumns, y)

	pdf.SetFont("Helvetica", "", 10)
	for i, r := range rows {
		if y+rowHeight > pageHeight-marginBottom-rowHeight {
			renderFooter(pdf)
			pdf.AddPage()
			y = renderHeaderRow(pdf, tableColumns, marginTop)
			pdf.SetFont("Helvetica", "", 10)
		}
		cells := []string{
			fmt.Sprintf("%d%%", r.Margin),
			model.FormatPrice(r.Price),
			model.FormatPrice(r.Price.Sub(cost.Decimal())),
		}
		renderRow(pdf, tableColumns, cells, y, i%2 == 0)
		y += rowHeight
	}

	renderFooter(pdf)
	return pdf.OutputFileAndClose(path)
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("PriceWheel", false)
	return pdf
}

// renderTitle draws the page title and subtitle and returns the y below them.
func renderTitle(pdf *fpdf.Fpdf, title, subtitle string) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(contentWidth, 5, subtitle, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+7, pageWidth-marginRight, marginTop+headerHeight+7)
	return marginTop + headerHeight + 11
}

func renderHeaderRow(pdf *fpdf.Fpdf, cols []column, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for _, c := range cols {
		pdf.SetXY(x, y)
		pdf.CellFormat(c.width, rowHeight, c.header, "1", 0, "C", true, 0, "")
		x += c.width
	}
	return y + rowHeight
}

func renderRow(pdf *fpdf.Fpdf, cols []column, cells []string, y float64, shaded bool) {
	if shaded {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for i, c := range cols {
		pdf.SetXY(x, y)
		pdf.CellFormat(c.width, rowHeight, cells[i], "1", 0, c.align, true, 0, "")
		x += c.width
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, footerText, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
