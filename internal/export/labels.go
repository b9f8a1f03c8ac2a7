package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// LabelInfo holds the data encoded into each price tag's QR code.
type LabelInfo struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Cost   string `json:"cost"`
	Margin int    `json:"margin"`
	Price  string `json:"price"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos turns quotes into tag payloads, one per quote.
func CollectLabelInfos(quotes []model.Quote) []LabelInfo {
	labels := make([]LabelInfo, 0, len(quotes))
	for _, q := range quotes {
		labels = append(labels, LabelInfo{
			ID:     q.ID,
			Label:  q.Label,
			Cost:   q.Cost.StringFixed(2),
			Margin: q.Margin,
			Price:  q.Price.StringFixed(2),
		})
	}
	return labels
}

// ExportLabels generates a PDF sheet of price tags, one per quote. Each tag
// shows the item name and price next to a QR code carrying the quote as JSON.
func ExportLabels(path string, quotes []model.Quote) error {
	labels := CollectLabelInfos(quotes)
	if len(labels) == 0 {
		return fmt.Errorf("no quotes to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, i, label, model.FormatPrice(quotes[i].Price)); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo, price string) error {
	// cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", n, info.ID)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.Label, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 7, price, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+15)
	pdf.CellFormat(textW, 3, fmt.Sprintf("#%s  margin %d%%", info.ID, info.Margin), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
