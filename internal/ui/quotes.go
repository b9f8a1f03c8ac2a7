package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PriceWheel/internal/export"
	"github.com/piwi3910/PriceWheel/internal/importer"
	"github.com/piwi3910/PriceWheel/internal/model"
)

// priceTableMargins are the rows of the price table tab.
var priceTableMargins = model.MarginRange(5, 95, 5)

// ─── Quotes Panel ──────────────────────────────────────────

func (a *App) buildQuotesPanel() fyne.CanvasObject {
	a.quotesContainer = container.NewVBox()
	a.quotesTotal = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
	a.refreshQuotesList()

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), a.importCostList)
	exportBtn := widget.NewButtonWithIcon("Export PDF", theme.DocumentPrintIcon(), a.exportQuotesPDF)

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Saved Quotes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			importBtn,
			exportBtn,
		),
		a.quotesTotal,
		nil, nil,
		container.NewVScroll(a.quotesContainer),
	)
}

func (a *App) refreshQuotesList() {
	if a.quotesContainer == nil {
		return
	}
	a.quotesContainer.RemoveAll()
	a.quotesTotal.SetText(fmt.Sprintf("Total: %s", a.quotes.Total().StringFixed(2)))

	if len(a.quotes.Quotes) == 0 {
		a.quotesContainer.Add(widget.NewLabel("No quotes saved yet. Price an item and click 'Save Quote'."))
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.quotesContainer.Add(container.NewGridWithColumns(7,
		widget.NewLabelWithStyle("Item", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Cost", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Margin", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Price", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Qty", fyne.TextAlignLeading, bold),
		widget.NewLabel(""),
		widget.NewLabel(""),
	))
	a.quotesContainer.Add(widget.NewSeparator())

	for _, q := range a.quotes.Quotes {
		q := q
		a.quotesContainer.Add(container.NewGridWithColumns(7,
			widget.NewLabel(q.Label),
			widget.NewLabel(q.Cost.StringFixed(2)),
			widget.NewLabel(fmt.Sprintf("%d%%", q.Margin)),
			widget.NewLabel(q.Price.StringFixed(2)),
			widget.NewLabel(fmt.Sprintf("%d", q.Quantity)),
			newIconButtonWithTooltip(theme.MediaReplayIcon(), "Load into calculator", func() { a.LoadQuote(q.ID) }),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete quote", func() { a.DeleteQuote(q.ID) }),
		))
	}
	a.quotesContainer.Refresh()
}

// LoadQuote puts a saved quote's cost and margin back on the calculator.
func (a *App) LoadQuote(id string) bool {
	q, ok := a.quotes.Find(id)
	if !ok {
		return false
	}
	cost, err := model.ParseCost(q.Cost.String())
	if err != nil {
		a.logger.Warn("saved quote has an unusable cost", zap.String("id", id), zap.Error(err))
		return false
	}
	a.pushHistory("Load Quote")
	a.calc.Load(cost, q.Margin)
	if a.tabs != nil {
		a.tabs.SelectIndex(0)
	}
	return true
}

// ─── Price Table Panel ─────────────────────────────────────

func (a *App) buildPriceTablePanel() fyne.CanvasObject {
	a.tableContainer = container.NewVBox()
	a.refreshPriceTable()

	exportBtn := widget.NewButtonWithIcon("Export PDF", theme.DocumentPrintIcon(), a.exportPriceTable)
	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Price by Margin", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			exportBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.tableContainer),
	)
}

func (a *App) refreshPriceTable() {
	if a.tableContainer == nil {
		return
	}
	a.tableContainer.RemoveAll()

	cost := a.calc.Cost()
	if cost.IsZero() {
		a.tableContainer.Add(widget.NewLabel("Enter a cost to see prices across margins."))
		a.tableContainer.Refresh()
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.tableContainer.Add(container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Margin", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Price", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Profit", fyne.TextAlignLeading, bold),
	))
	a.tableContainer.Add(widget.NewSeparator())

	current := a.calc.Margin()
	d := cost.Decimal()
	for _, row := range model.PriceTable(cost, priceTableMargins) {
		style := fyne.TextStyle{Bold: row.Margin == current}
		a.tableContainer.Add(container.NewGridWithColumns(3,
			widget.NewLabelWithStyle(fmt.Sprintf("%d%%", row.Margin), fyne.TextAlignLeading, style),
			widget.NewLabelWithStyle(row.Price.StringFixed(2), fyne.TextAlignLeading, style),
			widget.NewLabelWithStyle(row.Price.Sub(d).StringFixed(2), fyne.TextAlignLeading, style),
		))
	}
	a.tableContainer.Refresh()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importCostList() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(importer.ImportFile(reader.URI().Path()))
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".txt", ".xlsx"}))
	d.Show()
}

// handleImportResult prices every imported line at the current margin and
// adds the quotes to the book.
func (a *App) handleImportResult(result importer.ImportResult) int {
	if len(result.Warnings) > 0 {
		a.logger.Warn("import warnings", zap.Strings("warnings", result.Warnings))
	}
	if len(result.Errors) > 0 && a.window != nil {
		msg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", msg), a.window)
	}
	if len(result.Lines) == 0 {
		return 0
	}

	quotes, err := export.PriceCostLines(result.Lines, a.calc.Margin())
	if err != nil {
		a.logger.Error("pricing imported lines failed", zap.Error(err))
		if a.window != nil {
			dialog.ShowError(err, a.window)
		}
		return 0
	}

	a.pushHistory("Import")
	a.quotes.Add(quotes...)
	a.saveQuotes()
	a.refreshQuotesList()
	a.logger.Info("imported cost list", zap.Int("quotes", len(quotes)), zap.Int("errors", len(result.Errors)))

	if a.window != nil {
		msg := fmt.Sprintf("Successfully priced %d items at %d%%.", len(quotes), a.calc.Margin())
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
	return len(quotes)
}

// saveFile asks for a destination and hands the path to write.
func (a *App) saveFile(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path); err != nil {
			a.logger.Error("export failed", zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) requireQuotes() bool {
	if len(a.quotes.Quotes) == 0 {
		dialog.ShowInformation("No quotes", "Save at least one quote first.", a.window)
		return false
	}
	return true
}

func (a *App) exportQuotesPDF() {
	if !a.requireQuotes() {
		return
	}
	quotes := a.Quotes()
	a.saveFile("quotes.pdf", func(path string) error {
		return export.ExportQuotesPDF(path, quotes)
	})
}

func (a *App) exportQuotesExcel() {
	if !a.requireQuotes() {
		return
	}
	quotes := a.Quotes()
	a.saveFile("quotes.xlsx", func(path string) error {
		return export.ExportQuotesExcel(path, quotes)
	})
}

func (a *App) exportLabels() {
	if !a.requireQuotes() {
		return
	}
	quotes := a.Quotes()
	a.saveFile("price-tags.pdf", func(path string) error {
		return export.ExportLabels(path, quotes)
	})
}

func (a *App) exportPriceTable() {
	cost := a.calc.Cost()
	if cost.IsZero() {
		dialog.ShowInformation("No cost", "Enter a cost first.", a.window)
		return
	}
	rows := model.PriceTable(cost, priceTableMargins)
	a.saveFile("price-table.pdf", func(path string) error {
		return export.ExportPriceTablePDF(path, cost, rows)
	})
}
