package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PriceWheel/internal/importer"
	"github.com/piwi3910/PriceWheel/internal/model"
)

func TestExportQuotesExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.xlsx")
	quotes := buildTestQuotes(3)

	if err := ExportQuotesExcel(path, quotes); err != nil {
		t.Fatalf("ExportQuotesExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	if f.GetSheetName(0) != quoteSheet {
		t.Errorf("expected sheet %q, got %q", quoteSheet, f.GetSheetName(0))
	}
	rows, err := f.GetRows(quoteSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header, 3 rows and total, got %d rows", len(rows))
	}
	if rows[0][1] != "Item" || rows[1][0] != quotes[0].ID {
		t.Errorf("unexpected content %v / %v", rows[0], rows[1])
	}
	formula, err := f.GetCellFormula(quoteSheet, "G5")
	if err != nil {
		t.Fatal(err)
	}
	if formula != "SUM(G2:G4)" {
		t.Errorf("expected total formula, got %q", formula)
	}
}

func TestExportQuotesExcel_Empty(t *testing.T) {
	if err := ExportQuotesExcel(filepath.Join(t.TempDir(), "q.xlsx"), nil); err == nil {
		t.Fatal("expected error for no quotes")
	}
}

func TestExportedWorkbookReimports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.xlsx")
	if err := ExportQuotesExcel(path, buildTestQuotes(2)); err != nil {
		t.Fatal(err)
	}

	result := importer.ImportExcel(path)
	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 lines back, got %d (errors: %v)", len(result.Lines), result.Errors)
	}
	if result.Lines[0].Label != "Item 1" || result.Lines[0].Cost != "10.5" {
		t.Errorf("unexpected line %+v", result.Lines[0])
	}
}

func TestPriceCostLines(t *testing.T) {
	lines := []model.CostLine{{Label: "Mug", Cost: "4", Quantity: 2}}
	quotes, err := PriceCostLines(lines, 60)
	if err != nil {
		t.Fatal(err)
	}
	if quotes[0].Total().StringFixed(2) != "20.00" {
		t.Errorf("expected total 20.00, got %s", quotes[0].Total())
	}
	if _, err := PriceCostLines(lines, 0); err == nil {
		t.Error("expected error for invalid margin")
	}
	if _, err := PriceCostLines(nil, 50); err == nil {
		t.Error("expected error for no lines")
	}
}
