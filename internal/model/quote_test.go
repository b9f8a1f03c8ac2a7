package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewQuote(t *testing.T) {
	q := NewQuote("Widget", "50", 60)
	if len(q.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", q.ID)
	}
	if !q.Price.Equal(decimal.NewFromInt(125)) {
		t.Errorf("expected price 125, got %s", q.Price)
	}
	if q.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", q.Quantity)
	}
	if q.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestQuoteZeroCost(t *testing.T) {
	q := NewQuote("Free", "", 40)
	if !q.Price.IsZero() {
		t.Errorf("expected zero price, got %s", q.Price)
	}
}

func TestQuotesFromLines(t *testing.T) {
	lines := []CostLine{
		{Label: "A", Cost: "10", Quantity: 3},
		{Label: "B", Cost: "20", Quantity: 0},
	}
	quotes := QuotesFromLines(lines, 50)
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if !quotes[0].Total().Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected total 60, got %s", quotes[0].Total())
	}
	if quotes[1].Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", quotes[1].Quantity)
	}
}

func TestQuoteBook(t *testing.T) {
	var book QuoteBook
	a := NewQuote("A", "10", 50)
	b := NewQuote("B", "30", 50)
	book.Add(a, b)

	if _, ok := book.Find(b.ID); !ok {
		t.Error("expected to find B")
	}
	if !book.Total().Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected total 80, got %s", book.Total())
	}
	if !book.Remove(a.ID) {
		t.Error("expected A to be removed")
	}
	if book.Remove(a.ID) {
		t.Error("removing twice should report false")
	}
	if len(book.Quotes) != 1 {
		t.Errorf("expected 1 quote left, got %d", len(book.Quotes))
	}
	book.Clear()
	if book.Quotes == nil || len(book.Quotes) != 0 {
		t.Error("expected empty non-nil quotes after Clear")
	}
}

func TestPriceTable(t *testing.T) {
	rows := PriceTable("50", []int{0, 50, 60, 100})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Margin != 50 || !rows[0].Price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if !rows[1].Price.Equal(decimal.NewFromInt(125)) {
		t.Errorf("expected 125 at 60%%, got %s", rows[1].Price)
	}
}

func TestMarginRange(t *testing.T) {
	got := MarginRange(-5, 120, 25)
	want := []int{1, 26, 51, 76}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
	if len(MarginRange(10, 12, 0)) != 3 {
		t.Error("non-positive step should be treated as 1")
	}
}
