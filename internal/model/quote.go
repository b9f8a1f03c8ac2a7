package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is a saved pricing: one cost priced at one margin.
type Quote struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Cost      decimal.Decimal `json:"cost"`
	Margin    int             `json:"margin"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewQuote prices cost at margin and stamps the result with a generated ID.
func NewQuote(label string, cost CostText, margin int) Quote {
	d := cost.Decimal()
	price, _ := PriceValue(d, margin)
	return Quote{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Cost:      d,
		Margin:    margin,
		Price:     price,
		Quantity:  1,
		CreatedAt: time.Now().UTC(),
	}
}

// Total is the unit price times the quantity.
func (q Quote) Total() decimal.Decimal {
	qty := q.Quantity
	if qty < 1 {
		qty = 1
	}
	return q.Price.Mul(decimal.NewFromInt(int64(qty)))
}

// CostLine is one imported item awaiting pricing.
type CostLine struct {
	Label    string
	Cost     CostText
	Quantity int
}

// QuotesFromLines prices every line at the same margin.
func QuotesFromLines(lines []CostLine, margin int) []Quote {
	quotes := make([]Quote, 0, len(lines))
	for _, l := range lines {
		q := NewQuote(l.Label, l.Cost, margin)
		if l.Quantity > 0 {
			q.Quantity = l.Quantity
		}
		quotes = append(quotes, q)
	}
	return quotes
}

// QuoteBook is the persisted list of saved quotes, newest last.
type QuoteBook struct {
	Quotes []Quote `json:"quotes"`
}

// Add appends quotes to the book.
func (b *QuoteBook) Add(q ...Quote) {
	b.Quotes = append(b.Quotes, q...)
}

// Remove deletes the quote with the given ID and reports whether it existed.
func (b *QuoteBook) Remove(id string) bool {
	for i, q := range b.Quotes {
		if q.ID == id {
			b.Quotes = append(b.Quotes[:i], b.Quotes[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the quote with the given ID.
func (b QuoteBook) Find(id string) (Quote, bool) {
	for _, q := range b.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}

// Clear removes every quote.
func (b *QuoteBook) Clear() {
	b.Quotes = []Quote{}
}

// Total sums the line totals of every quote.
func (b QuoteBook) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, q := range b.Quotes {
		sum = sum.Add(q.Total())
	}
	return sum
}
