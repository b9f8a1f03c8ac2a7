package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/PriceWheel/internal/model"
)

// DefaultQuotesPath returns ~/.pricewheel/quotes.json.
func DefaultQuotesPath() string {
	return filepath.Join(DefaultConfigDir(), "quotes.json")
}

// SaveQuotes writes the quote book to path, creating parent directories.
func SaveQuotes(path string, book model.QuoteBook) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create quotes directory: %w", err)
	}
	if book.Quotes == nil {
		book.Quotes = []model.Quote{}
	}
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal quotes: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write quotes file: %w", err)
	}
	return nil
}

// LoadQuotes reads the quote book at path. A missing file is an empty book.
func LoadQuotes(path string) (model.QuoteBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.QuoteBook{Quotes: []model.Quote{}}, nil
		}
		return model.QuoteBook{}, fmt.Errorf("failed to read quotes file: %w", err)
	}
	var book model.QuoteBook
	if err := json.Unmarshal(data, &book); err != nil {
		return model.QuoteBook{}, fmt.Errorf("failed to parse quotes file: %w", err)
	}
	if book.Quotes == nil {
		book.Quotes = []model.Quote{}
	}
	return book, nil
}

// MergeQuotes appends the quotes of imported whose IDs are not already in
// existing and returns how many were added.
func MergeQuotes(existing *model.QuoteBook, imported model.QuoteBook) int {
	ids := make(map[string]bool, len(existing.Quotes))
	for _, q := range existing.Quotes {
		ids[q.ID] = true
	}
	added := 0
	for _, q := range imported.Quotes {
		if ids[q.ID] {
			continue
		}
		existing.Add(q)
		ids[q.ID] = true
		added++
	}
	return added
}
