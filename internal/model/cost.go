package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// maxFractionDigits is the number of digits allowed after the decimal point.
const maxFractionDigits = 2

// CostText is a non-negative decimal under construction on the keypad.
// It holds at most one decimal point and at most two fractional digits.
// The zero value is the empty text, which prices as a cost of zero.
type CostText string

// Append returns the text after typing r. Runes other than 0-9 and '.'
// and edits that would break the format leave the text unchanged.
func (c CostText) Append(r rune) CostText {
	s := string(c)

	if r == '.' {
		if strings.Contains(s, ".") {
			return c
		}
		if s == "" {
			return "0."
		}
		return CostText(s + ".")
	}
	if r < '0' || r > '9' {
		return c
	}

	next := s + string(r)
	// Typing into "0" replaces the zero rather than producing "01".
	if len(next) > 1 && strings.HasPrefix(next, "0") && !strings.HasPrefix(next, "0.") {
		next = next[1:]
	}
	if dot := strings.IndexByte(next, '.'); dot >= 0 && len(next)-dot-1 > maxFractionDigits {
		return c
	}
	return CostText(next)
}

// Decimal reduces the text to a number. Empty or unparsable text is zero.
func (c CostText) Decimal() decimal.Decimal {
	s := strings.TrimSuffix(string(c), ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// IsZero reports whether the text prices as a zero cost.
func (c CostText) IsZero() bool {
	return c.Decimal().IsZero()
}

// Display returns the text shown in the formula row, "0.00" while empty.
func (c CostText) Display() string {
	if c == "" {
		return "0.00"
	}
	return string(c)
}

// ParseCost converts free-form numeric input (for example an imported
// spreadsheet cell) into a CostText, rounding to two fractional digits.
// Negative or non-numeric input is an error.
func ParseCost(s string) (CostText, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return "", fmt.Errorf("empty cost")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid cost %q", s)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("negative cost %q", s)
	}
	return CostText(d.Round(maxFractionDigits).String()), nil
}
