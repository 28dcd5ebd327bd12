package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a currency amount with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseMoney parses a currency amount, rounding to cents.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Round(2), nil
}
