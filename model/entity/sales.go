package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySales records one sale of an item. Creating it debits the item's stock.
type DailySales struct {
	ID         string          `json:"sales_id"`
	Date       time.Time       `json:"date"`
	ItemCode   string          `json:"item_code"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	RecordedBy string          `json:"recorded_by"`
}

// SalesAmount is quantity × unit price.
func (s DailySales) SalesAmount() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
