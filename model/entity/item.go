package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"procure.GO/core/errs"
)

// Item is a catalog entry. CurrentStock is changed only through the stock ledger.
type Item struct {
	Code         string          `json:"item_code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int             `json:"current_stock"`
	ReorderLevel int             `json:"reorder_level"`
	SupplierID   string          `json:"supplier_id"`
}

// IsLowStock reports whether stock is at or below the reorder level.
func (i Item) IsLowStock() bool {
	return i.CurrentStock <= i.ReorderLevel
}

// StockValue is the current stock valued at unit price.
func (i Item) StockValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errs.Invalid("item %s: name is required", i.Code)
	}
	if i.UnitPrice.IsNegative() {
		return errs.Invalid("item %s: unit price must not be negative", i.Code)
	}
	if i.CurrentStock < 0 {
		return errs.Invalid("item %s: stock must not be negative", i.Code)
	}
	if i.ReorderLevel < 0 {
		return errs.Invalid("item %s: reorder level must not be negative", i.Code)
	}
	return nil
}
