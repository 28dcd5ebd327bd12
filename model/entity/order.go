package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POLine is one ordered item, priced from the catalog when the order was created.
type POLine struct {
	ItemCode   string          `json:"item_code"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	SupplierID string          `json:"supplier_id"`
}

func (l POLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PurchaseOrder is a supplier commitment created from an approved requisition.
type PurchaseOrder struct {
	ID           string    `json:"po_id"`
	PRID         string    `json:"pr_id"`
	PODate       time.Time `json:"po_date"`
	DeliveryDate time.Time `json:"delivery_date"`
	Status       Status    `json:"status"`
	CreatedBy    string    `json:"created_by"`
	Lines        []POLine  `json:"lines"`
}

// TotalAmount is always derived from the lines.
func (po PurchaseOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(l.Amount())
	}
	return total
}

// Suppliers returns the distinct supplier IDs on the order in line order.
func (po PurchaseOrder) Suppliers() []string {
	seen := make(map[string]bool, len(po.Lines))
	var out []string
	for _, l := range po.Lines {
		if l.SupplierID == "" || seen[l.SupplierID] {
			continue
		}
		seen[l.SupplierID] = true
		out = append(out, l.SupplierID)
	}
	return out
}
