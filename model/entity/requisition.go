package entity

import (
	"time"

	"procure.GO/core/errs"
)

// PRLine is one requested item on a purchase requisition.
type PRLine struct {
	ItemCode   string `json:"item_code"`
	Quantity   int    `json:"quantity"`
	SupplierID string `json:"supplier_id"`
}

// PurchaseRequisition is an internal request to buy items. It is decided exactly once.
type PurchaseRequisition struct {
	ID           string    `json:"pr_id"`
	PRDate       time.Time `json:"pr_date"`
	RequiredDate time.Time `json:"required_date"`
	Status       Status    `json:"status"`
	RequestedBy  string    `json:"requested_by"`
	Lines        []PRLine  `json:"lines"`
}

// TotalQuantity sums the requested quantity across lines.
func (pr PurchaseRequisition) TotalQuantity() int {
	n := 0
	for _, l := range pr.Lines {
		n += l.Quantity
	}
	return n
}

func (pr PurchaseRequisition) Validate() error {
	if len(pr.Lines) == 0 {
		return errs.Invalid("requisition %s: at least one line is required", pr.ID)
	}
	for i, l := range pr.Lines {
		if l.ItemCode == "" {
			return errs.Invalid("requisition %s line %d: item code is required", pr.ID, i+1)
		}
		if l.Quantity <= 0 {
			return errs.Invalid("requisition %s line %d: quantity must be positive", pr.ID, i+1)
		}
	}
	if !pr.RequiredDate.IsZero() && !pr.PRDate.IsZero() && pr.RequiredDate.Before(pr.PRDate) {
		return errs.Invalid("requisition %s: required date is before requisition date", pr.ID)
	}
	return nil
}
