// Package stock owns every change to an item's on-hand quantity. Sales, adjustments and goods
// receipts all go through Ledger.ApplyDelta, which refuses any change that would leave stock
// below zero.
package stock

import (
	"procure.GO/core/errs"
	"procure.GO/model/entity"
)

// ItemStore is the part of the item repository the ledger needs.
type ItemStore interface {
	Get(code string) (*entity.Item, error)
	UpdateStock(code string, fn func(cur entity.Item) (int, error)) (entity.Item, entity.Item, error)
	LowStock() ([]entity.Item, error)
}

// Movement is the outcome of one applied delta.
type Movement struct {
	ItemCode string
	Before   int
	After    int
}

func (m Movement) Delta() int { return m.After - m.Before }

type Ledger struct {
	items ItemStore
}

func NewLedger(items ItemStore) *Ledger {
	return &Ledger{items: items}
}

// ApplyDelta adds delta to the item's stock. The read and the write happen under the item file
// lock. A result below zero fails with InsufficientStock and the stored value is untouched.
func (l *Ledger) ApplyDelta(code string, delta int) (Movement, error) {
	before, after, err := l.items.UpdateStock(code, func(cur entity.Item) (int, error) {
		next := cur.CurrentStock + delta
		if next < 0 {
			return 0, &errs.InsufficientStockError{ItemCode: code, Current: cur.CurrentStock, Delta: delta}
		}
		return next, nil
	})
	if err != nil {
		return Movement{}, err
	}
	return Movement{ItemCode: code, Before: before.CurrentStock, After: after.CurrentStock}, nil
}
