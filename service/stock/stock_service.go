package stock

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
)

type SalesStore interface {
	Create(s *entity.DailySales) error
	Get(id string) (*entity.DailySales, error)
	Delete(id string) error
}

type AdjustmentStore interface {
	Create(a *entity.StockAdjustment) error
	Get(id string) (*entity.StockAdjustment, error)
	Delete(id string) error
}

// Service records sales and manual adjustments together with their stock effect.
type Service struct {
	ledger      *Ledger
	items       ItemStore
	sales       SalesStore
	adjustments AdjustmentStore
}

func NewService(items ItemStore, sales SalesStore, adjustments AdjustmentStore) *Service {
	return &Service{
		ledger:      NewLedger(items),
		items:       items,
		sales:       sales,
		adjustments: adjustments,
	}
}

func (s *Service) Ledger() *Ledger { return s.ledger }

type SaleInput struct {
	Date       time.Time
	ItemCode   string
	Quantity   int
	UnitPrice  decimal.Decimal // zero means the item's catalog price
	RecordedBy string
}

// RecordSale debits stock and stores the sale. If storing the sale fails the debit is reversed.
func (s *Service) RecordSale(in SaleInput) (*entity.DailySales, Movement, error) {
	if in.Quantity <= 0 {
		return nil, Movement{}, errs.Invalid("sale quantity must be positive, got %d", in.Quantity)
	}
	if in.UnitPrice.IsNegative() {
		return nil, Movement{}, errs.Invalid("sale unit price must not be negative")
	}
	it, err := s.items.Get(in.ItemCode)
	if err != nil {
		return nil, Movement{}, err
	}
	price := in.UnitPrice
	if price.IsZero() {
		price = it.UnitPrice
	}
	date := in.Date
	if date.IsZero() {
		date = entity.Today()
	}

	mv, err := s.ledger.ApplyDelta(in.ItemCode, -in.Quantity)
	if err != nil {
		return nil, Movement{}, err
	}
	sale := &entity.DailySales{
		Date:       date,
		ItemCode:   in.ItemCode,
		Quantity:   in.Quantity,
		UnitPrice:  price,
		RecordedBy: in.RecordedBy,
	}
	if err := s.sales.Create(sale); err != nil {
		s.compensate(in.ItemCode, in.Quantity)
		return nil, Movement{}, err
	}
	return sale, mv, nil
}

// DeleteSale removes a sale and returns its quantity to stock.
func (s *Service) DeleteSale(id string) (Movement, error) {
	sale, err := s.sales.Get(id)
	if err != nil {
		return Movement{}, err
	}
	mv, err := s.ledger.ApplyDelta(sale.ItemCode, sale.Quantity)
	if err != nil {
		return Movement{}, err
	}
	if err := s.sales.Delete(id); err != nil {
		s.compensate(sale.ItemCode, -sale.Quantity)
		return Movement{}, err
	}
	return mv, nil
}

type AdjustmentInput struct {
	Date       time.Time
	ItemCode   string
	Type       entity.AdjustmentType
	Quantity   int
	Reason     string
	AdjustedBy string
}

// RecordAdjustment applies a manual correction and stores it. A SUBTRACT larger than the stock on
// hand fails with InsufficientStock and nothing is stored.
func (s *Service) RecordAdjustment(in AdjustmentInput) (*entity.StockAdjustment, Movement, error) {
	if in.Quantity <= 0 {
		return nil, Movement{}, errs.Invalid("adjustment quantity must be positive, got %d", in.Quantity)
	}
	typ, err := entity.ParseAdjustmentType(string(in.Type))
	if err != nil {
		return nil, Movement{}, err
	}
	date := in.Date
	if date.IsZero() {
		date = entity.Today()
	}
	adj := &entity.StockAdjustment{
		ItemCode:   in.ItemCode,
		Date:       date,
		Type:       typ,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		AdjustedBy: in.AdjustedBy,
	}
	mv, err := s.ledger.ApplyDelta(in.ItemCode, adj.Delta())
	if err != nil {
		return nil, Movement{}, err
	}
	if err := s.adjustments.Create(adj); err != nil {
		s.compensate(in.ItemCode, -adj.Delta())
		return nil, Movement{}, err
	}
	return adj, mv, nil
}

// DeleteAdjustment removes an adjustment and reverses its effect on stock.
func (s *Service) DeleteAdjustment(id string) (Movement, error) {
	adj, err := s.adjustments.Get(id)
	if err != nil {
		return Movement{}, err
	}
	mv, err := s.ledger.ApplyDelta(adj.ItemCode, -adj.Delta())
	if err != nil {
		return Movement{}, err
	}
	if err := s.adjustments.Delete(id); err != nil {
		s.compensate(adj.ItemCode, adj.Delta())
		return Movement{}, err
	}
	return mv, nil
}

// LowStock returns items at or below their reorder level.
func (s *Service) LowStock() ([]entity.Item, error) {
	return s.items.LowStock()
}

func (s *Service) compensate(code string, delta int) {
	if _, err := s.ledger.ApplyDelta(code, delta); err != nil {
		log.Printf("stock: could not reverse %+d on %s: %v", delta, code, err)
	}
}
