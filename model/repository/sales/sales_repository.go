package sales

import (
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"procure.GO/core/flatfile"
	"procure.GO/core/sequence"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
)

const (
	FileName = "daily_sales.txt"
	Prefix   = "DS"
)

type SalesRepository struct {
	store *flatfile.Store[entity.DailySales]
}

func NewSalesRepository(root string, opts ...repository.Option) *SalesRepository {
	o := repository.Apply(opts)
	return &SalesRepository{
		store: flatfile.New[entity.DailySales](filepath.Join(root, FileName), "sale", codec{}, o.StoreOptions()...),
	}
}

// Create appends a sale record, allocating its ID when empty. It does not touch stock.
func (r *SalesRepository) Create(s *entity.DailySales) error {
	created, err := r.store.AppendNew(func(existing []entity.DailySales) (entity.DailySales, error) {
		rec := *s
		if rec.ID == "" {
			rec.ID = sequence.Next(r.store.KeysOf(existing), Prefix, "")
		}
		return rec, nil
	})
	if err != nil {
		return err
	}
	*s = created
	return nil
}

// Update replaces the price, date and recorder of a sale. Item and quantity are kept as stored
// since stock was debited for them; correct those by deleting and recording the sale again.
func (r *SalesRepository) Update(s *entity.DailySales) error {
	updated, err := r.store.Update(s.ID, func(cur entity.DailySales) (entity.DailySales, error) {
		next := *s
		next.ItemCode = cur.ItemCode
		next.Quantity = cur.Quantity
		return next, nil
	})
	if err != nil {
		return err
	}
	*s = updated
	return nil
}

func (r *SalesRepository) Delete(id string) error {
	return r.store.Delete(id)
}

func (r *SalesRepository) Get(id string) (*entity.DailySales, error) {
	s, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SalesRepository) List() ([]entity.DailySales, error) {
	return r.store.List()
}

func (r *SalesRepository) NextID() (string, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return "", err
	}
	return sequence.Next(keys, Prefix, ""), nil
}

// Between returns sales dated from..to inclusive. A zero bound is open.
func (r *SalesRepository) Between(from, to time.Time) ([]entity.DailySales, error) {
	return r.store.Filter(func(s entity.DailySales) bool { return entity.InRange(s.Date, from, to) })
}

func (r *SalesRepository) ForItem(code string) ([]entity.DailySales, error) {
	return r.store.Filter(func(s entity.DailySales) bool { return s.ItemCode == code })
}

// TotalFor sums the sales amount over the period.
func (r *SalesRepository) TotalFor(from, to time.Time) (decimal.Decimal, error) {
	list, err := r.Between(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, s := range list {
		total = total.Add(s.SalesAmount())
	}
	return total, nil
}
