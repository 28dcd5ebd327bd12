package adjustment

import (
	"path/filepath"
	"time"

	"procure.GO/core/flatfile"
	"procure.GO/core/sequence"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
)

const (
	FileName = "stock_adjustments.txt"
	Prefix   = "ADJ"
)

type AdjustmentRepository struct {
	store *flatfile.Store[entity.StockAdjustment]
}

func NewAdjustmentRepository(root string, opts ...repository.Option) *AdjustmentRepository {
	o := repository.Apply(opts)
	return &AdjustmentRepository{
		store: flatfile.New[entity.StockAdjustment](filepath.Join(root, FileName), "stock adjustment", codec{}, o.StoreOptions()...),
	}
}

// Create appends the adjustment record only; applying it to stock is the ledger's job.
func (r *AdjustmentRepository) Create(a *entity.StockAdjustment) error {
	created, err := r.store.AppendNew(func(existing []entity.StockAdjustment) (entity.StockAdjustment, error) {
		rec := *a
		if rec.ID == "" {
			rec.ID = sequence.Next(r.store.KeysOf(existing), Prefix, "")
		}
		return rec, nil
	})
	if err != nil {
		return err
	}
	*a = created
	return nil
}

// Update replaces the date, reason and author of an adjustment. Item, type and quantity are kept
// as stored because the stock change was already applied.
func (r *AdjustmentRepository) Update(a *entity.StockAdjustment) error {
	updated, err := r.store.Update(a.ID, func(cur entity.StockAdjustment) (entity.StockAdjustment, error) {
		next := *a
		next.ItemCode = cur.ItemCode
		next.Type = cur.Type
		next.Quantity = cur.Quantity
		return next, nil
	})
	if err != nil {
		return err
	}
	*a = updated
	return nil
}

func (r *AdjustmentRepository) Delete(id string) error {
	return r.store.Delete(id)
}

func (r *AdjustmentRepository) Get(id string) (*entity.StockAdjustment, error) {
	a, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdjustmentRepository) List() ([]entity.StockAdjustment, error) {
	return r.store.List()
}

func (r *AdjustmentRepository) NextID() (string, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return "", err
	}
	return sequence.Next(keys, Prefix, ""), nil
}

func (r *AdjustmentRepository) ForItem(code string) ([]entity.StockAdjustment, error) {
	return r.store.Filter(func(a entity.StockAdjustment) bool { return a.ItemCode == code })
}

func (r *AdjustmentRepository) Between(from, to time.Time) ([]entity.StockAdjustment, error) {
	return r.store.Filter(func(a entity.StockAdjustment) bool { return entity.InRange(a.Date, from, to) })
}
