package item

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"procure.GO/core/cache"
	"procure.GO/core/errs"
	"procure.GO/core/flatfile"
	"procure.GO/core/sequence"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
)

const (
	FileName = "items.txt"
	Prefix   = "I"
)

type ItemRepository struct {
	store *flatfile.Store[entity.Item]
	cache *cache.Cache
	tag   string
	gen   *atomic.Uint64
}

// generations counts mutations per file so repositories opened on the same path agree on
// whether a memoized result is still current.
var generations sync.Map

func generationFor(path string) *atomic.Uint64 {
	v, _ := generations.LoadOrStore(filepath.Clean(path), new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

// NewItemRepository opens the item catalog kept under root.
func NewItemRepository(root string, opts ...repository.Option) *ItemRepository {
	o := repository.Apply(opts)
	path := filepath.Join(root, FileName)
	return &ItemRepository{
		store: flatfile.New[entity.Item](path, "item", codec{}, o.StoreOptions()...),
		cache: o.Cache,
		tag:   "items:" + path,
		gen:   generationFor(path),
	}
}

// Create adds a catalog entry. An empty code is allocated from the sequence.
func (r *ItemRepository) Create(it *entity.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	created, err := r.store.AppendNew(func(existing []entity.Item) (entity.Item, error) {
		rec := *it
		if rec.Code == "" {
			rec.Code = sequence.Next(r.store.KeysOf(existing), Prefix, "")
		}
		return rec, nil
	})
	if err != nil {
		return err
	}
	*it = created
	r.invalidate()
	return nil
}

// Update replaces the catalog fields of an item. Stock is kept as stored; it changes only
// through UpdateStock.
func (r *ItemRepository) Update(it *entity.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	updated, err := r.store.Update(it.Code, func(cur entity.Item) (entity.Item, error) {
		next := *it
		next.CurrentStock = cur.CurrentStock
		return next, nil
	})
	if err != nil {
		return err
	}
	*it = updated
	r.invalidate()
	return nil
}

func (r *ItemRepository) Delete(code string) error {
	if err := r.store.Delete(code); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// UpdateStock sets the stock of one item to the value computed by fn from the stored record.
// fn runs under the file lock; an error from it leaves the file unchanged. It returns the record
// before and after the change. The stock ledger is the only intended caller.
func (r *ItemRepository) UpdateStock(code string, fn func(cur entity.Item) (int, error)) (entity.Item, entity.Item, error) {
	var before entity.Item
	after, err := r.store.Update(code, func(cur entity.Item) (entity.Item, error) {
		before = cur
		stock, err := fn(cur)
		if err != nil {
			return cur, err
		}
		if stock < 0 {
			return cur, &errs.InsufficientStockError{ItemCode: code, Current: cur.CurrentStock, Delta: stock - cur.CurrentStock}
		}
		cur.CurrentStock = stock
		return cur, nil
	})
	if err != nil {
		return entity.Item{}, entity.Item{}, err
	}
	r.invalidate()
	return before, after, nil
}

// Get returns the item with the given code.
func (r *ItemRepository) Get(code string) (*entity.Item, error) {
	it, err := r.store.Get(code)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepository) List() ([]entity.Item, error) {
	return r.store.List()
}

// LoadAll also reports lines that could not be parsed.
func (r *ItemRepository) LoadAll() ([]entity.Item, []*errs.CorruptRecordError, error) {
	return r.store.LoadAll()
}

func (r *ItemRepository) NextID() (string, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return "", err
	}
	return sequence.Next(keys, Prefix, ""), nil
}

// LowStock returns items at or below their reorder level.
func (r *ItemRepository) LowStock() ([]entity.Item, error) {
	return r.store.Filter(entity.Item.IsLowStock)
}

// BySupplier returns the items supplied by supplierID. Results are memoized when a cache is
// configured and dropped on any item mutation.
func (r *ItemRepository) BySupplier(supplierID string) ([]entity.Item, error) {
	if r.cache != nil {
		if v, ok := r.cache.GetN(r.tag, "supplier", supplierID); ok {
			cached := v.([]entity.Item)
			return append([]entity.Item(nil), cached...), nil
		}
	}
	gen := r.gen.Load()
	items, err := r.store.Filter(func(it entity.Item) bool { return it.SupplierID == supplierID })
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		r.remember(gen, []interface{}{r.tag, "supplier", supplierID}, append([]entity.Item(nil), items...))
	}
	return items, nil
}

func (r *ItemRepository) ByCategory(category string) ([]entity.Item, error) {
	return r.store.Filter(func(it entity.Item) bool { return strings.EqualFold(it.Category, category) })
}

// Search matches term against code and name, case-insensitively.
func (r *ItemRepository) Search(term string) ([]entity.Item, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	return r.store.Filter(func(it entity.Item) bool {
		return strings.Contains(strings.ToLower(it.Code), term) || strings.Contains(strings.ToLower(it.Name), term)
	})
}

// remember caches v unless the file changed since gen was read. A mutation that lands after the
// store is either seen by the second check or clears the entry through its own invalidate.
func (r *ItemRepository) remember(gen uint64, key []interface{}, v interface{}) {
	if r.gen.Load() != gen {
		return
	}
	r.cache.SetN(key, v, 0, []string{r.tag})
	if r.gen.Load() != gen {
		r.cache.DeleteN(key...)
	}
}

func (r *ItemRepository) invalidate() {
	r.gen.Add(1)
	if r.cache != nil {
		r.cache.DeleteByTag(r.tag)
	}
}
