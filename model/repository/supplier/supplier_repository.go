package supplier

import (
	"path/filepath"
	"strings"

	"procure.GO/core/errs"
	"procure.GO/core/flatfile"
	"procure.GO/core/sequence"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
)

const (
	FileName = "suppliers.txt"
	Prefix   = "S"
)

// ItemSource resolves the items a supplier provides.
type ItemSource interface {
	BySupplier(supplierID string) ([]entity.Item, error)
}

type SupplierRepository struct {
	store *flatfile.Store[entity.Supplier]
}

func NewSupplierRepository(root string, opts ...repository.Option) *SupplierRepository {
	o := repository.Apply(opts)
	return &SupplierRepository{
		store: flatfile.New[entity.Supplier](filepath.Join(root, FileName), "supplier", codec{}, o.StoreOptions()...),
	}
}

func (r *SupplierRepository) Create(s *entity.Supplier) error {
	if err := s.Validate(); err != nil {
		return err
	}
	created, err := r.store.AppendNew(func(existing []entity.Supplier) (entity.Supplier, error) {
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

func (r *SupplierRepository) Update(s *entity.Supplier) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := r.store.Update(s.ID, func(entity.Supplier) (entity.Supplier, error) {
		return *s, nil
	})
	return err
}

func (r *SupplierRepository) Delete(id string) error {
	return r.store.Delete(id)
}

func (r *SupplierRepository) Get(id string) (*entity.Supplier, error) {
	s, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) List() ([]entity.Supplier, error) {
	return r.store.List()
}

func (r *SupplierRepository) LoadAll() ([]entity.Supplier, []*errs.CorruptRecordError, error) {
	return r.store.LoadAll()
}

func (r *SupplierRepository) NextID() (string, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return "", err
	}
	return sequence.Next(keys, Prefix, ""), nil
}

// Search matches term against company and contact names, case-insensitively.
func (r *SupplierRepository) Search(term string) ([]entity.Supplier, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	return r.store.Filter(func(s entity.Supplier) bool {
		return strings.Contains(strings.ToLower(s.CompanyName), term) ||
			strings.Contains(strings.ToLower(s.ContactPerson), term)
	})
}

// SuppliedItems derives the items a supplier provides by looking them up in items.
// The supplier must exist.
func (r *SupplierRepository) SuppliedItems(id string, items ItemSource) ([]entity.Item, error) {
	if _, err := r.store.Get(id); err != nil {
		return nil, err
	}
	return items.BySupplier(id)
}
