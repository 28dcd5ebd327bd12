package order

import (
	"path/filepath"

	"procure.GO/core/errs"
	"procure.GO/core/flatfile"
	"procure.GO/core/sequence"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
)

const (
	FileName = "purchase_orders.txt"
	Prefix   = "PO"
)

type OrderRepository struct {
	store *flatfile.Store[entity.PurchaseOrder]
}

func NewOrderRepository(root string, opts ...repository.Option) *OrderRepository {
	o := repository.Apply(opts)
	return &OrderRepository{
		store: flatfile.New[entity.PurchaseOrder](filepath.Join(root, FileName), "purchase order", codec{}, o.StoreOptions()...),
	}
}

// Create stores an order with ID PO-<year>-<seq>. At most one order may reference a given
// requisition; a second one fails with DuplicateKey.
func (r *OrderRepository) Create(po *entity.PurchaseOrder) error {
	if po.PODate.IsZero() {
		po.PODate = entity.Today()
	}
	if po.Status == "" {
		po.Status = entity.StatusPending
	}
	if len(po.Lines) == 0 {
		return errs.Invalid("purchase order: at least one line is required")
	}
	created, err := r.store.AppendNew(func(existing []entity.PurchaseOrder) (entity.PurchaseOrder, error) {
		if po.PRID != "" {
			for _, e := range existing {
				if e.PRID == po.PRID {
					return entity.PurchaseOrder{}, errs.DuplicateKey("purchase order for requisition", po.PRID)
				}
			}
		}
		rec := *po
		if rec.ID == "" {
			rec.ID = sequence.Next(r.store.KeysOf(existing), Prefix, sequence.Year(rec.PODate))
		}
		return rec, nil
	})
	if err != nil {
		return err
	}
	*po = created
	return nil
}

// Update replaces the editable fields of an order. Status and the source requisition are kept as
// stored; status changes only through Transition.
func (r *OrderRepository) Update(po *entity.PurchaseOrder) error {
	updated, err := r.store.Update(po.ID, func(cur entity.PurchaseOrder) (entity.PurchaseOrder, error) {
		next := *po
		next.Status = cur.Status
		next.PRID = cur.PRID
		return next, nil
	})
	if err != nil {
		return err
	}
	*po = updated
	return nil
}

func (r *OrderRepository) Delete(id string) error {
	return r.store.Delete(id)
}

func (r *OrderRepository) Get(id string) (*entity.PurchaseOrder, error) {
	po, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *OrderRepository) List() ([]entity.PurchaseOrder, error) {
	return r.store.List()
}

func (r *OrderRepository) NextID(year string) (string, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return "", err
	}
	return sequence.Next(keys, Prefix, year), nil
}

func (r *OrderRepository) ByStatus(s entity.Status) ([]entity.PurchaseOrder, error) {
	return r.store.Filter(func(po entity.PurchaseOrder) bool { return po.Status == s })
}

// ForRequisition returns the order created from prID.
func (r *OrderRepository) ForRequisition(prID string) (*entity.PurchaseOrder, error) {
	list, err := r.store.Filter(func(po entity.PurchaseOrder) bool { return po.PRID == prID })
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errs.NotFound("purchase order for requisition", prID)
	}
	return &list[0], nil
}

// Transition moves an order to status to under the file lock, enforcing OrderTransitions.
func (r *OrderRepository) Transition(id string, to entity.Status, action string) (before, after entity.PurchaseOrder, err error) {
	after, err = r.store.Update(id, func(cur entity.PurchaseOrder) (entity.PurchaseOrder, error) {
		before = cur
		if !entity.CanTransition(entity.OrderTransitions, cur.Status, to) {
			return cur, errs.InvalidState("purchase order", id, string(cur.Status), action)
		}
		cur.Status = to
		return cur, nil
	})
	if err != nil {
		return entity.PurchaseOrder{}, entity.PurchaseOrder{}, err
	}
	return before, after, nil
}
