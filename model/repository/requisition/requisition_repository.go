package requisition

import (
	"path/filepath"

	"procure.GO/core/errs"
	"procure.GO/core/flatfile"
	"procure.GO/core/sequence"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
)

const (
	FileName = "purchase_requisitions.txt"
	Prefix   = "PR"
)

type RequisitionRepository struct {
	store *flatfile.Store[entity.PurchaseRequisition]
}

func NewRequisitionRepository(root string, opts ...repository.Option) *RequisitionRepository {
	o := repository.Apply(opts)
	return &RequisitionRepository{
		store: flatfile.New[entity.PurchaseRequisition](filepath.Join(root, FileName), "purchase requisition", codec{}, o.StoreOptions()...),
	}
}

// Create stores a requisition. The ID is PR-<year>-<seq>, numbered per year of PRDate.
func (r *RequisitionRepository) Create(pr *entity.PurchaseRequisition) error {
	if pr.PRDate.IsZero() {
		pr.PRDate = entity.Today()
	}
	if pr.Status == "" {
		pr.Status = entity.StatusPending
	}
	if err := pr.Validate(); err != nil {
		return err
	}
	created, err := r.store.AppendNew(func(existing []entity.PurchaseRequisition) (entity.PurchaseRequisition, error) {
		rec := *pr
		if rec.ID == "" {
			rec.ID = sequence.Next(r.store.KeysOf(existing), Prefix, sequence.Year(rec.PRDate))
		}
		return rec, nil
	})
	if err != nil {
		return err
	}
	*pr = created
	return nil
}

// Update replaces the editable fields of a requisition. Status is kept as stored; it changes only
// through Transition.
func (r *RequisitionRepository) Update(pr *entity.PurchaseRequisition) error {
	if err := pr.Validate(); err != nil {
		return err
	}
	updated, err := r.store.Update(pr.ID, func(cur entity.PurchaseRequisition) (entity.PurchaseRequisition, error) {
		next := *pr
		next.Status = cur.Status
		return next, nil
	})
	if err != nil {
		return err
	}
	*pr = updated
	return nil
}

func (r *RequisitionRepository) Delete(id string) error {
	return r.store.Delete(id)
}

func (r *RequisitionRepository) Get(id string) (*entity.PurchaseRequisition, error) {
	pr, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *RequisitionRepository) List() ([]entity.PurchaseRequisition, error) {
	return r.store.List()
}

// NextID previews the ID the next requisition dated in year would get.
func (r *RequisitionRepository) NextID(year string) (string, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return "", err
	}
	return sequence.Next(keys, Prefix, year), nil
}

func (r *RequisitionRepository) ByStatus(s entity.Status) ([]entity.PurchaseRequisition, error) {
	return r.store.Filter(func(pr entity.PurchaseRequisition) bool { return pr.Status == s })
}

func (r *RequisitionRepository) RequestedBy(userID string) ([]entity.PurchaseRequisition, error) {
	return r.store.Filter(func(pr entity.PurchaseRequisition) bool { return pr.RequestedBy == userID })
}

// Transition moves a requisition to status to, reading and writing under the file lock. It
// fails with InvalidState when RequisitionTransitions does not allow the move. It returns the
// requisition as it was before the change and after it.
func (r *RequisitionRepository) Transition(id string, to entity.Status, action string) (before, after entity.PurchaseRequisition, err error) {
	after, err = r.store.Update(id, func(cur entity.PurchaseRequisition) (entity.PurchaseRequisition, error) {
		before = cur
		if !entity.CanTransition(entity.RequisitionTransitions, cur.Status, to) {
			return cur, errs.InvalidState("purchase requisition", id, string(cur.Status), action)
		}
		cur.Status = to
		return cur, nil
	})
	if err != nil {
		return entity.PurchaseRequisition{}, entity.PurchaseRequisition{}, err
	}
	return before, after, nil
}
