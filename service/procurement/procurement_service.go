// Package procurement drives purchase requisitions and purchase orders through their lifecycle:
// a requisition is raised and decided, an approved requisition becomes an order, and receiving an
// approved order credits stock for every line.
package procurement

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
	"procure.GO/service/audit"
	"procure.GO/service/notify"
	"procure.GO/service/stock"
)

const (
	docRequisition = "purchase_requisition"
	docOrder       = "purchase_order"
)

type RequisitionStore interface {
	Create(pr *entity.PurchaseRequisition) error
	Get(id string) (*entity.PurchaseRequisition, error)
	ByStatus(s entity.Status) ([]entity.PurchaseRequisition, error)
	Transition(id string, to entity.Status, action string) (entity.PurchaseRequisition, entity.PurchaseRequisition, error)
}

type OrderStore interface {
	Create(po *entity.PurchaseOrder) error
	Get(id string) (*entity.PurchaseOrder, error)
	ByStatus(s entity.Status) ([]entity.PurchaseOrder, error)
	ForRequisition(prID string) (*entity.PurchaseOrder, error)
	Transition(id string, to entity.Status, action string) (entity.PurchaseOrder, entity.PurchaseOrder, error)
}

type Catalog interface {
	Get(code string) (*entity.Item, error)
}

// Directory resolves who to notify for a role.
type Directory interface {
	ByRole(role entity.Role) ([]entity.User, error)
}

type Service struct {
	requisitions RequisitionStore
	orders       OrderStore
	items        Catalog
	ledger       *stock.Ledger
	users        Directory
	notifier     notify.Notifier
	recorder     audit.Recorder
	today        func() time.Time

	// convert serializes requisition to order conversion within the process.
	convert sync.Mutex
}

type Option func(*Service)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithRecorder(r audit.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithDirectory enables notifications addressed to roles.
func WithDirectory(d Directory) Option {
	return func(s *Service) { s.users = d }
}

// WithClock sets the source of the order date. Defaults to entity.Today.
func WithClock(today func() time.Time) Option {
	return func(s *Service) { s.today = today }
}

func NewService(requisitions RequisitionStore, orders OrderStore, items Catalog, ledger *stock.Ledger, opts ...Option) *Service {
	s := &Service{
		requisitions: requisitions,
		orders:       orders,
		items:        items,
		ledger:       ledger,
		notifier:     notify.NewLogNotifier(nil),
		recorder:     audit.Nop{},
		today:        entity.Today,
	}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

type RequisitionInput struct {
	PRDate       time.Time
	RequiredDate time.Time
	RequestedBy  string
	Lines        []entity.PRLine
}

// CreateRequisition stores a new PENDING requisition. Every line must reference a catalog item; a
// line without a supplier takes the item's supplier.
func (s *Service) CreateRequisition(ctx context.Context, in RequisitionInput) (*entity.PurchaseRequisition, error) {
	lines := make([]entity.PRLine, len(in.Lines))
	copy(lines, in.Lines)
	for i, l := range lines {
		if l.Quantity <= 0 {
			return nil, errs.Invalid("requisition line %d: quantity must be positive", i+1)
		}
		it, err := s.items.Get(l.ItemCode)
		if err != nil {
			return nil, err
		}
		if l.SupplierID == "" {
			lines[i].SupplierID = it.SupplierID
		}
	}
	pr := &entity.PurchaseRequisition{
		PRDate:       in.PRDate,
		RequiredDate: in.RequiredDate,
		Status:       entity.StatusPending,
		RequestedBy:  in.RequestedBy,
		Lines:        lines,
	}
	if err := s.requisitions.Create(pr); err != nil {
		return nil, err
	}

	s.record(ctx, audit.Entry{
		DocumentID:   pr.ID,
		DocumentType: docRequisition,
		ActorID:      pr.RequestedBy,
		StatusAfter:  string(pr.Status),
		Comments:     "created",
	})
	s.notifyRole(ctx, entity.RolePurchaseManager, entity.Notification{
		Title:             "Requisition awaiting approval",
		Message:           pr.ID + " was raised and needs a decision",
		Type:              entity.NotificationInfo,
		RelatedEntityID:   pr.ID,
		RelatedEntityType: docRequisition,
	})
	return pr, nil
}

// ApproveRequisition moves a PENDING requisition to APPROVED.
func (s *Service) ApproveRequisition(ctx context.Context, id, actor string) (*entity.PurchaseRequisition, error) {
	return s.decideRequisition(ctx, id, actor, entity.StatusApproved, "approve", "")
}

// RejectRequisition moves a PENDING requisition to REJECTED.
func (s *Service) RejectRequisition(ctx context.Context, id, actor, reason string) (*entity.PurchaseRequisition, error) {
	return s.decideRequisition(ctx, id, actor, entity.StatusRejected, "reject", reason)
}

func (s *Service) decideRequisition(ctx context.Context, id, actor string, to entity.Status, action, reason string) (*entity.PurchaseRequisition, error) {
	before, after, err := s.requisitions.Transition(id, to, action)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.Entry{
		DocumentID:    id,
		DocumentType:  docRequisition,
		ActorID:       actor,
		StatusBefore:  string(before.Status),
		StatusAfter:   string(after.Status),
		Comments:      reason,
		ChangedFields: map[string]any{"status": string(after.Status)},
	})
	kind := entity.NotificationSuccess
	if to == entity.StatusRejected {
		kind = entity.NotificationWarning
	}
	s.notifyUser(ctx, entity.Notification{
		UserID:            after.RequestedBy,
		Title:             "Requisition " + statusWord(to),
		Message:           decisionMessage(id, to, reason),
		Type:              kind,
		RelatedEntityID:   id,
		RelatedEntityType: docRequisition,
	})
	return &after, nil
}

// CreateOrderFromRequisition turns an APPROVED requisition into a PENDING order, pricing every line
// at the item's current catalog price. The requisition keeps its status. Converting a requisition
// that already has an order returns that order.
func (s *Service) CreateOrderFromRequisition(ctx context.Context, prID, actor string, deliveryDate time.Time) (*entity.PurchaseOrder, error) {
	s.convert.Lock()
	defer s.convert.Unlock()

	pr, err := s.requisitions.Get(prID)
	if err != nil {
		return nil, err
	}
	if pr.Status != entity.StatusApproved {
		return nil, errs.InvalidState("purchase requisition", prID, string(pr.Status), "create order")
	}
	if existing, err := s.orders.ForRequisition(prID); err == nil {
		return existing, nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	lines := make([]entity.POLine, 0, len(pr.Lines))
	for _, l := range pr.Lines {
		it, err := s.items.Get(l.ItemCode)
		if err != nil {
			return nil, err
		}
		supplier := l.SupplierID
		if supplier == "" {
			supplier = it.SupplierID
		}
		lines = append(lines, entity.POLine{
			ItemCode:   l.ItemCode,
			Quantity:   l.Quantity,
			UnitPrice:  it.UnitPrice,
			SupplierID: supplier,
		})
	}
	po := &entity.PurchaseOrder{
		PRID:         prID,
		PODate:       s.today(),
		DeliveryDate: deliveryDate,
		Status:       entity.StatusPending,
		CreatedBy:    actor,
		Lines:        lines,
	}
	if err := s.orders.Create(po); err != nil {
		if errors.Is(err, errs.ErrDuplicateKey) {
			// another process converted it between our check and the append
			return s.orders.ForRequisition(prID)
		}
		return nil, err
	}

	s.record(ctx, audit.Entry{
		DocumentID:    po.ID,
		DocumentType:  docOrder,
		ActorID:       actor,
		StatusAfter:   string(po.Status),
		Comments:      "created from " + prID,
		ChangedFields: map[string]any{"pr_id": prID, "total_amount": entity.FormatMoney(po.TotalAmount())},
	})
	s.notifyUser(ctx, entity.Notification{
		UserID:            pr.RequestedBy,
		Title:             "Purchase order created",
		Message:           po.ID + " was created from " + prID,
		Type:              entity.NotificationInfo,
		RelatedEntityID:   po.ID,
		RelatedEntityType: docOrder,
	})
	s.notifyRole(ctx, entity.RoleFinanceManager, entity.Notification{
		Title:             "Purchase order awaiting approval",
		Message:           po.ID + " totals " + entity.FormatMoney(po.TotalAmount()),
		Type:              entity.NotificationInfo,
		RelatedEntityID:   po.ID,
		RelatedEntityType: docOrder,
	})
	return po, nil
}

// ApproveOrder moves a PENDING order to APPROVED.
func (s *Service) ApproveOrder(ctx context.Context, id, actor string) (*entity.PurchaseOrder, error) {
	return s.decideOrder(ctx, id, actor, entity.StatusApproved, "approve", "")
}

// RejectOrder moves a PENDING order to REJECTED.
func (s *Service) RejectOrder(ctx context.Context, id, actor, reason string) (*entity.PurchaseOrder, error) {
	return s.decideOrder(ctx, id, actor, entity.StatusRejected, "reject", reason)
}

func (s *Service) decideOrder(ctx context.Context, id, actor string, to entity.Status, action, reason string) (*entity.PurchaseOrder, error) {
	before, after, err := s.orders.Transition(id, to, action)
	if err != nil {
		return nil, err
	}
	s.record(ctx, audit.Entry{
		DocumentID:    id,
		DocumentType:  docOrder,
		ActorID:       actor,
		StatusBefore:  string(before.Status),
		StatusAfter:   string(after.Status),
		Comments:      reason,
		ChangedFields: map[string]any{"status": string(after.Status)},
	})
	kind := entity.NotificationSuccess
	if to == entity.StatusRejected {
		kind = entity.NotificationWarning
	}
	s.notifyUser(ctx, entity.Notification{
		UserID:            after.CreatedBy,
		Title:             "Purchase order " + statusWord(to),
		Message:           decisionMessage(id, to, reason),
		Type:              kind,
		RelatedEntityID:   id,
		RelatedEntityType: docOrder,
	})
	if to == entity.StatusApproved {
		s.notifyRole(ctx, entity.RoleInventoryManager, entity.Notification{
			Title:             "Delivery expected",
			Message:           id + " was approved; receive it when the goods arrive",
			Type:              entity.NotificationInfo,
			RelatedEntityID:   id,
			RelatedEntityType: docOrder,
		})
	}
	return &after, nil
}

// Receipt is the outcome of receiving an order.
type Receipt struct {
	Order     entity.PurchaseOrder
	Movements []stock.Movement
}

// ReceiveOrder marks an APPROVED order RECEIVED and credits stock for each line. The status change
// is written first, so a repeated call fails with InvalidState and stock is credited at most once.
// If a credit fails the order stays RECEIVED and the failed lines are returned in the error.
func (s *Service) ReceiveOrder(ctx context.Context, id, actor string) (*Receipt, error) {
	before, after, err := s.orders.Transition(id, entity.StatusReceived, "receive")
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{Order: after}
	var failed []error
	for _, l := range after.Lines {
		mv, err := s.ledger.ApplyDelta(l.ItemCode, l.Quantity)
		if err != nil {
			log.Printf("procurement: %s received but %d x %s not credited: %v", id, l.Quantity, l.ItemCode, err)
			failed = append(failed, err)
			continue
		}
		receipt.Movements = append(receipt.Movements, mv)
	}

	s.record(ctx, audit.Entry{
		DocumentID:    id,
		DocumentType:  docOrder,
		ActorID:       actor,
		StatusBefore:  string(before.Status),
		StatusAfter:   string(after.Status),
		Comments:      "goods received",
		ChangedFields: map[string]any{"status": string(after.Status), "lines_credited": len(receipt.Movements)},
	})
	s.notifyUser(ctx, entity.Notification{
		UserID:            after.CreatedBy,
		Title:             "Purchase order received",
		Message:           id + " was received into stock",
		Type:              entity.NotificationSuccess,
		RelatedEntityID:   id,
		RelatedEntityType: docOrder,
	})

	if len(failed) > 0 {
		return receipt, errors.Join(failed...)
	}
	return receipt, nil
}

// Backlog lists the documents still waiting on someone.
type Backlog struct {
	PendingRequisitions []entity.PurchaseRequisition
	PendingOrders       []entity.PurchaseOrder
	AwaitingReceipt     []entity.PurchaseOrder
}

// Backlog loads the three queues concurrently.
func (s *Service) Backlog(ctx context.Context) (*Backlog, error) {
	var b Backlog
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		b.PendingRequisitions, err = s.requisitions.ByStatus(entity.StatusPending)
		return err
	})
	eg.Go(func() (err error) {
		b.PendingOrders, err = s.orders.ByStatus(entity.StatusPending)
		return err
	})
	eg.Go(func() (err error) {
		b.AwaitingReceipt, err = s.orders.ByStatus(entity.StatusApproved)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) record(ctx context.Context, e audit.Entry) {
	if err := s.recorder.Record(ctx, e); err != nil {
		log.Printf("procurement: audit %s: %v", e.DocumentID, err)
	}
}

func (s *Service) notifyUser(ctx context.Context, n entity.Notification) {
	if n.UserID == "" {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		log.Printf("procurement: notify %s about %s: %v", n.UserID, n.RelatedEntityID, err)
	}
}

func (s *Service) notifyRole(ctx context.Context, role entity.Role, n entity.Notification) {
	if s.users == nil {
		return
	}
	users, err := s.users.ByRole(role)
	if err != nil {
		log.Printf("procurement: look up %s users: %v", role, err)
		return
	}
	for _, u := range users {
		n.UserID = u.ID
		s.notifyUser(ctx, n)
	}
}

func statusWord(s entity.Status) string {
	switch s {
	case entity.StatusApproved:
		return "approved"
	case entity.StatusRejected:
		return "rejected"
	case entity.StatusReceived:
		return "received"
	}
	return "pending"
}

func decisionMessage(id string, to entity.Status, reason string) string {
	msg := id + " was " + statusWord(to)
	if reason != "" {
		msg += ": " + reason
	}
	return msg
}
