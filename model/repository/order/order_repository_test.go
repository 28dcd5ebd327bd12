package order

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
)

func newPO(prID string) *entity.PurchaseOrder {
	d, _ := entity.ParseDate("2025-04-10")
	return &entity.PurchaseOrder{
		PRID:      prID,
		PODate:    d,
		CreatedBy: "U004",
		Lines: []entity.POLine{
			{ItemCode: "I001", Quantity: 10, UnitPrice: decimal.RequireFromString("2.50"), SupplierID: "S001"},
			{ItemCode: "I002", Quantity: 3, UnitPrice: decimal.RequireFromString("10"), SupplierID: "S002"},
		},
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	r := NewOrderRepository(t.TempDir())
	po := newPO("PR-2025-001")
	if err := r.Create(po); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if po.ID != "PO-2025-001" || po.Status != entity.StatusPending {
		t.Errorf("created %s %s", po.ID, po.Status)
	}
	data, _ := os.ReadFile(r.store.Path())
	if !strings.HasSuffix(strings.TrimSpace(string(data)), ",55.00") {
		t.Errorf("file = %q, want derived total 55.00 last", data)
	}
	got, err := r.Get(po.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Lines) != 2 || !got.Lines[0].UnitPrice.Equal(decimal.RequireFromString("2.5")) || got.Lines[1].SupplierID != "S002" {
		t.Errorf("Lines = %+v", got.Lines)
	}
	if !got.TotalAmount().Equal(decimal.NewFromInt(55)) {
		t.Errorf("TotalAmount = %s, want 55", got.TotalAmount())
	}
}

func TestCreate_OnePerRequisition(t *testing.T) {
	r := NewOrderRepository(t.TempDir())
	if err := r.Create(newPO("PR-2025-001")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Create(newPO("PR-2025-001")); !errors.Is(err, errs.ErrDuplicateKey) {
		t.Errorf("second order for requisition = %v, want ErrDuplicateKey", err)
	}
	got, err := r.ForRequisition("PR-2025-001")
	if err != nil || got.ID != "PO-2025-001" {
		t.Errorf("ForRequisition = %v, %v", got, err)
	}
	if _, err := r.ForRequisition("PR-2025-002"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("ForRequisition missing = %v, want ErrNotFound", err)
	}
}

func TestTransition(t *testing.T) {
	r := NewOrderRepository(t.TempDir())
	po := newPO("PR-2025-001")
	r.Create(po)

	if _, _, err := r.Transition(po.ID, entity.StatusReceived, "receive"); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("receive pending = %v, want ErrInvalidState", err)
	}
	if _, _, err := r.Transition(po.ID, entity.StatusApproved, "approve"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	_, after, err := r.Transition(po.ID, entity.StatusReceived, "receive")
	if err != nil || after.Status != entity.StatusReceived {
		t.Fatalf("receive approved = %v, %v", after.Status, err)
	}
	if _, _, err := r.Transition(po.ID, entity.StatusReceived, "receive"); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("receive twice = %v, want ErrInvalidState", err)
	}
	received, _ := r.ByStatus(entity.StatusReceived)
	if len(received) != 1 {
		t.Errorf("ByStatus(RECEIVED) = %d, want 1", len(received))
	}
}

func TestUpdate_KeepsStatusAndRequisition(t *testing.T) {
	r := NewOrderRepository(t.TempDir())
	po := newPO("PR-2025-001")
	if err := r.Create(po); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := r.Transition(po.ID, entity.StatusApproved, "approve"); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if _, _, err := r.Transition(po.ID, entity.StatusReceived, "receive"); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	edit := *po
	edit.Status = entity.StatusApproved
	edit.PRID = "PR-2025-009"
	edit.CreatedBy = "U007"
	if err := r.Update(&edit); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := r.Get(po.ID)
	if got.Status != entity.StatusReceived || got.PRID != "PR-2025-001" {
		t.Errorf("Status, PRID = %s, %s; want RECEIVED, PR-2025-001", got.Status, got.PRID)
	}
	if got.CreatedBy != "U007" {
		t.Errorf("CreatedBy = %s, want U007", got.CreatedBy)
	}
	if _, _, err := r.Transition(po.ID, entity.StatusReceived, "receive"); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("receive after edit = %v, want ErrInvalidState", err)
	}
}
