package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"procure.GO/core/errs"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		raw  string
		want Address
	}{
		{"", Address{}},
		{"12 Main St", Address{Street: "12 Main St"}},
		{"12 Main St, Springfield", Address{Street: "12 Main St", City: "Springfield"}},
		{"12 Main St, Springfield, IL 62704", Address{Street: "12 Main St", City: "Springfield", State: "IL", Zip: "62704"}},
		{"Unit 4, 12 Main St, Springfield, IL", Address{Street: "Unit 4, 12 Main St", City: "Springfield", State: "IL"}},
		{"Springfield, 62704-1234", Address{Street: "Springfield", Zip: "62704-1234"}},
		{"Route 66", Address{Street: "Route 66"}},
	}
	for _, tt := range tests {
		if got := ParseAddress(tt.raw); got != tt.want {
			t.Errorf("ParseAddress(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, in := range []string{"purchase_manager", "Purchase Manager", "purchase-manager", " PURCHASE_MANAGER "} {
		r, err := ParseRole(in)
		if err != nil || r != RolePurchaseManager {
			t.Errorf("ParseRole(%q) = %q, %v", in, r, err)
		}
	}
	if _, err := ParseRole("janitor"); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("ParseRole(janitor) = %v, want ErrInvalidInput", err)
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(RequisitionTransitions, StatusPending, StatusApproved) {
		t.Error("PENDING -> APPROVED should be allowed for requisitions")
	}
	if CanTransition(RequisitionTransitions, StatusApproved, StatusReceived) {
		t.Error("requisitions are never received")
	}
	if CanTransition(RequisitionTransitions, StatusRejected, StatusApproved) {
		t.Error("a rejected requisition is final")
	}
	if !CanTransition(OrderTransitions, StatusApproved, StatusReceived) {
		t.Error("APPROVED -> RECEIVED should be allowed for orders")
	}
	if CanTransition(OrderTransitions, StatusPending, StatusReceived) {
		t.Error("a pending order cannot be received")
	}
	if CanTransition(OrderTransitions, StatusReceived, StatusReceived) {
		t.Error("RECEIVED is final")
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus(" approved"); err != nil || s != StatusApproved {
		t.Errorf("ParseStatus = %q, %v", s, err)
	}
	if _, err := ParseStatus("LOST"); err == nil {
		t.Error("ParseStatus(LOST): want error")
	}
}

func TestPurchaseOrderTotals(t *testing.T) {
	po := PurchaseOrder{Lines: []POLine{
		{ItemCode: "I001", Quantity: 3, UnitPrice: decimal.RequireFromString("2.50"), SupplierID: "S001"},
		{ItemCode: "I002", Quantity: 2, UnitPrice: decimal.RequireFromString("0.10"), SupplierID: "S002"},
		{ItemCode: "I003", Quantity: 1, UnitPrice: decimal.RequireFromString("1"), SupplierID: "S001"},
	}}
	if got := FormatMoney(po.TotalAmount()); got != "8.70" {
		t.Errorf("TotalAmount = %s, want 8.70", got)
	}
	sup := po.Suppliers()
	if len(sup) != 2 || sup[0] != "S001" || sup[1] != "S002" {
		t.Errorf("Suppliers = %v, want [S001 S002]", sup)
	}
	if got := FormatMoney(PurchaseOrder{}.TotalAmount()); got != "0.00" {
		t.Errorf("empty TotalAmount = %s", got)
	}
}

func TestAdjustmentDelta(t *testing.T) {
	if d := (StockAdjustment{Type: AdjustmentAdd, Quantity: 4}).Delta(); d != 4 {
		t.Errorf("ADD delta = %d", d)
	}
	if d := (StockAdjustment{Type: AdjustmentSubtract, Quantity: 4}).Delta(); d != -4 {
		t.Errorf("SUBTRACT delta = %d", d)
	}
	if _, err := ParseAdjustmentType("remove"); err == nil {
		t.Error("ParseAdjustmentType(remove): want error")
	}
}

func TestItem(t *testing.T) {
	it := Item{Code: "I001", Name: "Widget", UnitPrice: decimal.RequireFromString("1.25"), CurrentStock: 5, ReorderLevel: 5}
	if !it.IsLowStock() {
		t.Error("stock equal to reorder level is low")
	}
	if got := FormatMoney(it.StockValue()); got != "6.25" {
		t.Errorf("StockValue = %s", got)
	}
	it.CurrentStock = -1
	if err := it.Validate(); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("Validate negative stock = %v", err)
	}
}

func TestMoney(t *testing.T) {
	d, err := ParseMoney(" 3.456 ")
	if err != nil {
		t.Fatalf("ParseMoney: %v", err)
	}
	if FormatMoney(d) != "3.46" {
		t.Errorf("FormatMoney = %s, want 3.46", FormatMoney(d))
	}
	if _, err := ParseMoney("ten"); err == nil {
		t.Error("ParseMoney(ten): want error")
	}
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(d) != "2024-02-29" {
		t.Errorf("FormatDate = %s", FormatDate(d))
	}
	if z, err := ParseDate(""); err != nil || !z.IsZero() {
		t.Errorf("ParseDate empty = %v, %v", z, err)
	}
	if FormatDate(time.Time{}) != "" {
		t.Error("zero date should format empty")
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Error("ParseDate wrong layout: want error")
	}

	from, _ := ParseDate("2024-01-01")
	to, _ := ParseDate("2024-01-31")
	in, _ := ParseDate("2024-01-31")
	out, _ := ParseDate("2024-02-01")
	if !InRange(in, from, to) || InRange(out, from, to) {
		t.Error("InRange bounds are inclusive")
	}
	if !InRange(out, time.Time{}, time.Time{}) {
		t.Error("zero bounds are open")
	}
}
