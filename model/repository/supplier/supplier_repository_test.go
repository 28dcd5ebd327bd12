package supplier

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
	itemRepo "procure.GO/model/repository/item"
)

func TestCreate_Get(t *testing.T) {
	r := NewSupplierRepository(t.TempDir(), repository.WithoutWarnings())
	s := &entity.Supplier{
		CompanyName:   "Acme, Inc.",
		ContactPerson: "R. Runner",
		Phone:         "555-0100",
		Email:         "sales@acme.test",
		Address:       "1 Desert Rd, Phoenix, AZ 85001",
	}
	if err := r.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID != "S001" {
		t.Errorf("ID = %s, want S001", s.ID)
	}
	got, err := r.Get("S001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != *s {
		t.Errorf("Get = %+v, want %+v", got, s)
	}
	if _, err := r.Get("S999"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestUpdate_Delete(t *testing.T) {
	r := NewSupplierRepository(t.TempDir())
	s := &entity.Supplier{CompanyName: "Acme"}
	r.Create(s)
	s.Phone = "555-0199"
	if err := r.Update(s); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := r.Get(s.ID)
	if got.Phone != "555-0199" {
		t.Errorf("Phone = %q", got.Phone)
	}
	if err := r.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(s.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Delete twice = %v, want ErrNotFound", err)
	}
}

func TestSuppliedItems(t *testing.T) {
	root := t.TempDir()
	suppliers := NewSupplierRepository(root)
	items := itemRepo.NewItemRepository(root)

	s := &entity.Supplier{CompanyName: "Acme"}
	suppliers.Create(s)
	items.Create(&entity.Item{Name: "Anvil", UnitPrice: decimal.NewFromInt(50), SupplierID: s.ID})
	items.Create(&entity.Item{Name: "Rocket", UnitPrice: decimal.NewFromInt(900), SupplierID: "S777"})

	got, err := suppliers.SuppliedItems(s.ID, items)
	if err != nil {
		t.Fatalf("SuppliedItems: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Anvil" {
		t.Errorf("SuppliedItems = %v, want [Anvil]", got)
	}
	if _, err := suppliers.SuppliedItems("S777", items); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("SuppliedItems unknown supplier = %v, want ErrNotFound", err)
	}
}
