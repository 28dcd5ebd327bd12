package sales

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"procure.GO/model/entity"
)

func day(s string) time.Time {
	t, _ := entity.ParseDate(s)
	return t
}

func TestCreate_RoundTrip(t *testing.T) {
	r := NewSalesRepository(t.TempDir())
	s := &entity.DailySales{
		Date:       day("2025-03-14"),
		ItemCode:   "I001",
		Quantity:   3,
		UnitPrice:  decimal.RequireFromString("12.5"),
		RecordedBy: "U002",
	}
	if err := r.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID != "DS001" {
		t.Errorf("ID = %s, want DS001", s.ID)
	}
	data, _ := os.ReadFile(r.store.Path())
	if strings.TrimSpace(string(data)) != "DS001,2025-03-14,I001,3,12.50,37.50,U002" {
		t.Errorf("file = %q", data)
	}
	got, err := r.Get("DS001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Date.Equal(s.Date) || got.Quantity != 3 || !got.SalesAmount().Equal(decimal.RequireFromString("37.5")) {
		t.Errorf("Get = %+v", got)
	}
}

func TestBetween_TotalFor(t *testing.T) {
	r := NewSalesRepository(t.TempDir())
	for _, d := range []string{"2025-01-01", "2025-01-15", "2025-02-01"} {
		r.Create(&entity.DailySales{Date: day(d), ItemCode: "I001", Quantity: 2, UnitPrice: decimal.NewFromInt(5)})
	}
	r.Create(&entity.DailySales{Date: day("2025-01-20"), ItemCode: "I002", Quantity: 1, UnitPrice: decimal.NewFromInt(7)})

	jan, err := r.Between(day("2025-01-01"), day("2025-01-31"))
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if len(jan) != 3 {
		t.Errorf("Between = %d sales, want 3", len(jan))
	}
	total, _ := r.TotalFor(day("2025-01-01"), day("2025-01-31"))
	if !total.Equal(decimal.NewFromInt(27)) {
		t.Errorf("TotalFor = %s, want 27", total)
	}
	forItem, _ := r.ForItem("I002")
	if len(forItem) != 1 {
		t.Errorf("ForItem = %d, want 1", len(forItem))
	}
	all, _ := r.Between(time.Time{}, time.Time{})
	if len(all) != 4 {
		t.Errorf("Between open = %d, want 4", len(all))
	}
}

func TestUpdate_KeepsItemAndQuantity(t *testing.T) {
	r := NewSalesRepository(t.TempDir())
	s := &entity.DailySales{Date: day("2025-03-14"), ItemCode: "I001", Quantity: 3, UnitPrice: decimal.NewFromInt(5)}
	if err := r.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	edit := *s
	edit.ItemCode = "I002"
	edit.Quantity = 300
	edit.UnitPrice = decimal.NewFromInt(4)
	if err := r.Update(&edit); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := r.Get(s.ID)
	if got.ItemCode != "I001" || got.Quantity != 3 {
		t.Errorf("ItemCode, Quantity = %s, %d; want I001, 3", got.ItemCode, got.Quantity)
	}
	if !got.UnitPrice.Equal(decimal.NewFromInt(4)) {
		t.Errorf("UnitPrice = %s, want 4", got.UnitPrice)
	}
}
