package item

import (
	"fmt"
	"strconv"

	"procure.GO/model/entity"
)

// codec lays an item out as:
// code, name, description, category, unit price, current stock, reorder level, supplier id
type codec struct{}

func (codec) Key(i entity.Item) string { return i.Code }

func (codec) Fields() int { return 8 }

func (codec) Encode(i entity.Item) ([]string, error) {
	return []string{
		i.Code,
		i.Name,
		i.Description,
		i.Category,
		entity.FormatMoney(i.UnitPrice),
		strconv.Itoa(i.CurrentStock),
		strconv.Itoa(i.ReorderLevel),
		i.SupplierID,
	}, nil
}

func (codec) Decode(f []string) (entity.Item, error) {
	price, err := entity.ParseMoney(f[4])
	if err != nil {
		return entity.Item{}, fmt.Errorf("unit price: %w", err)
	}
	stock, err := strconv.Atoi(f[5])
	if err != nil {
		return entity.Item{}, fmt.Errorf("current stock: %w", err)
	}
	reorder, err := strconv.Atoi(f[6])
	if err != nil {
		return entity.Item{}, fmt.Errorf("reorder level: %w", err)
	}
	if stock < 0 || reorder < 0 {
		return entity.Item{}, fmt.Errorf("negative stock %d or reorder level %d", stock, reorder)
	}
	return entity.Item{
		Code:         f[0],
		Name:         f[1],
		Description:  f[2],
		Category:     f[3],
		UnitPrice:    price,
		CurrentStock: stock,
		ReorderLevel: reorder,
		SupplierID:   f[7],
	}, nil
}
