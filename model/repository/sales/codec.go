package sales

import (
	"fmt"
	"strconv"

	"procure.GO/model/entity"
)

// codec lays a sale out as: id, date, item code, quantity, unit price, sales amount, recorded by.
// The amount is written for readers of the file and recomputed on load.
type codec struct{}

func (codec) Key(s entity.DailySales) string { return s.ID }

func (codec) Fields() int { return 7 }

func (codec) Encode(s entity.DailySales) ([]string, error) {
	return []string{
		s.ID,
		entity.FormatDate(s.Date),
		s.ItemCode,
		strconv.Itoa(s.Quantity),
		entity.FormatMoney(s.UnitPrice),
		entity.FormatMoney(s.SalesAmount()),
		s.RecordedBy,
	}, nil
}

func (codec) Decode(f []string) (entity.DailySales, error) {
	date, err := entity.ParseDate(f[1])
	if err != nil {
		return entity.DailySales{}, err
	}
	qty, err := strconv.Atoi(f[3])
	if err != nil {
		return entity.DailySales{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := entity.ParseMoney(f[4])
	if err != nil {
		return entity.DailySales{}, fmt.Errorf("unit price: %w", err)
	}
	return entity.DailySales{
		ID:         f[0],
		Date:       date,
		ItemCode:   f[2],
		Quantity:   qty,
		UnitPrice:  price,
		RecordedBy: f[6],
	}, nil
}
