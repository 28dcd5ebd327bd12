package adjustment

import (
	"fmt"
	"strconv"

	"procure.GO/model/entity"
)

// codec lays an adjustment out as: id, item code, date, type, quantity, reason, adjusted by
type codec struct{}

func (codec) Key(a entity.StockAdjustment) string { return a.ID }

func (codec) Fields() int { return 7 }

func (codec) Encode(a entity.StockAdjustment) ([]string, error) {
	return []string{
		a.ID,
		a.ItemCode,
		entity.FormatDate(a.Date),
		string(a.Type),
		strconv.Itoa(a.Quantity),
		a.Reason,
		a.AdjustedBy,
	}, nil
}

func (codec) Decode(f []string) (entity.StockAdjustment, error) {
	date, err := entity.ParseDate(f[2])
	if err != nil {
		return entity.StockAdjustment{}, err
	}
	typ, err := entity.ParseAdjustmentType(f[3])
	if err != nil {
		return entity.StockAdjustment{}, err
	}
	qty, err := strconv.Atoi(f[4])
	if err != nil {
		return entity.StockAdjustment{}, fmt.Errorf("quantity: %w", err)
	}
	return entity.StockAdjustment{
		ID:         f[0],
		ItemCode:   f[1],
		Date:       date,
		Type:       typ,
		Quantity:   qty,
		Reason:     f[5],
		AdjustedBy: f[6],
	}, nil
}
