package order

import (
	"fmt"
	"strconv"

	"procure.GO/core/flatfile"
	"procure.GO/model/entity"
)

const (
	lineSep  = ';'
	fieldSep = ':'
)

// codec lays an order out as:
// id, pr id, po date, delivery date, status, created by, lines, total amount.
// Each line is item code:quantity:unit price:supplier id. The total is written for readers of
// the file and recomputed from the lines on load.
type codec struct{}

func (codec) Key(po entity.PurchaseOrder) string { return po.ID }

func (codec) Fields() int { return 8 }

func (codec) Encode(po entity.PurchaseOrder) ([]string, error) {
	items := make([][]string, 0, len(po.Lines))
	for _, l := range po.Lines {
		items = append(items, []string{l.ItemCode, strconv.Itoa(l.Quantity), entity.FormatMoney(l.UnitPrice), l.SupplierID})
	}
	lines, err := flatfile.JoinList(items, lineSep, fieldSep)
	if err != nil {
		return nil, fmt.Errorf("lines: %w", err)
	}
	return []string{
		po.ID,
		po.PRID,
		entity.FormatDate(po.PODate),
		entity.FormatDate(po.DeliveryDate),
		string(po.Status),
		po.CreatedBy,
		lines,
		entity.FormatMoney(po.TotalAmount()),
	}, nil
}

func (codec) Decode(f []string) (entity.PurchaseOrder, error) {
	poDate, err := entity.ParseDate(f[2])
	if err != nil {
		return entity.PurchaseOrder{}, err
	}
	delivery, err := entity.ParseDate(f[3])
	if err != nil {
		return entity.PurchaseOrder{}, err
	}
	status, err := entity.ParseStatus(f[4])
	if err != nil {
		return entity.PurchaseOrder{}, err
	}
	items, err := flatfile.SplitList(f[6], lineSep, fieldSep)
	if err != nil {
		return entity.PurchaseOrder{}, fmt.Errorf("lines: %w", err)
	}
	lines := make([]entity.POLine, 0, len(items))
	for i, it := range items {
		if len(it) != 4 {
			return entity.PurchaseOrder{}, fmt.Errorf("line %d: want 4 fields, got %d", i+1, len(it))
		}
		qty, err := strconv.Atoi(it[1])
		if err != nil {
			return entity.PurchaseOrder{}, fmt.Errorf("line %d quantity: %w", i+1, err)
		}
		price, err := entity.ParseMoney(it[2])
		if err != nil {
			return entity.PurchaseOrder{}, fmt.Errorf("line %d unit price: %w", i+1, err)
		}
		lines = append(lines, entity.POLine{ItemCode: it[0], Quantity: qty, UnitPrice: price, SupplierID: it[3]})
	}
	return entity.PurchaseOrder{
		ID:           f[0],
		PRID:         f[1],
		PODate:       poDate,
		DeliveryDate: delivery,
		Status:       status,
		CreatedBy:    f[5],
		Lines:        lines,
	}, nil
}
