package requisition

import (
	"fmt"
	"strconv"

	"procure.GO/core/flatfile"
	"procure.GO/model/entity"
)

// Line items share one field: lines are separated by ';' and their fields by ':'.
const (
	lineSep  = ';'
	fieldSep = ':'
)

// codec lays a requisition out as: id, pr date, required date, status, requested by, lines.
// Each line is item code:quantity:supplier id.
type codec struct{}

func (codec) Key(pr entity.PurchaseRequisition) string { return pr.ID }

func (codec) Fields() int { return 6 }

func (codec) Encode(pr entity.PurchaseRequisition) ([]string, error) {
	items := make([][]string, 0, len(pr.Lines))
	for _, l := range pr.Lines {
		items = append(items, []string{l.ItemCode, strconv.Itoa(l.Quantity), l.SupplierID})
	}
	lines, err := flatfile.JoinList(items, lineSep, fieldSep)
	if err != nil {
		return nil, fmt.Errorf("lines: %w", err)
	}
	return []string{
		pr.ID,
		entity.FormatDate(pr.PRDate),
		entity.FormatDate(pr.RequiredDate),
		string(pr.Status),
		pr.RequestedBy,
		lines,
	}, nil
}

func (codec) Decode(f []string) (entity.PurchaseRequisition, error) {
	prDate, err := entity.ParseDate(f[1])
	if err != nil {
		return entity.PurchaseRequisition{}, err
	}
	required, err := entity.ParseDate(f[2])
	if err != nil {
		return entity.PurchaseRequisition{}, err
	}
	status, err := entity.ParseStatus(f[3])
	if err != nil {
		return entity.PurchaseRequisition{}, err
	}
	items, err := flatfile.SplitList(f[5], lineSep, fieldSep)
	if err != nil {
		return entity.PurchaseRequisition{}, fmt.Errorf("lines: %w", err)
	}
	lines := make([]entity.PRLine, 0, len(items))
	for i, it := range items {
		if len(it) != 3 {
			return entity.PurchaseRequisition{}, fmt.Errorf("line %d: want 3 fields, got %d", i+1, len(it))
		}
		qty, err := strconv.Atoi(it[1])
		if err != nil {
			return entity.PurchaseRequisition{}, fmt.Errorf("line %d quantity: %w", i+1, err)
		}
		lines = append(lines, entity.PRLine{ItemCode: it[0], Quantity: qty, SupplierID: it[2]})
	}
	return entity.PurchaseRequisition{
		ID:           f[0],
		PRDate:       prDate,
		RequiredDate: required,
		Status:       status,
		RequestedBy:  f[4],
		Lines:        lines,
	}, nil
}
