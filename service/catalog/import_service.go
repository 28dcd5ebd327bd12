// Package catalog bulk-loads the item catalog from CSV.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
)

type ItemCatalog interface {
	Get(code string) (*entity.Item, error)
	Create(it *entity.Item) error
	Update(it *entity.Item) error
}

// SupplierLookup is optional; when set, unknown supplier IDs produce a warning.
type SupplierLookup interface {
	Get(id string) (*entity.Supplier, error)
}

// ImportOptions configures an item import run.
type ImportOptions struct {
	Comma     rune
	Suppliers SupplierLookup
	DryRun    bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

// itemRow is one CSV row after header mapping.
type itemRow struct {
	Code         string          `mapstructure:"item_code"`
	Name         string          `mapstructure:"name"`
	Description  string          `mapstructure:"description"`
	Category     string          `mapstructure:"category"`
	UnitPrice    decimal.Decimal `mapstructure:"unit_price"`
	CurrentStock *int            `mapstructure:"current_stock"`
	ReorderLevel *int            `mapstructure:"reorder_level"`
	SupplierID   string          `mapstructure:"supplier_id"`
}

var knownColumns = map[string]bool{
	"item_code": true, "name": true, "description": true, "category": true,
	"unit_price": true, "current_stock": true, "reorder_level": true, "supplier_id": true,
}

func stringToDecimalHook() mapstructure.DecodeHookFunc {
	decimalType := reflect.TypeOf(decimal.Decimal{})
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != decimalType || f.Kind() != reflect.String {
			return data, nil
		}
		return entity.ParseMoney(data.(string))
	}
}

// ImportItems reads CSV data from r and upserts catalog items. Rows with an item_code already in the
// catalog update its catalog fields; stock is only taken from current_stock for new items, since
// existing stock changes only through the ledger. Rows without an item_code get the next code.
func ImportItems(items ItemCatalog, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	hasName := false
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
		if headers[i] == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, errs.Invalid("CSV must contain a 'name' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if !knownColumns[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", line, err)
		}
		result.TotalRows++

		row, err := decodeRow(headers, rec)
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if opts.Suppliers != nil && row.SupplierID != "" {
			if _, err := opts.Suppliers.Get(row.SupplierID); errors.Is(err, errs.ErrNotFound) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: unknown supplier %s", line, row.SupplierID))
			}
		}
		created, err := upsert(items, row, opts.DryRun)
		if err != nil {
			if errs.KindOf(err) == errs.KindIOFailure {
				return nil, err
			}
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	result.TotalTime = time.Since(start)
	return result, nil
}

func decodeRow(headers, rec []string) (*itemRow, error) {
	raw := make(map[string]interface{}, len(headers))
	for i, h := range headers {
		if !knownColumns[h] || i >= len(rec) {
			continue
		}
		v := strings.TrimSpace(rec[i])
		if v == "" {
			continue
		}
		raw[h] = v
	}

	var row itemRow
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       stringToDecimalHook(),
		Result:           &row,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	return &row, nil
}

func upsert(items ItemCatalog, row *itemRow, dryRun bool) (bool, error) {
	existing := (*entity.Item)(nil)
	if row.Code != "" {
		it, err := items.Get(row.Code)
		switch {
		case err == nil:
			existing = it
		case !errors.Is(err, errs.ErrNotFound):
			return false, err
		}
	}

	if existing != nil {
		next := *existing
		if row.Name != "" {
			next.Name = row.Name
		}
		if row.Description != "" {
			next.Description = row.Description
		}
		if row.Category != "" {
			next.Category = row.Category
		}
		if !row.UnitPrice.IsZero() {
			next.UnitPrice = row.UnitPrice
		}
		if row.ReorderLevel != nil {
			next.ReorderLevel = *row.ReorderLevel
		}
		if row.SupplierID != "" {
			next.SupplierID = row.SupplierID
		}
		if err := next.Validate(); err != nil {
			return false, err
		}
		if dryRun {
			return false, nil
		}
		return false, items.Update(&next)
	}

	it := &entity.Item{
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		UnitPrice:   row.UnitPrice,
		SupplierID:  row.SupplierID,
	}
	if row.CurrentStock != nil {
		it.CurrentStock = *row.CurrentStock
	}
	if row.ReorderLevel != nil {
		it.ReorderLevel = *row.ReorderLevel
	}
	if err := it.Validate(); err != nil {
		return false, err
	}
	if dryRun {
		return true, nil
	}
	return true, items.Create(it)
}
