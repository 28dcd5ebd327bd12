package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// joinLine renders fields as one csv line. Values holding the delimiter or quotes are quoted;
// line breaks cannot be represented in the one-record-per-line layout and are rejected.
func joinLine(fields []string, comma rune) (string, error) {
	for i, f := range fields {
		if strings.ContainsAny(f, "\r\n") {
			return "", fmt.Errorf("field %d: line breaks are not allowed in values", i)
		}
	}
	return writeCSV(fields, comma)
}

func writeCSV(fields []string, comma rune) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Comma = comma
	if err := w.Write(fields); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func splitLine(line string, comma rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = comma
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty line")
	}
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// JoinList packs a list of sub-records into a single field value using the given separators.
// It is used for line items nested inside one record. Line breaks are kept (quoted) so the
// enclosing record is rejected when it is written.
func JoinList(items [][]string, itemSep, fieldSep rune) (string, error) {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		p, err := writeCSV(it, fieldSep)
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	return writeCSV(parts, itemSep)
}

// SplitList reverses JoinList. An empty value yields no items.
func SplitList(value string, itemSep, fieldSep rune) ([][]string, error) {
	if value == "" {
		return nil, nil
	}
	parts, err := splitLine(value, itemSep)
	if err != nil {
		return nil, err
	}
	items := make([][]string, 0, len(parts))
	for _, p := range parts {
		f, err := splitLine(p, fieldSep)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, nil
}
