package entity

import (
	"strings"
	"time"

	"procure.GO/core/errs"
)

type AdjustmentType string

const (
	AdjustmentAdd      AdjustmentType = "ADD"
	AdjustmentSubtract AdjustmentType = "SUBTRACT"
)

func ParseAdjustmentType(s string) (AdjustmentType, error) {
	switch AdjustmentType(strings.ToUpper(strings.TrimSpace(s))) {
	case AdjustmentAdd:
		return AdjustmentAdd, nil
	case AdjustmentSubtract:
		return AdjustmentSubtract, nil
	}
	return "", errs.Invalid("unknown adjustment type %q", s)
}

// StockAdjustment is a manual stock correction.
type StockAdjustment struct {
	ID         string         `json:"adjustment_id"`
	ItemCode   string         `json:"item_code"`
	Date       time.Time      `json:"date"`
	Type       AdjustmentType `json:"type"`
	Quantity   int            `json:"quantity"`
	Reason     string         `json:"reason"`
	AdjustedBy string         `json:"adjusted_by"`
}

// Delta is the signed stock change this adjustment applies.
func (a StockAdjustment) Delta() int {
	if a.Type == AdjustmentSubtract {
		return -a.Quantity
	}
	return a.Quantity
}
