package entity

import (
	"strings"

	"procure.GO/core/errs"
)

// Status is the workflow state of a requisition or purchase order.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusReceived Status = "RECEIVED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected, StatusReceived:
		return st, nil
	}
	return "", errs.Invalid("unknown status %q", s)
}

// RequisitionTransitions lists the legal status moves of a purchase requisition.
var RequisitionTransitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

// OrderTransitions lists the legal status moves of a purchase order.
var OrderTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusReceived},
}

// CanTransition reports whether table allows moving from one status to another.
func CanTransition(table map[Status][]Status, from, to Status) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}
