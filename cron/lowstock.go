package cron

import (
	"context"
	"fmt"
	"log"
	"strings"

	"procure.GO/model/entity"
	"procure.GO/service/notify"
)

// LowStockJobName is the registry name of the reorder check.
const LowStockJobName = "lowstock"

type LowStockSource interface {
	LowStock() ([]entity.Item, error)
}

type RoleDirectory interface {
	ByRole(role entity.Role) ([]entity.User, error)
}

// CheckLowStock logs every item at or below its reorder level and sends one summary to each
// inventory manager. It returns the number of low items.
func CheckLowStock(ctx context.Context, items LowStockSource, users RoleDirectory, n notify.Notifier) (int, error) {
	low, err := items.LowStock()
	if err != nil {
		return 0, err
	}
	if len(low) == 0 {
		return 0, nil
	}
	codes := make([]string, 0, len(low))
	for _, it := range low {
		log.Printf("cron: low stock %s %q: %d on hand, reorder at %d", it.Code, it.Name, it.CurrentStock, it.ReorderLevel)
		codes = append(codes, it.Code)
	}

	managers, err := users.ByRole(entity.RoleInventoryManager)
	if err != nil {
		return len(low), err
	}
	msg := entity.Notification{
		Title:             "Low stock",
		Message:           fmt.Sprintf("%d item(s) at or below reorder level: %s", len(low), strings.Join(codes, ", ")),
		Type:              entity.NotificationWarning,
		RelatedEntityType: "item",
	}
	for _, u := range managers {
		msg.UserID = u.ID
		if err := n.Notify(ctx, msg); err != nil {
			log.Printf("cron: notify %s: %v", u.ID, err)
		}
	}
	return len(low), nil
}

// RegisterLowStock registers the reorder check under LowStockJobName.
func RegisterLowStock(schedule string, items LowStockSource, users RoleDirectory, n notify.Notifier) {
	Register(LowStockJobName, schedule, func(...string) {
		if _, err := CheckLowStock(context.Background(), items, users, n); err != nil {
			log.Printf("cron: %s: %v", LowStockJobName, err)
		}
	})
}
