package entity

import "time"

// Notification is an entry of the user notification feed.
type Notification struct {
	UserID            string    `json:"user_id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Type              string    `json:"type"`
	RelatedEntityID   string    `json:"related_entity_id"`
	RelatedEntityType string    `json:"related_entity_type"`
	CreatedAt         time.Time `json:"created_at"`
}

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
)
