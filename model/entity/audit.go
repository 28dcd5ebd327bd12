package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEntry is one row of the document history kept by the audit service.
type AuditEntry struct {
	ID            uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentID    string         `gorm:"column:document_id;type:varchar(32);index;not null" json:"document_id"`
	DocumentType  string         `gorm:"column:document_type;type:varchar(32);not null" json:"document_type"`
	ActorID       string         `gorm:"column:actor_id;type:varchar(32)" json:"actor_id"`
	StatusBefore  string         `gorm:"column:status_before;type:varchar(16)" json:"status_before"`
	StatusAfter   string         `gorm:"column:status_after;type:varchar(16)" json:"status_after"`
	Comments      string         `gorm:"column:comments;type:text" json:"comments"`
	ChangedFields datatypes.JSON `gorm:"column:changed_fields" json:"changed_fields"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuditEntry) TableName() string {
	return "document_history"
}
