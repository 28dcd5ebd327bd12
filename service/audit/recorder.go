// Package audit keeps the status history of procurement documents.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"procure.GO/model/entity"
)

// Entry describes one change to a document.
type Entry struct {
	DocumentID    string
	DocumentType  string
	ActorID       string
	StatusBefore  string
	StatusAfter   string
	Comments      string
	ChangedFields map[string]any
}

type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Nop discards entries. It is used when no audit database is configured.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

// GormRecorder stores entries in the document_history table.
type GormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder migrates the history table and returns a recorder over db.
func NewGormRecorder(db *gorm.DB) (*GormRecorder, error) {
	if err := db.AutoMigrate(&entity.AuditEntry{}); err != nil {
		return nil, fmt.Errorf("migrate document history: %w", err)
	}
	return &GormRecorder{db: db}, nil
}

func (r *GormRecorder) Record(ctx context.Context, e Entry) error {
	row := entity.AuditEntry{
		DocumentID:   e.DocumentID,
		DocumentType: e.DocumentType,
		ActorID:      e.ActorID,
		StatusBefore: e.StatusBefore,
		StatusAfter:  e.StatusAfter,
		Comments:     e.Comments,
	}
	if len(e.ChangedFields) > 0 {
		b, err := json.Marshal(e.ChangedFields)
		if err != nil {
			return fmt.Errorf("encode changed fields: %w", err)
		}
		row.ChangedFields = datatypes.JSON(b)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record history for %s: %w", e.DocumentID, err)
	}
	return nil
}

// History returns the entries for one document, oldest first.
func (r *GormRecorder) History(ctx context.Context, documentID string) ([]entity.AuditEntry, error) {
	var rows []entity.AuditEntry
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", documentID, err)
	}
	return rows, nil
}

// ByActor returns the most recent entries recorded by actorID.
func (r *GormRecorder) ByActor(ctx context.Context, actorID string, limit int) ([]entity.AuditEntry, error) {
	var rows []entity.AuditEntry
	q := r.db.WithContext(ctx).Where("actor_id = ?", actorID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load history by %s: %w", actorID, err)
	}
	return rows, nil
}
