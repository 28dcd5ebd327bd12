package audit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func auditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestGormRecorder_RecordHistory(t *testing.T) {
	rec, err := NewGormRecorder(auditTestDB(t))
	if err != nil {
		t.Fatalf("NewGormRecorder: %v", err)
	}
	ctx := context.Background()

	entries := []Entry{
		{DocumentID: "PR-2025-001", DocumentType: "purchase_requisition", ActorID: "U003", StatusAfter: "PENDING"},
		{DocumentID: "PR-2025-001", DocumentType: "purchase_requisition", ActorID: "U001", StatusBefore: "PENDING", StatusAfter: "APPROVED",
			ChangedFields: map[string]any{"status": "APPROVED"}},
		{DocumentID: "PR-2025-002", DocumentType: "purchase_requisition", ActorID: "U001", StatusAfter: "PENDING"},
	}
	for _, e := range entries {
		if err := rec.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	hist, err := rec.History(ctx, "PR-2025-001")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("History = %d rows, want 2", len(hist))
	}
	if hist[0].StatusAfter != "PENDING" || hist[1].StatusAfter != "APPROVED" {
		t.Errorf("History order = %s, %s", hist[0].StatusAfter, hist[1].StatusAfter)
	}
	var changed map[string]any
	if err := json.Unmarshal(hist[1].ChangedFields, &changed); err != nil {
		t.Fatalf("ChangedFields: %v", err)
	}
	if changed["status"] != "APPROVED" {
		t.Errorf("ChangedFields = %v", changed)
	}
	if hist[1].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	mine, err := rec.ByActor(ctx, "U001", 1)
	if err != nil {
		t.Fatalf("ByActor: %v", err)
	}
	if len(mine) != 1 || mine[0].DocumentID != "PR-2025-002" {
		t.Errorf("ByActor = %+v, want latest entry PR-2025-002", mine)
	}
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	if err := r.Record(context.Background(), Entry{DocumentID: "x"}); err != nil {
		t.Errorf("Nop.Record = %v", err)
	}
}
