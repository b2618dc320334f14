package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/Veraticus/shawarma-forecast/internal/service"
)

var _ service.UploadJournal = (*SQLiteStorage)(nil)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal", "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func makeRecord(i int, base time.Time, succeeded bool) model.UploadRecord {
	return model.UploadRecord{
		RequestID:  fmt.Sprintf("req-%d", i),
		Filename:   fmt.Sprintf("sales-%d.csv", i),
		StartedAt:  base.Add(time.Duration(i) * time.Minute),
		FinishedAt: base.Add(time.Duration(i)*time.Minute + 2*time.Second),
		Succeeded:  succeeded,
		Message:    fmt.Sprintf("message %d", i),
		Inserted:   i * 10,
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, ExpectedSchemaVersion)
	}
}

func TestRecordAndListUploads(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		if err := store.RecordUpload(ctx, makeRecord(i, base, i != 2)); err != nil {
			t.Fatalf("RecordUpload(%d) error = %v", i, err)
		}
	}

	records, err := store.ListUploads(ctx, 0)
	if err != nil {
		t.Fatalf("ListUploads() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ListUploads() returned %d records, want 3", len(records))
	}

	// Newest first.
	if records[0].Filename != "sales-3.csv" || records[2].Filename != "sales-1.csv" {
		t.Errorf("unexpected order: %s, %s, %s", records[0].Filename, records[1].Filename, records[2].Filename)
	}
	if records[1].Succeeded {
		t.Error("record 2 should be a failed attempt")
	}
	if records[0].ID == "" {
		t.Error("expected a generated ID")
	}
	if records[0].RequestID != "req-3" || records[0].Inserted != 30 || records[0].Message != "message 3" {
		t.Errorf("unexpected record contents: %+v", records[0])
	}
	if got := records[0].Duration(); got != 2*time.Second {
		t.Errorf("Duration() = %v, want 2s", got)
	}
}

func TestListUploads_Limit(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		if err := store.RecordUpload(ctx, makeRecord(i, base, true)); err != nil {
			t.Fatalf("RecordUpload(%d) error = %v", i, err)
		}
	}

	records, err := store.ListUploads(ctx, 2)
	if err != nil {
		t.Fatalf("ListUploads() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("ListUploads(2) returned %d records", len(records))
	}

	if _, err := store.ListUploads(ctx, -1); err == nil {
		t.Error("expected error for negative limit")
	}
}

func TestRecordUpload_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.RecordUpload(context.Background(), model.UploadRecord{Filename: "x.csv"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
